// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/spyq/spyq/internal/generate"
	"github.com/spyq/spyq/internal/provider"
	"github.com/spyq/spyq/internal/rules"
)

// Validation writes the violations for one file, or a pass line when the
// report is clean.
func Validation(w io.Writer, path string, report *rules.Report) error {
	if len(report.Violations) == 0 {
		_, err := fmt.Fprintf(w, "%s %s (score %s)\n", colorGreen.Sprint("ok"), path, ColorScore(report.QualityScore))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s (score %s)\n", Title(path), ColorScore(report.QualityScore)); err != nil {
		return err
	}
	for _, v := range report.Violations {
		loc := path
		if v.Line > 0 {
			loc = fmt.Sprintf("%s:%d", path, v.Line)
		}
		if _, err := fmt.Fprintf(w, "  %s  %s  %s\n", ColorSeverity(v.Severity), loc, v.Message); err != nil {
			return err
		}
		if v.Suggestion != "" {
			if _, err := fmt.Fprintf(w, "      %s\n", v.Suggestion); err != nil {
				return err
			}
		}
	}
	return nil
}

// Outcome writes a generation outcome summary to w. The generated code
// itself goes to stdout separately so it stays pipeable.
func Outcome(w io.Writer, out generate.Outcome) error {
	if out.Err != nil {
		if _, err := fmt.Fprintf(w, "%s %v\n", colorRed.Sprint("failed:"), out.Err); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s score %s after %d iteration(s)\n",
			colorGreen.Sprint("generated:"), ColorScore(out.QualityScore), out.IterationsUsed); err != nil {
			return err
		}
	}
	for _, issue := range out.Issues {
		if _, err := fmt.Fprintf(w, "  %s %s\n", colorYellow.Sprint("note:"), issue); err != nil {
			return err
		}
	}
	return nil
}

// Providers writes the configured provider table to w.
func Providers(w io.Writer, configs []provider.Config) error {
	t := NewTable(
		Column{Header: "NAME"},
		Column{Header: "KIND"},
		Column{Header: "MODEL"},
		Column{Header: "PRIORITY"},
		Column{Header: "STATE", Color: func(v string) string {
			if v == "enabled" {
				return colorGreen.Sprint(v)
			}
			return colorRed.Sprint(v)
		}},
	)
	for _, cfg := range configs {
		state := "disabled"
		if cfg.Enabled {
			state = "enabled"
		}
		t.AddRow(cfg.Name, cfg.Kind, cfg.Model, fmt.Sprintf("%d", cfg.Priority), state)
	}
	return t.Render(w)
}
