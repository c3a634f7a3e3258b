// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package report renders validation results and generation outcomes for
// the terminal. Color respects the NO_COLOR convention through
// fatih/color's global switch.
package report

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/spyq/spyq/internal/rules"
)

// Shared color printers for report output.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
)

// ColorSeverity colors a violation severity label.
func ColorSeverity(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return colorRed.Sprint(string(s))
	case rules.SeverityWarning:
		return colorYellow.Sprint(string(s))
	case rules.SeverityInfo:
		return colorCyan.Sprint(string(s))
	default:
		return string(s)
	}
}

// ColorScore colors a 0..100 quality score: green at 80+, yellow at 50+,
// red below.
func ColorScore(score float64) string {
	s := fmt.Sprintf("%.1f", score)
	switch {
	case score >= 80:
		return colorGreen.Sprint(s)
	case score >= 50:
		return colorYellow.Sprint(s)
	default:
		return colorRed.Sprint(s)
	}
}

// Title renders a bold heading.
func Title(s string) string {
	return colorBold.Sprint(s)
}
