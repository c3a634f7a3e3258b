// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spyq/spyq/internal/config"
	"github.com/spyq/spyq/internal/pycode"
	"github.com/spyq/spyq/internal/report"
	"github.com/spyq/spyq/internal/rules"
)

// Validate-specific flag values.
var (
	validateFix bool
)

// validateCmd checks Python files against syntax and style rules.
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate Python files against syntax and style rules",
	Long: `Validate one or more Python files.

Each file is syntax-checked with the structural scanner, then style
rules from .spyq.yaml apply: line length, file and function size,
docstring presence, and leftover print-debugging. Files are validated
concurrently; results print in argument order.

With --fix, files that fail the syntax check get the mechanical repair
pass (closing unterminated strings and unbalanced brackets) and are
rewritten in place when the repair produces valid code.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFix, "fix", false,
		"repair mechanical syntax errors in place where possible")
}

type fileResult struct {
	report *rules.Report
	fixed  bool
	err    error
}

func runValidate(cmd *cobra.Command, args []string) error {
	results := make([]fileResult, len(args))

	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range args {
		g.Go(func() error {
			results[i] = validateFile(path, validateFix)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	invalid := false
	for i, path := range args {
		res := results[i]
		if res.err != nil {
			failed = true
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "spyq: %v\n", res.err)
			continue
		}
		if res.fixed {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fixed %s\n", path)
		}
		_ = report.Validation(cmd.OutOrStdout(), path, res.report)
		if !res.report.Valid() {
			invalid = true
		}
	}

	switch {
	case failed:
		return exitError(ExitInvalidArgs, "")
	case invalid:
		return exitError(ExitViolationsFound, "")
	}
	return nil
}

// validateFile reads, optionally repairs, and rule-checks one file.
func validateFile(path string, fix bool) fileResult {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path is expected
	if err != nil {
		return fileResult{err: fmt.Errorf("cannot read %q (%w)", path, err)}
	}
	code := string(data)

	fixed := false
	if fix {
		if check := pycode.Check(code); !check.Valid {
			if repaired, ok := pycode.AttemptFix(code); ok {
				if err := os.WriteFile(path, []byte(repaired), 0o644); err != nil { //nolint:gosec // rewriting the user's own file
					return fileResult{err: fmt.Errorf("cannot rewrite %q (%w)", path, err)}
				}
				code = repaired
				fixed = true
			}
		}
	}

	cfg, err := config.Load(filepath.Dir(path))
	if err != nil {
		return fileResult{err: fmt.Errorf("cannot load config for %q (%w)", path, err)}
	}

	return fileResult{
		report: rules.New(cfg.Rules).ValidateContent(code),
		fixed:  fixed,
	}
}
