// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package rules checks Python source against configurable style rules:
// line length, file and function size, docstring presence, and leftover
// print-debugging. Each violation carries a fix suggestion.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spyq/spyq/internal/config"
	"github.com/spyq/spyq/internal/pycode"
)

// Defaults applied when the config leaves a limit unset.
const (
	DefaultMaxLineLength    = 120
	DefaultMaxFileLines     = 300
	DefaultMaxFunctionLines = 50
)

// Severity classifies how serious a violation is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Violation is a single rule breach at a specific line.
type Violation struct {
	Line       int // 1-based; 0 for file-level violations
	Rule       string
	Severity   Severity
	Message    string
	Suggestion string
}

func (v *Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d: %s", v.Line, v.Message)
	}
	return v.Message
}

// Report contains the outcome of validating one file or snippet.
type Report struct {
	Violations   []Violation
	QualityScore float64 // 0..100
}

// Valid returns true if no error-severity violations were found.
func (r *Report) Valid() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Validator applies a rule set derived from config.
type Validator struct {
	maxLineLength    int
	maxFileLines     int
	maxFunctionLines int
	requireDocstring bool
	forbidPrint      bool
}

// New builds a Validator from config, filling unset limits with defaults.
// Docstring checking defaults to on.
func New(cfg config.RulesConfig) *Validator {
	v := &Validator{
		maxLineLength:    cfg.MaxLineLength,
		maxFileLines:     cfg.MaxFileLines,
		maxFunctionLines: cfg.MaxFunctionLines,
		requireDocstring: cfg.RequireDocstrings == nil || *cfg.RequireDocstrings,
		forbidPrint:      cfg.ForbidPrint,
	}
	if v.maxLineLength == 0 {
		v.maxLineLength = DefaultMaxLineLength
	}
	if v.maxFileLines == 0 {
		v.maxFileLines = DefaultMaxFileLines
	}
	if v.maxFunctionLines == 0 {
		v.maxFunctionLines = DefaultMaxFunctionLines
	}
	return v
}

var printPattern = regexp.MustCompile(`^\s*print\s*\(`)

// ValidateContent checks a complete Python source text and scores it.
func (v *Validator) ValidateContent(code string) *Report {
	report := &Report{}

	if check := pycode.Check(code); !check.Valid {
		for _, issue := range check.Issues {
			report.Violations = append(report.Violations, Violation{
				Rule:       "syntax",
				Severity:   SeverityError,
				Message:    issue,
				Suggestion: "fix the syntax error before style checks can run",
			})
		}
		report.QualityScore = 0
		return report
	}

	lines := strings.Split(code, "\n")

	if len(lines) > v.maxFileLines {
		report.Violations = append(report.Violations, Violation{
			Rule:       "max-file-lines",
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("file has %d lines, limit is %d", len(lines), v.maxFileLines),
			Suggestion: "split the file into smaller modules",
		})
	}

	for i, line := range lines {
		if n := len([]rune(line)); n > v.maxLineLength {
			report.Violations = append(report.Violations, Violation{
				Line:       i + 1,
				Rule:       "max-line-length",
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("line is %d characters, limit is %d", n, v.maxLineLength),
				Suggestion: "break the line or extract a variable",
			})
		}
		if v.forbidPrint && printPattern.MatchString(line) {
			report.Violations = append(report.Violations, Violation{
				Line:       i + 1,
				Rule:       "no-print",
				Severity:   SeverityWarning,
				Message:    "print call found",
				Suggestion: "use the logging module instead of print",
			})
		}
	}

	for _, fn := range pycode.Functions(code) {
		if n := fn.EndLine - fn.StartLine + 1; n > v.maxFunctionLines {
			report.Violations = append(report.Violations, Violation{
				Line:       fn.StartLine,
				Rule:       "max-function-lines",
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("function %q is %d lines, limit is %d", fn.Name, n, v.maxFunctionLines),
				Suggestion: "extract helper functions",
			})
		}
		if v.requireDocstring && !hasDocstring(fn.Body) {
			report.Violations = append(report.Violations, Violation{
				Line:       fn.StartLine,
				Rule:       "require-docstring",
				Severity:   SeverityInfo,
				Message:    fmt.Sprintf("function %q has no docstring", fn.Name),
				Suggestion: "add a docstring describing the function",
			})
		}
	}

	report.QualityScore = score(report.Violations)
	return report
}

// hasDocstring reports whether the first statement of a function body is a
// string literal.
func hasDocstring(body []string) bool {
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''") ||
			strings.HasPrefix(trimmed, `"`) || strings.HasPrefix(trimmed, "'")
	}
	return false
}

// score maps violations to a 0..100 quality score. Errors cost 25 points,
// warnings 10, info 3.
func score(violations []Violation) float64 {
	s := 100.0
	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			s -= 25
		case SeverityWarning:
			s -= 10
		case SeverityInfo:
			s -= 3
		}
	}
	if s < 0 {
		return 0
	}
	return s
}
