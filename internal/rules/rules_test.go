// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyq/spyq/internal/config"
)

func ruleNames(violations []Violation) []string {
	names := make([]string, 0, len(violations))
	for _, v := range violations {
		names = append(names, v.Rule)
	}
	return names
}

func TestValidateContent_Clean(t *testing.T) {
	v := New(config.RulesConfig{})
	code := "def add(a, b):\n    \"\"\"Return the sum of a and b.\"\"\"\n    return a + b\n"

	report := v.ValidateContent(code)
	assert.True(t, report.Valid())
	assert.Empty(t, report.Violations)
	assert.Equal(t, 100.0, report.QualityScore)
}

func TestValidateContent_SyntaxErrorShortCircuits(t *testing.T) {
	v := New(config.RulesConfig{})

	report := v.ValidateContent("def broken(:\n    pass")
	assert.False(t, report.Valid())
	require.NotEmpty(t, report.Violations)
	assert.Equal(t, "syntax", report.Violations[0].Rule)
	assert.Equal(t, SeverityError, report.Violations[0].Severity)
	assert.Equal(t, 0.0, report.QualityScore)
}

func TestValidateContent_LineLength(t *testing.T) {
	v := New(config.RulesConfig{MaxLineLength: 20})

	report := v.ValidateContent("x = 1  # " + strings.Repeat("a", 30))
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "max-line-length", report.Violations[0].Rule)
	assert.Equal(t, 1, report.Violations[0].Line)
	assert.True(t, report.Valid(), "warnings alone do not invalidate")
	assert.Less(t, report.QualityScore, 100.0)
}

func TestValidateContent_FunctionTooLong(t *testing.T) {
	v := New(config.RulesConfig{MaxFunctionLines: 3})

	var b strings.Builder
	b.WriteString("def long_one():\n")
	b.WriteString("    \"\"\"Doc.\"\"\"\n")
	for i := 0; i < 5; i++ {
		b.WriteString("    x = 1\n")
	}

	report := v.ValidateContent(b.String())
	assert.Contains(t, ruleNames(report.Violations), "max-function-lines")
}

func TestValidateContent_MissingDocstring(t *testing.T) {
	v := New(config.RulesConfig{})

	report := v.ValidateContent("def f():\n    return 1\n")
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "require-docstring", report.Violations[0].Rule)
	assert.Equal(t, SeverityInfo, report.Violations[0].Severity)

	off := false
	quiet := New(config.RulesConfig{RequireDocstrings: &off})
	assert.Empty(t, quiet.ValidateContent("def f():\n    return 1\n").Violations)
}

func TestValidateContent_ForbidPrint(t *testing.T) {
	v := New(config.RulesConfig{ForbidPrint: true})

	code := "def f():\n    \"\"\"Doc.\"\"\"\n    print(\"debug\")\n    return 1\n"
	report := v.ValidateContent(code)
	assert.Contains(t, ruleNames(report.Violations), "no-print")

	// Without the rule enabled, print is fine.
	relaxed := New(config.RulesConfig{})
	assert.NotContains(t, ruleNames(relaxed.ValidateContent(code).Violations), "no-print")
}

func TestValidateContent_FileTooLong(t *testing.T) {
	v := New(config.RulesConfig{MaxFileLines: 5})

	code := strings.Repeat("x = 1\n", 10)
	report := v.ValidateContent(code)
	assert.Contains(t, ruleNames(report.Violations), "max-file-lines")
	assert.Equal(t, 0, report.Violations[0].Line, "file-level violation has no line")
}

func TestScore_Floor(t *testing.T) {
	violations := make([]Violation, 20)
	for i := range violations {
		violations[i] = Violation{Severity: SeverityWarning}
	}
	assert.Equal(t, 0.0, score(violations))
}
