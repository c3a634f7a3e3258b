// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package pycode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyq/spyq/internal/pycode"
)

func TestCheck_ValidSource(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"simple function", "def add(a, b):\n    return a + b"},
		{"one-liner", "def f(): pass"},
		{"class with method", "class Foo:\n    def bar(self):\n        return 1"},
		{"docstring", "def f():\n    \"\"\"Doc.\"\"\"\n    return 2"},
		{"multiline signature", "def f(\n    a,\n    b,\n):\n    return a"},
		{"annotations", "def f(x: int) -> dict:\n    d: dict = {}\n    return d"},
		{"strings with brackets", "s = \"(unbalanced] in string\"\nprint(s)"},
		{"comment with quote", "x = 1  # don't mind me\ny = 2"},
		{"triple quoted", "s = '''line one\nline two'''\nprint(s)"},
		{"backslash continuation", "total = 1 + \\\n    2"},
		{"async def", "async def go():\n    return 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pycode.Check(tt.code)
			assert.True(t, res.Valid, "issues: %v", res.Issues)
			assert.Empty(t, res.Issues)
		})
	}
}

func TestCheck_InvalidSource(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantSub string
	}{
		{"unterminated string", "def f():\n    print(\"hi", "unterminated string"},
		{"unclosed paren", "x = (1 + 2", "never closed"},
		{"unmatched closer", "x = 1)", "unmatched"},
		{"missing colon", "def f()\n    return 1", "expected ':'"},
		{"missing suite", "def f():", "indented block"},
		{"empty input", "   ", "empty input"},
		{"dangling triple quote", "s = '''never ends", "triple-quoted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pycode.Check(tt.code)
			require.False(t, res.Valid)
			require.NotEmpty(t, res.Issues)
			assert.Contains(t, res.Issues[0], "Syntax error:")
			assert.Contains(t, res.Issues[0], tt.wantSub)
		})
	}
}

func TestAttemptFix_UnterminatedString(t *testing.T) {
	in := "def f():\n    print(\"hi"
	fixed, ok := pycode.AttemptFix(in)
	require.True(t, ok)
	assert.True(t, pycode.Check(fixed).Valid)
	assert.Contains(t, fixed, `"hi"`)
}

func TestAttemptFix_UnbalancedBrackets(t *testing.T) {
	in := "x = [1, 2, 3\nprint(x)"
	fixed, ok := pycode.AttemptFix(in)
	if ok {
		assert.True(t, pycode.Check(fixed).Valid)
		return
	}
	// Closing at end of input cannot repair a bracket opened mid-file when
	// later statements already follow; giving up is the correct behavior.
	assert.False(t, ok)
}

func TestAttemptFix_TrailingBracket(t *testing.T) {
	in := "result = compute(1, 2"
	fixed, ok := pycode.AttemptFix(in)
	require.True(t, ok)
	assert.Equal(t, "result = compute(1, 2)", fixed)
}

func TestAttemptFix_Unfixable(t *testing.T) {
	_, ok := pycode.AttemptFix("def broken(\n    return")
	assert.False(t, ok)
}

func TestAttemptFix_NoSemanticChanges(t *testing.T) {
	in := "value = open_file(\"data.txt\""
	fixed, ok := pycode.AttemptFix(in)
	require.True(t, ok)
	// Only a closer may be appended; the original text survives as a prefix.
	assert.True(t, strings.HasPrefix(fixed, in))
}

func TestFunctions(t *testing.T) {
	code := "import os\n" +
		"\n" +
		"def first(a, b):\n" +
		"    return a + b\n" +
		"\n" +
		"class Box:\n" +
		"    def method(self):\n" +
		"        pass\n" +
		"\n" +
		"def last():\n" +
		"    x = 1\n" +
		"    return x\n"

	spans := pycode.Functions(code)
	require.Len(t, spans, 3)

	assert.Equal(t, "first", spans[0].Name)
	assert.Equal(t, 3, spans[0].StartLine)
	assert.Equal(t, 4, spans[0].EndLine)
	assert.Equal(t, []string{"    return a + b"}, spans[0].Body)

	assert.Equal(t, "method", spans[1].Name)
	assert.Equal(t, 4, spans[1].Indent)

	assert.Equal(t, "last", spans[2].Name)
	assert.Equal(t, 10, spans[2].StartLine)
	assert.Equal(t, 12, spans[2].EndLine)
}

func TestFunctions_MultilineSignature(t *testing.T) {
	code := "def wide(\n    a,\n    b,\n):\n    return a\n"
	spans := pycode.Functions(code)
	require.Len(t, spans, 1)
	assert.Equal(t, "wide", spans[0].Name)
	assert.Equal(t, 1, spans[0].StartLine)
	assert.Equal(t, 5, spans[0].EndLine)
	assert.Contains(t, spans[0].Signature, "def wide(")
}

func TestFunctions_BracketContinuationLines(t *testing.T) {
	code := "def f():\n" +
		"    \"\"\"Doc.\"\"\"\n" +
		"    return (1 +\n" +
		"2)\n" +
		"\n" +
		"def g():\n" +
		"    return 3\n"
	spans := pycode.Functions(code)
	require.Len(t, spans, 2)

	assert.Equal(t, "f", spans[0].Name)
	assert.Equal(t, 4, spans[0].EndLine, "a column-0 continuation line inside brackets belongs to the body")
	assert.Contains(t, spans[0].Body, "2)")
	assert.Equal(t, "g", spans[1].Name)
}

func TestFunctions_IgnoresDefsInStrings(t *testing.T) {
	code := "s = '''\ndef fake():\n    pass\n'''\ndef real():\n    return 1\n"
	spans := pycode.Functions(code)
	require.Len(t, spans, 1)
	assert.Equal(t, "real", spans[0].Name)
}

func TestFunctions_GarbageInput(t *testing.T) {
	assert.Empty(t, pycode.Functions("this is not python at all"))
}

func TestCheck_StartEndInvariant(t *testing.T) {
	code := "def a():\n    pass\n\ndef b():\n    return 2\n"
	for _, s := range pycode.Functions(code) {
		assert.LessOrEqual(t, s.StartLine, s.EndLine)
	}
}
