// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package candidate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyq/spyq/internal/candidate"
)

func TestProcess_CleanCode(t *testing.T) {
	c := candidate.Process("def add(a, b):\n    return a + b", "python")
	assert.True(t, c.SyntaxValid)
	assert.False(t, c.PromptLike)
	assert.Empty(t, c.Issues)
	assert.Equal(t, "def add(a, b):\n    return a + b", c.Extracted)
}

func TestProcess_FencedResponse(t *testing.T) {
	raw := "Sure! Here's the function:\n```python\ndef add(a, b):\n    return a + b\n```"
	c := candidate.Process(raw, "python")
	assert.True(t, c.SyntaxValid)
	assert.Equal(t, "def add(a, b):\n    return a + b", c.Extracted)
}

func TestProcess_PureInstructions(t *testing.T) {
	c := candidate.Process("Create a function that adds two numbers", "python")
	assert.False(t, c.SyntaxValid)
	assert.True(t, c.PromptLike)
	require.NotEmpty(t, c.Issues)
	assert.Contains(t, c.Issues[0], "prompt, not code")
}

func TestProcess_PromptWithEmbeddedCode(t *testing.T) {
	raw := "Create a function that adds numbers, for example:\n```python\ndef add(a, b):\n    return a + b\n```"
	c := candidate.Process(raw, "python")
	assert.True(t, c.SyntaxValid)
	assert.Contains(t, c.Issues, "Extracted code from prompt")
	assert.Equal(t, "def add(a, b):\n    return a + b", c.Extracted)
}

func TestProcess_RepairableSyntaxError(t *testing.T) {
	c := candidate.Process("def f():\n    print(\"hi", "python")
	assert.True(t, c.SyntaxValid, "repair should succeed")
	// The original syntax error stays in Issues so callers know a repair
	// happened.
	var sawSyntaxError bool
	for _, iss := range c.Issues {
		if strings.Contains(iss, "Syntax error:") {
			sawSyntaxError = true
		}
	}
	assert.True(t, sawSyntaxError)
	assert.Contains(t, c.Extracted, `print("hi")`)
}

func TestProcess_UnfixableSyntaxError(t *testing.T) {
	c := candidate.Process("def broken(\n    return", "python")
	assert.False(t, c.SyntaxValid)
	require.NotEmpty(t, c.Issues)
	assert.Contains(t, c.Issues[0], "Syntax error:")
}

func TestProcess_ErrorPayload(t *testing.T) {
	c := candidate.Process(`{"error": {"message": "model overloaded"}}`, "python")
	assert.False(t, c.SyntaxValid)
	require.NotEmpty(t, c.Issues)
	assert.Contains(t, c.Issues[0], "model overloaded")
}

func TestProcess_JSONEnvelope(t *testing.T) {
	c := candidate.Process(`{"choices": [{"message": {"content": "x = 1"}}]}`, "python")
	assert.True(t, c.SyntaxValid)
	assert.Equal(t, "x = 1", c.Extracted)
}

func TestProcess_EmptyResponse(t *testing.T) {
	c := candidate.Process("   ", "python")
	assert.False(t, c.SyntaxValid)
	assert.Contains(t, c.Issues, "empty response")
}

func TestProcess_OtherLanguageSuperficial(t *testing.T) {
	c := candidate.Process("func main() { fmt.Println(1) }", "go")
	assert.True(t, c.SyntaxValid)

	c = candidate.Process("func main() { fmt.Println(1)", "go")
	assert.False(t, c.SyntaxValid)
}
