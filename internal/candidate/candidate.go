// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package candidate runs a raw model response through the
// extraction -> classification -> validation -> repair pipeline, producing
// a code candidate the orchestrator can judge.
package candidate

import (
	"fmt"
	"strings"

	"github.com/spyq/spyq/internal/classify"
	"github.com/spyq/spyq/internal/extract"
	"github.com/spyq/spyq/internal/pycode"
)

// Candidate is one generation attempt moving through the pipeline stages.
// It is created fresh each iteration and mutated in place by the stages.
type Candidate struct {
	Raw         string
	Extracted   string
	PromptLike  bool
	SyntaxValid bool
	Issues      []string
}

// Process turns raw response text into a Candidate. Language selects the
// validation depth: "python" gets the full structural check and repair
// pass, anything else gets superficial checks only.
//
// Every issue encountered along the way is accumulated: a repaired syntax
// error still appears in Issues so callers know a fix happened.
func Process(raw, language string) *Candidate {
	c := &Candidate{Raw: raw}

	if strings.TrimSpace(raw) == "" {
		c.Issues = append(c.Issues, "empty response")
		return c
	}

	if msg, ok := extract.ErrorPayload(raw); ok {
		c.Issues = append(c.Issues, fmt.Sprintf("provider returned error payload: %s", msg))
		return c
	}

	text := raw
	if payload, ok := extract.FromEnvelope(raw); ok {
		text = payload
	}

	c.PromptLike = classify.LooksLikePrompt(text)
	code := extract.CodeBlocks(text)

	if c.PromptLike {
		if code == text || strings.TrimSpace(code) == "" {
			c.Issues = append(c.Issues, "response is a prompt, not code")
			return c
		}
		// Instructions wrapped around a fenced block: the extraction
		// salvaged the code part.
		c.Issues = append(c.Issues, "Extracted code from prompt")
	}

	c.Extracted = code

	if language != "python" {
		c.SyntaxValid = superficialCheck(code)
		if !c.SyntaxValid {
			c.Issues = append(c.Issues, "Syntax error: unbalanced brackets")
		}
		return c
	}

	res := pycode.Check(code)
	if res.Valid {
		c.SyntaxValid = true
		return c
	}
	c.Issues = append(c.Issues, res.Issues...)

	if fixed, ok := pycode.AttemptFix(code); ok {
		c.Extracted = fixed
		c.SyntaxValid = true
		c.Issues = append(c.Issues, "applied automatic syntax fix")
	}
	return c
}

// superficialCheck is the fallback for languages without a structural
// scanner: non-empty content with balanced brackets.
func superficialCheck(code string) bool {
	depth := map[byte]int{}
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '(', '[', '{':
			depth[code[i]]++
		case ')', ']', '}':
			depth[pairs[code[i]]]--
		}
	}
	for _, d := range depth {
		if d != 0 {
			return false
		}
	}
	return strings.TrimSpace(code) != ""
}
