// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package classify decides whether a block of text is source code or
// natural-language instructions. Model backends sometimes echo the prompt
// back instead of answering it; the classifier keeps that text from being
// accepted as generated code.
package classify

import (
	"regexp"
	"strings"
)

// instructionPatterns match imperative/instructional phrasing at the start
// of a line. Polish verbs are included because prompts are not always
// English.
var instructionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(please\s+)?(create|write|implement|generate|make|add|build|develop)\b`),
	regexp.MustCompile(`(?i)^\s*(stw[oó]rz|napisz|zaimplementuj|wygeneruj|dodaj)\b`),
	regexp.MustCompile(`(?i)\b(a function that|a program that|a script that|a class that)\b`),
	regexp.MustCompile(`(?i)^\s*(here is|here's|this is|the following)\b.*\b(task|request|requirement)`),
}

// codeTokenPattern matches structural tokens that only appear in source.
var codeTokenPattern = regexp.MustCompile(`(?m)^\s*(def |class |import |from \S+ import |return\b|if __name__|@\w+|\w+\s*=\s*\S)|^\t|^    \S`)

var fencePattern = regexp.MustCompile("(?s)```.*?```")

// LooksLikePrompt reports whether text reads as natural-language
// instructions rather than code. Text that mixes instructions with fenced
// code is still prompt-like when the instructional portion dominates
// outside the fences: callers should extract the fences instead of
// accepting the blob wholesale.
func LooksLikePrompt(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	hasFence := strings.Contains(trimmed, "```")
	judged := trimmed
	if hasFence {
		// Classification runs on the prose that remains once fenced code
		// is stripped out.
		judged = strings.TrimSpace(fencePattern.ReplaceAllString(trimmed, ""))
		if judged == "" {
			// Nothing but fenced code: not a prompt, just needs extraction.
			return false
		}
	}

	instructional := false
	for _, pat := range instructionPatterns {
		if pat.MatchString(judged) {
			instructional = true
			break
		}
	}
	if !instructional {
		return false
	}

	if hasFence {
		// Instructions wrapping a code fence: flag for extraction when the
		// prose outweighs a token presence in the remainder.
		return !codeTokenPattern.MatchString(judged) || proseRatio(trimmed) > 0.5
	}

	return !codeTokenPattern.MatchString(judged)
}

// proseRatio returns the fraction of the text that lies outside fenced
// code spans.
func proseRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	fenced := 0
	for _, m := range fencePattern.FindAllString(text, -1) {
		fenced += len(m)
	}
	return float64(len(text)-fenced) / float64(len(text))
}
