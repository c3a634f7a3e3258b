// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package pycode performs structural validation of Python source without a
// full interpreter-grade parser: string and comment aware line scanning,
// bracket balance, block-header checks, function span extraction, and
// mechanical syntax repair.
package pycode

import (
	"fmt"
	"strings"
)

// Result is the outcome of a syntax check.
type Result struct {
	Valid  bool
	Issues []string
}

// blockKeywords open an indented suite and must end their logical line
// with a colon.
var blockKeywords = map[string]bool{
	"def": true, "class": true, "if": true, "elif": true, "else": true,
	"for": true, "while": true, "try": true, "except": true,
	"finally": true, "with": true, "async": true,
}

// openers maps closing brackets to their expected opener.
var openers = map[byte]byte{')': '(', ']': '[', '}': '{'}

// Check validates code structurally: balanced brackets outside strings,
// terminated string literals, colon-terminated block headers, and indented
// suites after them. It reports every issue it can find but marks the
// result invalid on the first structural failure.
func Check(code string) Result {
	if strings.TrimSpace(code) == "" {
		return Result{Valid: false, Issues: []string{"Syntax error: empty input"}}
	}

	lines := strings.Split(code, "\n")
	st := &lineState{}
	var stack []byte
	var issues []string

	// Logical-line assembly for colon checks on block headers.
	headerOpen := false   // inside a block-header logical line
	headerLine := 0       // physical line where the header started
	headerIndent := 0     // indent of the header line
	headerText := ""      // accumulated code of the header logical line
	suiteWanted := false  // a completed header awaits an indented suite
	suiteHeader := 0      // line number of that header
	suiteIndent := 0      // its indent
	continuation := false // previous line ended with a backslash

	for n, raw := range lines {
		lineNo := n + 1
		wasInString := st.inTriple
		sc := scanLine(raw, st)
		if sc.unterminated {
			issues = append(issues, fmt.Sprintf("Syntax error: unterminated string literal (detected at line %d)", lineNo))
			return Result{Valid: false, Issues: issues}
		}
		if wasInString || isBlank(sc.code) {
			continuation = false
			continue
		}

		indent := indentOf(sc.code)
		trimmed := strings.TrimSpace(sc.code)
		startDepth := len(stack)

		if suiteWanted && startDepth == 0 && !continuation {
			if indent <= suiteIndent {
				issues = append(issues, fmt.Sprintf("Syntax error: expected an indented block after line %d", suiteHeader))
				return Result{Valid: false, Issues: issues}
			}
			suiteWanted = false
		}

		// Bracket balance over the string/comment-blanked code.
		for i := 0; i < len(sc.code); i++ {
			c := sc.code[i]
			switch c {
			case '(', '[', '{':
				stack = append(stack, c)
			case ')', ']', '}':
				if len(stack) == 0 || stack[len(stack)-1] != openers[c] {
					issues = append(issues, fmt.Sprintf("Syntax error: unmatched %q (line %d)", string(c), lineNo))
					return Result{Valid: false, Issues: issues}
				}
				stack = stack[:len(stack)-1]
			}
		}

		// Track block-header logical lines so a colon check can span a
		// multi-line signature.
		if !headerOpen && startDepth == 0 && !continuation {
			word := firstWord(trimmed)
			if blockKeywords[word] {
				headerOpen = true
				headerLine = lineNo
				headerIndent = indent
				headerText = ""
			}
		}
		if headerOpen {
			headerText += trimmed + " "
		}

		continuation = strings.HasSuffix(trimmed, "\\")
		if headerOpen && len(stack) == 0 && !continuation {
			headerOpen = false
			body := strings.TrimSpace(headerText)
			colon := strings.LastIndexByte(body, ':')
			if colon < 0 {
				issues = append(issues, fmt.Sprintf("Syntax error: expected ':' (line %d)", headerLine))
				return Result{Valid: false, Issues: issues}
			}
			// A one-liner like "def f(): pass" needs no indented suite.
			if strings.TrimSpace(body[colon+1:]) == "" {
				suiteWanted = true
				suiteHeader = lineNo
				suiteIndent = headerIndent
			}
		}
	}

	switch {
	case st.inTriple:
		issues = append(issues, "Syntax error: unterminated triple-quoted string literal")
	case len(stack) > 0:
		issues = append(issues, fmt.Sprintf("Syntax error: %q was never closed", string(stack[len(stack)-1])))
	case headerOpen:
		issues = append(issues, fmt.Sprintf("Syntax error: incomplete statement (line %d)", headerLine))
	case suiteWanted:
		issues = append(issues, fmt.Sprintf("Syntax error: expected an indented block after line %d", suiteHeader))
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}

// firstWord returns the leading identifier of a trimmed line.
func firstWord(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' {
			continue
		}
		return s[:i]
	}
	return s
}
