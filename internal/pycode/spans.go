// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package pycode

import (
	"regexp"
	"strings"
)

// Span is the uniform function-span representation produced by the
// language-specific scanner. Stub detection operates on Spans only, so the
// predicate itself stays language-agnostic.
type Span struct {
	Name      string
	Signature string   // header logical line, through the trailing colon
	StartLine int      // 1-based line of the def keyword
	EndLine   int      // 1-based last line of the body
	Body      []string // body lines, signature excluded
	Indent    int
}

var defPattern = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)

// Functions extracts every function definition from code, including
// methods and nested functions. Defs inside string literals are ignored.
// The input is not required to be fully valid; scanning is best-effort.
func Functions(code string) []Span {
	lines := strings.Split(code, "\n")
	st := &lineState{}
	scanned := make([]string, len(lines))
	for i, raw := range lines {
		inString := st.inTriple
		sc := scanLine(raw, st)
		if inString {
			scanned[i] = ""
			continue
		}
		scanned[i] = sc.code
	}

	var spans []Span
	for i := 0; i < len(lines); i++ {
		m := defPattern.FindStringSubmatch(scanned[i])
		if m == nil {
			continue
		}
		indent := indentOf(scanned[i])

		// The signature may span lines until its bracket depth returns to
		// zero and the trailing colon appears.
		sigEnd := i
		depth := 0
		for j := i; j < len(lines); j++ {
			for k := 0; k < len(scanned[j]); k++ {
				switch scanned[j][k] {
				case '(', '[', '{':
					depth++
				case ')', ']', '}':
					depth--
				}
			}
			if depth <= 0 {
				sigEnd = j
				break
			}
			sigEnd = j
		}

		// Body runs until the first non-blank line at or below the def's
		// indent level. Lines inside open brackets continue the previous
		// statement and may sit at any column, so indent only ends the body
		// at depth zero.
		bodyEnd := sigEnd
		depth = 0
		var body []string
		for j := sigEnd + 1; j < len(lines); j++ {
			if isBlank(scanned[j]) && strings.TrimSpace(lines[j]) == "" {
				continue
			}
			if depth == 0 && indentOf(scanned[j]) <= indent && !isBlank(scanned[j]) {
				break
			}
			for k := 0; k < len(scanned[j]); k++ {
				switch scanned[j][k] {
				case '(', '[', '{':
					depth++
				case ')', ']', '}':
					if depth > 0 {
						depth--
					}
				}
			}
			body = append(body, lines[j])
			bodyEnd = j
		}

		spans = append(spans, Span{
			Name:      m[2],
			Signature: strings.TrimSpace(strings.Join(lines[i:sigEnd+1], " ")),
			StartLine: i + 1,
			EndLine:   bodyEnd + 1,
			Body:      body,
			Indent:    indent,
		})
	}
	return spans
}
