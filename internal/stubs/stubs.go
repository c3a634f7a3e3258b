// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package stubs finds placeholder function bodies in generated code,
// builds targeted re-prompts for them, and merges model completions back
// into the original source by function name.
package stubs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spyq/spyq/internal/pycode"
)

// Incomplete describes one stub function found in a source file. Name is
// unique within the file (the first definition wins on collision).
type Incomplete struct {
	Name      string
	Signature string
	Body      string
	StartLine int
	EndLine   int
}

// todoPattern flags placeholder comments inside a function body.
var todoPattern = regexp.MustCompile(`(?i)#.*\b(todo|fixme|xxx|implement|placeholder)\b`)

// Detect scans code for incomplete function definitions. A function is
// incomplete when its body is empty, a lone pass, a docstring with nothing
// else, a bare ellipsis, or carries a TODO-style comment. Unparsable input
// degrades gracefully: no functions are reported rather than an error,
// since analysis cannot proceed without structure.
func Detect(code string) (bool, []Incomplete) {
	if !pycode.Check(code).Valid {
		return false, nil
	}

	seen := make(map[string]bool)
	var found []Incomplete
	for _, span := range pycode.Functions(code) {
		if seen[span.Name] {
			continue
		}
		seen[span.Name] = true
		if !isStub(span) {
			continue
		}
		found = append(found, Incomplete{
			Name:      span.Name,
			Signature: span.Signature,
			Body:      strings.Join(span.Body, "\n"),
			StartLine: span.StartLine,
			EndLine:   span.EndLine,
		})
	}
	return len(found) > 0, found
}

// isStub applies the language-agnostic stub predicate to a function span.
func isStub(span pycode.Span) bool {
	if len(span.Body) == 0 {
		// One-liner: judge the statement after the signature's colon.
		tail := ""
		if i := strings.LastIndexByte(span.Signature, ':'); i >= 0 {
			tail = strings.TrimSpace(span.Signature[i+1:])
		}
		return tail == "" || tail == "pass" || tail == "..."
	}

	inDoc := false
	docDelim := ""
	sawDocstring := false
	var statements []string

	for _, line := range span.Body {
		trimmed := strings.TrimSpace(line)
		if inDoc {
			if strings.Contains(trimmed, docDelim) {
				inDoc = false
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if todoPattern.MatchString(trimmed) {
				return true
			}
			continue
		}
		if todoPattern.MatchString(trimmed) {
			// Trailing placeholder comment on a code line.
			return true
		}
		if !sawDocstring && len(statements) == 0 &&
			(strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''")) {
			sawDocstring = true
			delim := trimmed[:3]
			rest := trimmed[3:]
			if !strings.Contains(rest, delim) {
				inDoc = true
				docDelim = delim
			}
			continue
		}
		statements = append(statements, trimmed)
	}

	if len(statements) == 0 {
		return true // empty or docstring-only body
	}
	if len(statements) == 1 && (statements[0] == "pass" || statements[0] == "...") {
		return true
	}
	for _, s := range statements {
		if s == "..." {
			return true
		}
	}
	return false
}

// completionPreamble instructs the model to fill in only the marked
// functions.
const completionPreamble = `The following Python code contains incomplete functions.
Implement ONLY the functions marked with "# IMPLEMENT:" comments.
Keep every signature and docstring exactly as written.
Return the complete, runnable code.`

// FormatForCompletion annotates each incomplete function with a marker
// comment above its definition line and wraps the annotated source in an
// instructional preamble.
func FormatForCompletion(code string, incomplete []Incomplete) string {
	lines := strings.Split(code, "\n")

	sorted := make([]Incomplete, len(incomplete))
	copy(sorted, incomplete)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartLine > sorted[j].StartLine })

	for _, inc := range sorted {
		idx := inc.StartLine - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		indent := lines[idx][:len(lines[idx])-len(strings.TrimLeft(lines[idx], " \t"))]
		marker := fmt.Sprintf("%s# IMPLEMENT: %s", indent, inc.Name)
		lines = append(lines[:idx], append([]string{marker}, lines[idx:]...)...)
	}

	return fmt.Sprintf("%s\n\n```python\n%s\n```", completionPreamble, strings.Join(lines, "\n"))
}

// Merge replaces the bodies of functions flagged incomplete in original
// with their counterparts from completed, matching by function name.
// Functions not flagged, or missing from the completed source, are left
// untouched. A completed response that fails to parse makes Merge a no-op:
// working code is never corrupted by bad model output.
func Merge(original, completed string) string {
	hasIncomplete, incomplete := Detect(original)
	if !hasIncomplete {
		return original
	}
	if !pycode.Check(completed).Valid {
		return original
	}

	completedSpans := make(map[string]pycode.Span)
	for _, span := range pycode.Functions(completed) {
		if _, ok := completedSpans[span.Name]; !ok {
			completedSpans[span.Name] = span
		}
	}

	origLines := strings.Split(original, "\n")
	compLines := strings.Split(completed, "\n")

	// Replace bottom-up so earlier line numbers stay valid.
	sorted := make([]Incomplete, len(incomplete))
	copy(sorted, incomplete)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartLine > sorted[j].StartLine })

	origSpans := make(map[string]pycode.Span)
	for _, span := range pycode.Functions(original) {
		if _, ok := origSpans[span.Name]; !ok {
			origSpans[span.Name] = span
		}
	}

	for _, inc := range sorted {
		comp, ok := completedSpans[inc.Name]
		if !ok {
			continue
		}
		replacement := reindent(
			compLines[comp.StartLine-1:comp.EndLine],
			origSpans[inc.Name].Indent-comp.Indent,
		)
		origLines = append(origLines[:inc.StartLine-1],
			append(replacement, origLines[inc.EndLine:]...)...)
	}

	return strings.Join(origLines, "\n")
}

// reindent shifts every non-blank line by delta spaces (left shifts are
// best-effort and never remove non-space characters).
func reindent(lines []string, delta int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			out[i] = ""
		case delta > 0:
			out[i] = strings.Repeat(" ", delta) + line
		case delta < 0:
			trim := -delta
			j := 0
			for j < trim && j < len(line) && line[j] == ' ' {
				j++
			}
			out[i] = line[j:]
		default:
			out[i] = line
		}
	}
	return out
}
