// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package pycode

import "strings"

// lineState carries string/continuation state across physical lines.
type lineState struct {
	inTriple    bool
	tripleDelim string // `"""` or `'''`
}

// scannedLine is the result of scanning one physical line.
type scannedLine struct {
	// code holds the line with string literal contents and comments blanked
	// out, so bracket counting and keyword matching ignore them. Quote
	// delimiters themselves are preserved: a docstring line still counts
	// as a statement.
	code string

	// unterminated is set when a single-quoted string is still open at end
	// of line without a trailing backslash continuation.
	unterminated bool

	// quote is the quote character of the unterminated string, if any.
	quote byte
}

// scanLine consumes one physical line, updating string state. Contents of
// string literals are replaced with spaces in the returned code so that
// brackets and keywords inside strings are ignored by later passes.
func scanLine(line string, st *lineState) scannedLine {
	var out strings.Builder
	i := 0

	if st.inTriple {
		end := strings.Index(line, st.tripleDelim)
		if end < 0 {
			return scannedLine{code: strings.Repeat(" ", len(line))}
		}
		out.WriteString(strings.Repeat(" ", end))
		out.WriteString(st.tripleDelim)
		i = end + 3
		st.inTriple = false
		st.tripleDelim = ""
	}

	for i < len(line) {
		c := line[i]
		switch {
		case c == '#':
			// Comment runs to end of line.
			out.WriteString(strings.Repeat(" ", len(line)-i))
			return scannedLine{code: out.String()}
		case c == '"' || c == '\'':
			if i+2 < len(line) && line[i+1] == c && line[i+2] == c {
				delim := string([]byte{c, c, c})
				end := strings.Index(line[i+3:], delim)
				if end < 0 {
					st.inTriple = true
					st.tripleDelim = delim
					out.WriteString(delim)
					out.WriteString(strings.Repeat(" ", len(line)-i-3))
					return scannedLine{code: out.String()}
				}
				out.WriteString(delim)
				out.WriteString(strings.Repeat(" ", end))
				out.WriteString(delim)
				i += end + 6
				continue
			}
			closed := false
			j := i + 1
			for j < len(line) {
				if line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == c {
					closed = true
					break
				}
				j++
			}
			if !closed {
				// A trailing backslash continues the string onto the next
				// physical line; anything else is a syntax error.
				if strings.HasSuffix(line, "\\") {
					out.WriteByte(c)
					out.WriteString(strings.Repeat(" ", len(line)-i-1))
					return scannedLine{code: out.String()}
				}
				return scannedLine{code: out.String(), unterminated: true, quote: c}
			}
			out.WriteByte(c)
			out.WriteString(strings.Repeat(" ", j-i-1))
			out.WriteByte(c)
			i = j + 1
		default:
			out.WriteByte(c)
			i++
		}
	}
	return scannedLine{code: out.String()}
}

// indentOf returns the number of leading spaces, counting tabs as 8 to
// keep mixed indentation comparable.
func indentOf(line string) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += 8
		default:
			return n
		}
	}
	return n
}

// isBlank reports whether a scanned code line holds no code.
func isBlank(code string) bool {
	return strings.TrimSpace(code) == ""
}
