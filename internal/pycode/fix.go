// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package pycode

import "strings"

// AttemptFix applies a fixed, ordered set of mechanical repairs to code
// that fails Check: closing an unterminated string literal at end of line,
// then closing unbalanced trailing brackets, then both together. Each
// variant is revalidated and the first one that checks clean is returned.
// No semantic changes are ever attempted.
func AttemptFix(code string) (string, bool) {
	variants := []string{
		closeStrings(code),
		closeBrackets(code),
		closeBrackets(closeStrings(code)),
	}
	for _, v := range variants {
		if v == code {
			continue
		}
		if Check(v).Valid {
			return v, true
		}
	}
	return "", false
}

// closeStrings terminates an unterminated single-line string by appending
// its quote character at end of line, and closes a dangling triple-quoted
// string at end of input.
func closeStrings(code string) string {
	lines := strings.Split(code, "\n")
	st := &lineState{}
	for i, raw := range lines {
		sc := scanLine(raw, st)
		if sc.unterminated {
			lines[i] = raw + string(sc.quote)
			// Rescan from a clean state so later lines are judged with the
			// string closed.
			return closeStrings(strings.Join(lines, "\n"))
		}
	}
	if st.inTriple {
		return strings.Join(lines, "\n") + "\n" + st.tripleDelim
	}
	return strings.Join(lines, "\n")
}

// closeBrackets appends closers for brackets left open at end of input, in
// reverse opening order.
func closeBrackets(code string) string {
	st := &lineState{}
	var stack []byte
	for _, raw := range strings.Split(code, "\n") {
		sc := scanLine(raw, st)
		for i := 0; i < len(sc.code); i++ {
			switch sc.code[i] {
			case '(', '[', '{':
				stack = append(stack, sc.code[i])
			case ')', ']', '}':
				if len(stack) > 0 && stack[len(stack)-1] == openers[sc.code[i]] {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
	if len(stack) == 0 {
		return code
	}
	closerFor := map[byte]byte{'(': ')', '[': ']', '{': '}'}
	var b strings.Builder
	b.WriteString(code)
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(closerFor[stack[i]])
	}
	return b.String()
}
