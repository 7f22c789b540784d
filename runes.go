// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"unicode"
)

const (
	// CR is dropped when it precedes LF and is whitespace otherwise.
	CR rune = '\r'
	// LF ends a title, a label and a diagnostic line.
	LF rune = '\n'
	// EOF is returned by the cursor at end of input.
	EOF rune = -1
)

func isdigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isspace reports whether ch is whitespace other than LF.
func isspace(ch rune) bool {
	return ch != LF && unicode.IsSpace(ch)
}

// iswhitespace reports whether ch is any whitespace, including LF.
func iswhitespace(ch rune) bool {
	return ch != EOF && unicode.IsSpace(ch)
}

// istitle reports whether ch may appear in a span title.
func istitle(ch rune) bool {
	return ch != EOF && ch != LF && ch != '(' && ch != ')'
}

// islabel reports whether ch may appear in a range or trailer label.
func islabel(ch rune) bool {
	return ch != EOF && ch != LF && ch != ')'
}
