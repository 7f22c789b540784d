// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import "fmt"

// Position represents a position in the original source code.
// Line and Column are 1-based; Column counts runes, not bytes.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, character column
	Offset int // byte index into input (0-based)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// findLine returns the line containing the byte at offset.
// The returned line does not include the new-line (or a CR+LF pair).
// An offset at the end of input returns the last line of the input.
func findLine(src []byte, offset int) []byte {
	if offset > len(src) {
		offset = len(src)
	} else if offset < 0 {
		offset = 0
	}

	// the line starts after the nearest new-line *before* offset
	lineStart := 0
	for i := offset - 1; i >= 0; i-- {
		if src[i] == '\n' {
			lineStart = i + 1
			break
		}
	}

	lineEnd := len(src)
	for i := lineStart; i < len(src); i++ {
		if src[i] == '\n' {
			lineEnd = i
			break
		}
	}
	if lineEnd > lineStart && src[lineEnd-1] == '\r' {
		lineEnd--
	}

	return src[lineStart:lineEnd]
}
