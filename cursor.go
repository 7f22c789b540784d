// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"unicode/utf8"
)

// Cursor invariants and coordinate system
//
// The cursor treats input as an immutable UTF-8 byte slice.
//
// Fields:
//   input       - the original []byte
//   length      - len(input)
//
//   r           - the current rune, or EOF when we have read past the end.
//                 Line endings are normalized so that:
//                   * "\n"   (LF) stays "\n"
//                   * "\r\n" (CRLF) is seen as a single "\n" rune
//                   * stray "\r" is whitespace to callers
//
//   posCurrRune - index into input of the first byte of r,
//                 or length when r == EOF.
//   posNextRune - index into input of the first byte of the *next* rune,
//                 or length when r == EOF.
//
// Invariants (must always hold):
//   0 <= posCurrRune <= posNextRune <= length
//
//   r == EOF  <=> posCurrRune == posNextRune == length
//
//   r != EOF  => posCurrRune < length && posNextRune > posCurrRune
//                and input[posCurrRune:posNextRune] encodes exactly r
//                (or CR+LF when r == LF).
//
// line and column always describe r, so position() is the location
// of the rune that peek() returns.

type cursor struct {
	r           rune // current rune
	line        int  // line number of current rune
	column      int  // column number of current rune
	posCurrRune int  // position of current rune
	posNextRune int  // position of next rune
	length      int  // length of input buffer
	input       []byte
}

// cursorMark is a snapshot of the cursor state. The cursor never
// mutates input, so restoring these fields is a complete rewind.
type cursorMark struct {
	r           rune
	line        int
	column      int
	posCurrRune int
	posNextRune int
}

func newCursor(input []byte) *cursor {
	c := &cursor{
		input:  input,
		length: len(input),
		line:   1,
		column: 1,
	}
	c.load()
	return c
}

// peek returns the current rune without advancing the input.
// It returns EOF once the input is exhausted.
func (c *cursor) peek() rune {
	return c.r
}

// advance consumes and returns the current rune, updating line/col.
// Calling advance at end of input returns EOF and does not move.
func (c *cursor) advance() rune {
	ch := c.r
	if ch == EOF {
		return EOF
	}
	if ch == LF {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.posCurrRune = c.posNextRune
	c.load()
	return ch
}

// load decodes the rune at posCurrRune.
// It normalizes "\r\n" into a single LF rune.
func (c *cursor) load() {
	if c.posCurrRune >= c.length {
		c.posCurrRune, c.posNextRune = c.length, c.length
		c.r = EOF
		return
	}

	// read the next rune, optimizing for ASCII input.
	r, w := rune(c.input[c.posCurrRune]), 1
	if r == CR && c.posCurrRune+1 < c.length && c.input[c.posCurrRune+1] == '\n' {
		// merge CR+LF into a single LF rune, but consume both bytes
		r, w = LF, 2
	} else if r >= utf8.RuneSelf {
		// the current rune must be decoded
		r, w = utf8.DecodeRune(c.input[c.posCurrRune:])
	}
	c.posNextRune = c.posCurrRune + w
	c.r = r
}

// skipWhitespace consumes a run of spaces, tabs and new-lines.
func (c *cursor) skipWhitespace() {
	for iswhitespace(c.r) {
		c.advance()
	}
}

// skipSpaces consumes a run of whitespace, not including new-lines.
func (c *cursor) skipSpaces() {
	for isspace(c.r) {
		c.advance()
	}
}

// consumeWhile consumes the maximal run of runes satisfying pred
// and returns the text of that run.
func (c *cursor) consumeWhile(pred func(rune) bool) string {
	start := c.posCurrRune
	for c.r != EOF && pred(c.r) {
		c.advance()
	}
	return string(c.input[start:c.posCurrRune])
}

func (c *cursor) iseof() bool {
	return c.r == EOF
}

// position returns the location of the current rune.
func (c *cursor) position() Position {
	return Position{
		Line:   c.line,
		Column: c.column,
		Offset: c.posCurrRune,
	}
}

// currentLineText returns the full text of the line containing the
// current rune, without the line ending.
func (c *cursor) currentLineText() string {
	return string(findLine(c.input, c.posCurrRune))
}

func (c *cursor) mark() cursorMark {
	return cursorMark{
		r:           c.r,
		line:        c.line,
		column:      c.column,
		posCurrRune: c.posCurrRune,
		posNextRune: c.posNextRune,
	}
}

func (c *cursor) reset(m cursorMark) {
	c.r = m.r
	c.line = m.line
	c.column = m.column
	c.posCurrRune = m.posCurrRune
	c.posNextRune = m.posNextRune
}
