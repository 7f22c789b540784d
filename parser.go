// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

/*
Grammar:

	document   := span*
	span       := title? '(' block_item+ ')' trailer?
	block_item := range | span
	range      := integer '..' integer '=>' label
	title      := free_text_up_to('(')
	trailer    := '=>' label
	label      := free_text_up_to(newline | ')')
	integer    := digit+

Invariants:
 * Every rule starts with the cursor on the first rune of its construct
   (callers skip whitespace) and returns with the cursor on the first rune
   after it.
 * Rules return errors; they never panic. The first error aborts the parse.
 * parseRange is the only rule that backtracks. If an item starts with digits
   that are not followed by '.', the cursor is rewound and the item is parsed
   as a span whose title starts with those digits. Once a '.' follows the
   digits, the item must be a range.
 * A span's trailer is SubTotal when the span is an item of another span's
   block and SumTotal otherwise.

Nesting depth is limited only by the goroutine stack. WithExplicitStack
switches to parseDocumentStack, which keeps open spans on the heap.
*/

type parser struct {
	c      *cursor
	logger *slog.Logger
	depth  int // number of open spans, for logging only
}

// Parse parses the input and returns the top-level spans.
// Syntax errors are returned as a *ParseError.
func Parse(input []byte, options ...Option) (Document, error) {
	var cfg config
	for _, option := range options {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}

	p := &parser{
		c:      newCursor(input),
		logger: cfg.logger,
	}

	var doc Document
	var err error
	if cfg.explicitStack {
		doc, err = p.parseDocumentStack()
	} else {
		doc, err = p.parseDocument()
	}
	if err != nil {
		return nil, err
	}
	p.debug("parsed document", "spans", len(doc))
	return doc, nil
}

// ParseString is Parse for string input.
func ParseString(source string, options ...Option) (Document, error) {
	return Parse([]byte(source), options...)
}

// document := span*
func (p *parser) parseDocument() (Document, error) {
	doc := Document{}
	for {
		p.c.skipWhitespace()
		if p.c.iseof() {
			return doc, nil
		}
		span, err := p.parseSpan(false)
		if err != nil {
			return nil, err
		}
		doc = append(doc, span)
	}
}

// span := title? '(' block_item+ ')' trailer?
func (p *parser) parseSpan(nested bool) (Span, error) {
	name, err := p.parseHeader()
	if err != nil {
		return Span{}, err
	}
	span := Span{Name: name}

	for {
		p.c.skipWhitespace()
		switch p.c.peek() {
		case ')':
			if err := p.closeSpan(&span, nested); err != nil {
				return Span{}, err
			}
			return span, nil
		case EOF:
			return Span{}, p.error(ErrExpectedClose)
		}

		r, ok, err := p.parseRange()
		if err != nil {
			return Span{}, err
		} else if ok {
			span.addRange(r)
			continue
		}

		sub, err := p.parseSpan(true)
		if err != nil {
			return Span{}, err
		}
		span.addSpan(sub)
	}
}

// parseHeader accepts the optional title and the opening parenthesis.
// It returns nil if the title is missing.
func (p *parser) parseHeader() (*string, error) {
	pos := p.c.position()
	title := strings.TrimRightFunc(p.c.consumeWhile(istitle), unicode.IsSpace)
	end := p.c.position()
	// the opening parenthesis may be on a later line than the title
	p.c.skipWhitespace()
	if p.c.peek() != '(' {
		return nil, p.errorAt(end, ErrExpectedOpen)
	}
	p.c.advance()
	p.depth++
	p.debug("open span", "line", pos.Line, "column", pos.Column, "title", title, "depth", p.depth)
	return optional(title), nil
}

// closeSpan accepts the closing parenthesis and the optional trailer.
func (p *parser) closeSpan(span *Span, nested bool) error {
	if len(span.Order) == 0 {
		return p.error(ErrExpectedEntry)
	}
	p.c.advance() // ')'
	sumType, err := p.parseTrailer(nested)
	if err != nil {
		return err
	}
	span.SumType = sumType
	p.debug("close span", "title", span.Title(), "ranges", len(span.Ranges), "subspans", len(span.Subspans), "sum", sumType.Kind, "depth", p.depth)
	p.depth--
	return nil
}

// parseRange accepts `integer '..' integer '=>' label`.
// It returns false, with the cursor unmoved, if the input is not a range.
func (p *parser) parseRange() (Range, bool, error) {
	if !isdigit(p.c.peek()) {
		return Range{}, false, nil
	}
	mark := p.c.mark()

	fromPos := p.c.position()
	fromText := p.c.consumeWhile(isdigit)
	if p.c.peek() != '.' {
		// not a range, so this must be the title of a span
		p.c.reset(mark)
		return Range{}, false, nil
	}
	p.c.advance()
	if p.c.peek() != '.' {
		return Range{}, false, p.error(ErrInvalidRange)
	}
	p.c.advance()

	if !isdigit(p.c.peek()) {
		return Range{}, false, p.error(ErrInvalidRange)
	}
	toPos := p.c.position()
	toText := p.c.consumeWhile(isdigit)

	if err := p.expectArrow(); err != nil {
		return Range{}, false, err
	}
	title := p.parseLabel()

	from, err := strconv.Atoi(fromText)
	if err != nil {
		return Range{}, false, p.errorAt(fromPos, ErrInvalidNumber)
	}
	to, err := strconv.Atoi(toText)
	if err != nil {
		return Range{}, false, p.errorAt(toPos, ErrInvalidNumber)
	}

	p.debug("range", "line", fromPos.Line, "from", from, "to", to, "title", title)
	return Range{Title: title, From: from, To: to}, true, nil
}

// parseTrailer accepts the optional `'=>' label` after a span's block.
func (p *parser) parseTrailer(nested bool) (SumType, error) {
	p.c.skipWhitespace()
	if p.c.peek() != '=' {
		return SumType{Kind: NoSum}, nil
	}
	if err := p.expectArrow(); err != nil {
		return SumType{}, err
	}
	label := p.parseLabel()
	if nested {
		return SumType{Kind: SubTotal, Label: optional(label)}, nil
	}
	return SumType{Kind: SumTotal, Label: optional(label)}, nil
}

// expectArrow skips whitespace and accepts "=>".
func (p *parser) expectArrow() error {
	p.c.skipWhitespace()
	for _, want := range []rune{'=', '>'} {
		switch p.c.peek() {
		case want:
			p.c.advance()
		case EOF:
			return p.error(ErrUnexpectedEOF)
		default:
			return p.error(ErrExpectedArrow)
		}
	}
	return nil
}

// parseLabel returns the text up to the end of the line or a closing
// parenthesis, without leading or trailing whitespace.
func (p *parser) parseLabel() string {
	p.c.skipSpaces()
	return strings.TrimRightFunc(p.c.consumeWhile(islabel), unicode.IsSpace)
}

func (s *Span) addRange(r Range) {
	s.Ranges = append(s.Ranges, r)
	s.Order = append(s.Order, RangeEntry)
}

func (s *Span) addSpan(sub Span) {
	s.Subspans = append(s.Subspans, sub)
	s.Order = append(s.Order, SpanEntry)
}

// error returns a syntax error at the current position.
func (p *parser) error(kind error) *ParseError {
	return p.errorAt(p.c.position(), kind)
}

func (p *parser) errorAt(pos Position, kind error) *ParseError {
	err := &ParseError{
		Pos:      pos,
		Message:  kind.Error(),
		LineText: string(findLine(p.c.input, pos.Offset)),
		Err:      kind,
	}
	p.debug("syntax error", "line", pos.Line, "column", pos.Column, "error", err.Message)
	return err
}

func (p *parser) debug(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, args...)
}
