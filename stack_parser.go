// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

// frame is an open span on the explicit stack.
type frame struct {
	span   Span
	nested bool
}

// parseDocumentStack parses the same grammar as parseDocument without
// recursion. Each '(' pushes a frame and each ')' pops one and attaches
// the finished span to its parent frame, or to the document when the
// stack is empty.
func (p *parser) parseDocumentStack() (Document, error) {
	doc := Document{}
	var stack []*frame
	for {
		p.c.skipWhitespace()

		if len(stack) == 0 {
			if p.c.iseof() {
				return doc, nil
			}
			name, err := p.parseHeader()
			if err != nil {
				return nil, err
			}
			stack = append(stack, &frame{span: Span{Name: name}})
			continue
		}

		top := stack[len(stack)-1]
		switch p.c.peek() {
		case ')':
			if err := p.closeSpan(&top.span, top.nested); err != nil {
				return nil, err
			}
			stack[len(stack)-1] = nil
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				doc = append(doc, top.span)
			} else {
				stack[len(stack)-1].span.addSpan(top.span)
			}
			continue
		case EOF:
			return nil, p.error(ErrExpectedClose)
		}

		r, ok, err := p.parseRange()
		if err != nil {
			return nil, err
		} else if ok {
			top.span.addRange(r)
			continue
		}

		name, err := p.parseHeader()
		if err != nil {
			return nil, err
		}
		stack = append(stack, &frame{span: Span{Name: name}, nested: true})
	}
}
