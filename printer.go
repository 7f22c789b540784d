// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Format writes the document in canonical form: one item per line,
// blocks indented four spaces, and a blank line between top-level spans.
// Parsing the output returns an equal document.
func Format(w io.Writer, doc Document) error {
	var b bytes.Buffer
	for n, span := range doc {
		if n > 0 {
			b.WriteByte('\n')
		}
		formatSpan(&b, &span, 0)
	}
	_, err := w.Write(b.Bytes())
	return err
}

func (doc Document) String() string {
	var sb strings.Builder
	_ = Format(&sb, doc)
	return sb.String()
}

func formatSpan(b *bytes.Buffer, span *Span, depth int) {
	indent := strings.Repeat("    ", depth)

	b.WriteString(indent)
	if span.Name != nil {
		b.WriteString(*span.Name)
		b.WriteByte(' ')
	}
	b.WriteString("(\n")

	for _, entry := range span.Entries() {
		if entry.Span != nil {
			formatSpan(b, entry.Span, depth+1)
			continue
		}
		b.WriteString(indent)
		b.WriteString("    ")
		b.WriteString(strconv.Itoa(entry.Range.From))
		b.WriteString("..")
		b.WriteString(strconv.Itoa(entry.Range.To))
		b.WriteString(" =>")
		if entry.Range.Title != "" {
			b.WriteByte(' ')
			b.WriteString(entry.Range.Title)
		}
		b.WriteByte('\n')
	}

	b.WriteString(indent)
	b.WriteByte(')')
	if span.SumType.Kind != NoSum {
		b.WriteString(" =>")
		if label, ok := span.SumType.Text(); ok {
			b.WriteByte(' ')
			b.WriteString(label)
		}
	}
	b.WriteByte('\n')
}
