// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"fmt"
	"io"
	"strings"
)

// FormatDiagnostic renders an error in the fixed diagnostic format:
//
//	line: 5, pos: 22
//	                6020.6100 => Office Supplies
//	---------------------^
//
//	ERROR: Invalid range syntax
//
// The caret is preceded by column-1 dashes so that it lines up under the
// offending character when printed with a monospaced font. The result has
// no leading or trailing new-line.
func FormatDiagnostic(pos Position, message, lineText string) string {
	dashes := pos.Column - 1
	if dashes < 0 {
		dashes = 0
	}
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "line: %d, pos: %d\n", pos.Line, pos.Column)
	sb.WriteString(lineText)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("-", dashes))
	sb.WriteString("^\n\nERROR: ")
	sb.WriteString(message)
	return sb.String()
}

// PrintDiagnostic writes the diagnostic for err, followed by a new-line.
func PrintDiagnostic(w io.Writer, err *ParseError) error {
	_, e := fmt.Fprintln(w, err.Display())
	return e
}
