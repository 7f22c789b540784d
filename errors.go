// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package qacct

import (
	"errors"
	"fmt"
)

// Sentinel errors for each kind of syntax error. A *ParseError matches
// its sentinel with errors.Is.
var (
	ErrInvalidRange  = errors.New("Invalid range syntax")
	ErrInvalidNumber = errors.New("Invalid account number")
	ErrExpectedOpen  = errors.New("Expected (")
	ErrExpectedClose = errors.New("Expected )")
	ErrExpectedArrow = errors.New("Expected =>")
	ErrExpectedEntry = errors.New("Expected range or group")
	ErrUnexpectedEOF = errors.New("Unexpected end of input")
)

// ParseError is returned when the parser finds a syntax error.
// It is the only error type returned by Parse.
type ParseError struct {
	Pos      Position // where the error was detected
	Message  string   // "Invalid range syntax"
	LineText string   // text of the line holding Pos
	Err      error    // sentinel for the error kind, may be nil
}

func (e *ParseError) Line() int   { return e.Pos.Line }
func (e *ParseError) Column() int { return e.Pos.Column }

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, pos %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Display returns the diagnostic that callers should print verbatim.
func (e *ParseError) Display() string {
	return FormatDiagnostic(e.Pos, e.Message, e.LineText)
}
