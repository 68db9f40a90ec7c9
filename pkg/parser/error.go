// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"

	"carvel.dev/fluid/pkg/filepos"
)

// ParseError reports malformed syntax, an unknown tag/block name, a
// missing closing tag or unconsumed trailing arguments. It is terminal for
// compilation: no partial template is ever returned alongside one.
type ParseError struct {
	Msg      string
	Position *filepos.Position
}

var _ error = &ParseError{}

func NewParseError(msg string, pos *filepos.Position) *ParseError {
	return &ParseError{Msg: msg, Position: pos}
}

func NewParseErrorf(pos *filepos.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Position: pos}
}

func (e *ParseError) Error() string {
	if e.Position.IsKnown() {
		return fmt.Sprintf("%s (%s)", e.Msg, e.Position.AsCompactString())
	}
	return e.Msg
}
