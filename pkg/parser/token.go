// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"carvel.dev/fluid/pkg/filepos"
)

type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenString
	TokenInteger
	TokenFloat
	TokenComparison
	TokenAssignment
	TokenPipe
	TokenColon
	TokenComma
	TokenDot
	TokenOpenSquare
	TokenCloseSquare
)

// Token is one pre-split argument token of a tag or output construct.
// String tokens carry their unquoted contents.
type Token struct {
	Kind     TokenKind
	Value    string
	Position *filepos.Position
}
