// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strconv"

	"carvel.dev/fluid/pkg/filepos"
	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

// TokenStream exposes a tag's argument tokens to plugins through
// expectation combinators. Every combinator fails with a ParseError naming
// what was expected, so plugin argument grammars report failures uniformly.
type TokenStream struct {
	tokens   []Token
	pos      int
	position *filepos.Position // of the enclosing construct
}

func newTokenStream(tokens []Token, position *filepos.Position) *TokenStream {
	return &TokenStream{tokens: tokens, position: position}
}

// ExpectNext consumes and returns the next token, failing with
// msgIfExhausted when none remain.
func (s *TokenStream) ExpectNext(msgIfExhausted string) (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, NewParseError(msgIfExhausted, s.position)
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *TokenStream) ExpectIdentifier() (string, error) {
	tok, err := s.ExpectNext("Identifier expected.")
	if err != nil {
		return "", err
	}
	if tok.Kind != TokenIdentifier {
		return "", NewParseError("Identifier expected.", tok.Position)
	}
	return tok.Value, nil
}

// ExpectLiteralString consumes the next token and requires its source form
// to be exactly val; msg is used for both exhaustion and mismatch. String
// literals never match: `"="` is not the assignment operator.
func (s *TokenStream) ExpectLiteralString(val string, msg string) error {
	tok, err := s.ExpectNext(msg)
	if err != nil {
		return err
	}
	if tok.Kind == TokenString || tok.Value != val {
		return NewParseError(msg, tok.Position)
	}
	return nil
}

func (s *TokenStream) ExpectString() (string, error) {
	tok, err := s.ExpectNext("String literal expected.")
	if err != nil {
		return "", err
	}
	if tok.Kind != TokenString {
		return "", NewParseError("String literal expected.", tok.Position)
	}
	return tok.Value, nil
}

// ExpectNothing fails if any tokens remain unconsumed, citing the first
// unexpected one.
func (s *TokenStream) ExpectNothing() error {
	if s.pos < len(s.tokens) {
		tok := s.tokens[s.pos]
		return NewParseErrorf(tok.Position, "Expected nothing further, but found '%s'", tok.Value)
	}
	return nil
}

func (s *TokenStream) peekKind() (TokenKind, bool) {
	if s.pos >= len(s.tokens) {
		return 0, false
	}
	return s.tokens[s.pos].Kind, true
}

// PeekIdentifier reports the next token's value when it is an identifier,
// without consuming it.
func (s *TokenStream) PeekIdentifier() (string, bool) {
	if kind, ok := s.peekKind(); !ok || kind != TokenIdentifier {
		return "", false
	}
	return s.tokens[s.pos].Value, true
}

// Remaining reports whether any tokens are left unconsumed.
func (s *TokenStream) Remaining() bool { return s.pos < len(s.tokens) }

// ExpectExpression parses a single literal or path expression.
func (s *TokenStream) ExpectExpression() (template.Expression, error) {
	tok, err := s.ExpectNext("Expression expected.")
	if err != nil {
		return template.Expression{}, err
	}

	switch tok.Kind {
	case TokenString:
		return template.NewLiteralExpression(values.NewString(tok.Value)), nil

	case TokenInteger:
		num, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return template.Expression{}, NewParseErrorf(tok.Position, "Malformed integer literal '%s'", tok.Value)
		}
		return template.NewLiteralExpression(values.NewInt(num)), nil

	case TokenFloat:
		num, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return template.Expression{}, NewParseErrorf(tok.Position, "Malformed float literal '%s'", tok.Value)
		}
		return template.NewLiteralExpression(values.NewFloat(num)), nil

	case TokenIdentifier:
		switch tok.Value {
		case "true":
			return template.NewLiteralExpression(values.NewBool(true)), nil
		case "false":
			return template.NewLiteralExpression(values.NewBool(false)), nil
		case "nil", "null":
			return template.NewLiteralExpression(values.NewNil()), nil
		}
		return s.expectPath(tok.Value)

	default:
		return template.Expression{}, NewParseErrorf(tok.Position, "Unexpected token '%s'", tok.Value)
	}
}

func (s *TokenStream) expectPath(root string) (template.Expression, error) {
	var segments []template.PathSegment

	for {
		kind, ok := s.peekKind()
		if !ok {
			break
		}

		switch kind {
		case TokenDot:
			s.pos++
			key, err := s.ExpectIdentifier()
			if err != nil {
				return template.Expression{}, err
			}
			segments = append(segments, template.NewKeySegment(key))

		case TokenOpenSquare:
			s.pos++
			tok, err := s.ExpectNext("Index or key expected.")
			if err != nil {
				return template.Expression{}, err
			}
			switch tok.Kind {
			case TokenInteger:
				idx, err := strconv.ParseInt(tok.Value, 10, 64)
				if err != nil {
					return template.Expression{}, NewParseErrorf(tok.Position, "Malformed integer literal '%s'", tok.Value)
				}
				segments = append(segments, template.NewIndexSegment(idx))
			case TokenString:
				segments = append(segments, template.NewKeySegment(tok.Value))
			default:
				return template.Expression{}, NewParseErrorf(tok.Position, "Expected integer or string index, but found '%s'", tok.Value)
			}
			if err := s.ExpectLiteralString("]", "Closing bracket ']' expected."); err != nil {
				return template.Expression{}, err
			}

		default:
			return template.NewPathExpression(root, segments...), nil
		}
	}

	return template.NewPathExpression(root, segments...), nil
}

// ExpectFilterChain parses an expression followed by zero or more
// `| name (: arg (, arg)*)?` filter invocations, resolving each filter
// name through the language registry and binding its arguments.
func (s *TokenStream) ExpectFilterChain(lang *Language) (template.FilterChain, error) {
	if s.pos >= len(s.tokens) {
		return template.FilterChain{}, NewParseError("FilterChain expected.", s.position)
	}

	entry, err := s.ExpectExpression()
	if err != nil {
		return template.FilterChain{}, err
	}

	var filters []template.Filter

	for {
		kind, ok := s.peekKind()
		if !ok || kind != TokenPipe {
			break
		}
		s.pos++

		nameTok, err := s.ExpectNext("Filter name expected.")
		if err != nil {
			return template.FilterChain{}, err
		}
		if nameTok.Kind != TokenIdentifier {
			return template.FilterChain{}, NewParseError("Filter name expected.", nameTok.Position)
		}

		var args []template.Expression
		if kind, ok := s.peekKind(); ok && kind == TokenColon {
			s.pos++
			for {
				arg, err := s.ExpectExpression()
				if err != nil {
					return template.FilterChain{}, err
				}
				args = append(args, arg)

				if kind, ok := s.peekKind(); !ok || kind != TokenComma {
					break
				}
				s.pos++
			}
		}

		plugin, found := lang.Filter(nameTok.Value)
		if !found {
			return template.FilterChain{}, NewParseErrorf(nameTok.Position, "Unknown filter '%s'", nameTok.Value)
		}

		filter, err := plugin.Parse(args)
		if err != nil {
			return template.FilterChain{}, NewParseError(err.Error(), nameTok.Position)
		}
		filters = append(filters, filter)
	}

	return template.NewFilterChain(entry, filters), nil
}
