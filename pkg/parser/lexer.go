// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"carvel.dev/fluid/pkg/filepos"
)

const (
	outputOpen  = "{{"
	outputClose = "}}"
	tagOpen     = "{%"
	tagClose    = "%}"
)

type elementKind int

const (
	elementText elementKind = iota
	elementOutput
	elementTag
)

// element is one lexical piece of the source: a run of raw text, an
// output construct, or a tag construct. Output/tag elements keep their
// raw inner content; tokenization happens at parse time, so constructs
// consumed as raw source (comment/raw bodies) are never tokenized and may
// hold arbitrary content.
type element struct {
	kind       elementKind
	content    string
	name       string // leading identifier of a tag element, "" if malformed
	position   *filepos.Position
	contentPos *filepos.Position
}

type scanner struct {
	data string
	file string

	i    int
	line int
	col  int
}

func scan(data string, associatedName string) ([]element, error) {
	s := &scanner{data: data, file: associatedName, line: 1, col: 1}

	var elements []element

	textStart := s.i
	textPos := s.pos()

	flushText := func() {
		if s.i > textStart {
			elements = append(elements, element{
				kind:     elementText,
				content:  s.data[textStart:s.i],
				position: textPos,
			})
		}
	}

	for !s.eof() {
		switch {
		case s.lookingAt(outputOpen):
			flushText()
			el, err := s.scanConstruct(elementOutput, outputOpen, outputClose, "output tag")
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			textStart = s.i
			textPos = s.pos()

		case s.lookingAt(tagOpen):
			flushText()
			el, err := s.scanConstruct(elementTag, tagOpen, tagClose, "tag")
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			textStart = s.i
			textPos = s.pos()

		default:
			s.advanceRune()
		}
	}

	flushText()
	return elements, nil
}

// scanConstruct consumes one output or tag construct. The closing
// delimiter search is purely textual: a literal `}}`/`%}` inside a string
// argument ends the construct early, failing tokenization of what is left.
func (s *scanner) scanConstruct(kind elementKind, open, close, what string) (element, error) {
	openPos := s.pos()
	s.advanceBytes(len(open))

	closeIdx := strings.Index(s.data[s.i:], close)
	if closeIdx == -1 {
		return element{}, NewParseErrorf(openPos, "Unterminated %s, expected closing '%s'", what, close)
	}

	content := s.data[s.i : s.i+closeIdx]
	contentPos := s.pos()
	s.advanceBytes(closeIdx + len(close))

	el := element{kind: kind, content: content, position: openPos, contentPos: contentPos}
	if kind == elementTag {
		el.name = tagName(content)
	}
	return el, nil
}

// tagName leniently extracts a tag's leading identifier. A malformed name
// yields "" here and errors at parse time instead, so a tag element inside
// a raw-consuming body never aborts the scan.
func tagName(content string) string {
	i := 0
	for i < len(content) {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}

	first, _ := utf8.DecodeRuneInString(content[i:])
	if i >= len(content) || !isIdentifierStart(first) {
		return ""
	}

	start := i
	for i < len(content) {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !isIdentifierStart(r) && !isDigit(r) {
			break
		}
		i += size
	}
	return content[start:i]
}

func (s *scanner) pos() *filepos.Position {
	return filepos.NewPositionInFile(s.line, s.col, s.file)
}

func (s *scanner) eof() bool { return s.i >= len(s.data) }

func (s *scanner) lookingAt(prefix string) bool {
	return strings.HasPrefix(s.data[s.i:], prefix)
}

func (s *scanner) advanceRune() {
	r, size := utf8.DecodeRuneInString(s.data[s.i:])
	s.i += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) advanceBytes(n int) {
	end := s.i + n
	for s.i < end {
		s.advanceRune()
	}
}

// tokenize splits tag/output contents into argument tokens. Positions are
// continued from the content's place in the enclosing source.
func tokenize(content string, startPos *filepos.Position) ([]Token, error) {
	s := &scanner{data: content, file: startPos.GetFile(), line: startPos.LineNum(), col: startPos.ColNum()}

	var tokens []Token

	for !s.eof() {
		r, _ := utf8.DecodeRuneInString(s.data[s.i:])
		pos := s.pos()

		switch {
		case unicode.IsSpace(r):
			s.advanceRune()

		case r == '\'' || r == '"':
			s.advanceRune()
			start := s.i
			closeIdx := strings.IndexRune(s.data[s.i:], r)
			if closeIdx == -1 {
				return nil, NewParseError("Unterminated string literal", pos)
			}
			s.advanceBytes(closeIdx + 1)
			tokens = append(tokens, Token{TokenString, s.data[start : start+closeIdx], pos})

		case isDigit(r) || (r == '-' && startsNumber(s.data[s.i+1:])):
			start := s.i
			s.advanceRune() // sign or first digit
			kind := TokenInteger
			for !s.eof() {
				next, _ := utf8.DecodeRuneInString(s.data[s.i:])
				if isDigit(next) {
					s.advanceRune()
					continue
				}
				if next == '.' && kind == TokenInteger && startsNumber(s.data[s.i+1:]) {
					kind = TokenFloat
					s.advanceRune()
					continue
				}
				break
			}
			tokens = append(tokens, Token{kind, s.data[start:s.i], pos})

		case isIdentifierStart(r):
			start := s.i
			for !s.eof() {
				next, _ := utf8.DecodeRuneInString(s.data[s.i:])
				if !isIdentifierStart(next) && !isDigit(next) {
					break
				}
				s.advanceRune()
			}
			tokens = append(tokens, Token{TokenIdentifier, s.data[start:s.i], pos})

		case r == '=' || r == '!' || r == '<' || r == '>':
			if strings.HasPrefix(s.data[s.i:], "==") || strings.HasPrefix(s.data[s.i:], "!=") ||
				strings.HasPrefix(s.data[s.i:], "<=") || strings.HasPrefix(s.data[s.i:], ">=") {
				tokens = append(tokens, Token{TokenComparison, s.data[s.i : s.i+2], pos})
				s.advanceBytes(2)
				break
			}
			switch r {
			case '=':
				tokens = append(tokens, Token{TokenAssignment, "=", pos})
			case '<', '>':
				tokens = append(tokens, Token{TokenComparison, string(r), pos})
			default:
				return nil, NewParseErrorf(pos, "Unexpected character '%c'", r)
			}
			s.advanceRune()

		case r == '|':
			tokens = append(tokens, Token{TokenPipe, "|", pos})
			s.advanceRune()
		case r == ':':
			tokens = append(tokens, Token{TokenColon, ":", pos})
			s.advanceRune()
		case r == ',':
			tokens = append(tokens, Token{TokenComma, ",", pos})
			s.advanceRune()
		case r == '.':
			tokens = append(tokens, Token{TokenDot, ".", pos})
			s.advanceRune()
		case r == '[':
			tokens = append(tokens, Token{TokenOpenSquare, "[", pos})
			s.advanceRune()
		case r == ']':
			tokens = append(tokens, Token{TokenCloseSquare, "]", pos})
			s.advanceRune()

		default:
			return nil, NewParseErrorf(pos, "Unexpected character '%c'", r)
		}
	}

	return tokens, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func startsNumber(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return isDigit(r)
}
