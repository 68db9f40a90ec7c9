// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"regexp"
	"strings"

	"carvel.dev/fluid/pkg/values"
)

// PathSegment is a single index/key step of a path expression. Segments
// are literals fixed at compile time (`a.b`, `a[0]`, `a["key"]`).
type PathSegment struct {
	key     string
	index   int64
	isIndex bool
}

func NewKeySegment(key string) PathSegment {
	return PathSegment{key: key}
}

func NewIndexSegment(index int64) PathSegment {
	return PathSegment{index: index, isIndex: true}
}

func (s PathSegment) AsValue() values.Value {
	if s.isIndex {
		return values.NewInt(s.index)
	}
	return values.NewString(s.key)
}

var identifierLike = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (s PathSegment) String() string {
	if s.isIndex {
		return fmt.Sprintf("[%d]", s.index)
	}
	if identifierLike.MatchString(s.key) {
		return "." + s.key
	}
	return fmt.Sprintf("[%q]", s.key)
}

// Expression is either a literal value or a path rooted at a variable.
type Expression struct {
	literal   values.Value
	isLiteral bool

	root string
	path []PathSegment
}

func NewLiteralExpression(val values.Value) Expression {
	return Expression{literal: val, isLiteral: true}
}

func NewPathExpression(root string, path ...PathSegment) Expression {
	return Expression{root: root, path: path}
}

// Evaluate resolves the expression against the runtime's variable stack.
// Both root resolution and segment lookup are permissive, degrading to nil
// rather than failing; a literal returns its embedded value directly.
func (e Expression) Evaluate(rt *Runtime) values.Value {
	if e.isLiteral {
		return e.literal
	}

	val := rt.Get(e.root)
	for _, seg := range e.path {
		val = val.Index(seg.AsValue())
	}
	return val
}

// String reproduces the expression's source-equivalent surface syntax.
func (e Expression) String() string {
	if e.isLiteral {
		return renderSource(e.literal)
	}

	var sb strings.Builder
	sb.WriteString(e.root)
	for _, seg := range e.path {
		sb.WriteString(seg.String())
	}
	return sb.String()
}

func renderSource(val values.Value) string {
	if s, ok := val.AsString(); ok {
		return fmt.Sprintf("%q", s)
	}
	if val.IsNil() {
		return "nil"
	}
	return val.Render()
}
