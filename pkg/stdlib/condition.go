// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"fmt"
	"strings"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

// condition is `<filterchain> [op <filterchain>]`; a bare chain tests
// truthiness.
type condition struct {
	left  template.FilterChain
	op    string
	right template.FilterChain
}

func parseCondition(args *parser.TokenStream, lang *parser.Language) (condition, error) {
	left, err := args.ExpectFilterChain(lang)
	if err != nil {
		return condition{}, err
	}

	if !args.Remaining() {
		return condition{left: left}, nil
	}

	var op string
	if ident, ok := args.PeekIdentifier(); ok && ident == "contains" {
		op = "contains"
		_, _ = args.ExpectNext("")
	} else {
		tok, err := args.ExpectNext("Comparison operator expected.")
		if err != nil {
			return condition{}, err
		}
		switch tok.Value {
		case "==", "!=", "<", ">", "<=", ">=":
			op = tok.Value
		default:
			return condition{}, parser.NewParseErrorf(tok.Position, "Comparison operator expected, but found '%s'", tok.Value)
		}
	}

	right, err := args.ExpectFilterChain(lang)
	if err != nil {
		return condition{}, err
	}

	return condition{left: left, op: op, right: right}, nil
}

func (c condition) evaluate(rt *template.Runtime) (bool, error) {
	left, err := c.left.Evaluate(rt)
	if err != nil {
		return false, err
	}

	if c.op == "" {
		return left.Truthy(), nil
	}

	right, err := c.right.Evaluate(rt)
	if err != nil {
		return false, err
	}

	switch c.op {
	case "==":
		return left.Equals(right), nil
	case "!=":
		return !left.Equals(right), nil
	case "contains":
		return contains(left, right), nil
	default:
		cmp, err := left.Compare(right)
		if err != nil {
			return false, template.Trace(err, "condition", c.String())
		}
		switch c.op {
		case "<":
			return cmp < 0, nil
		case ">":
			return cmp > 0, nil
		case "<=":
			return cmp <= 0, nil
		case ">=":
			return cmp >= 0, nil
		default:
			panic(fmt.Sprintf("unknown comparison operator %q", c.op))
		}
	}
}

// contains mirrors templating convention: substring for strings, element
// membership for arrays, key presence for objects.
func contains(left, right values.Value) bool {
	switch {
	case left.IsArray():
		items, _ := left.AsArray()
		for _, item := range items {
			if item.Equals(right) {
				return true
			}
		}
		return false
	case left.IsObject():
		obj, _ := left.AsObject()
		key, ok := right.AsString()
		if !ok {
			return false
		}
		_, found := obj.Get(key)
		return found
	default:
		s, ok := left.AsString()
		if !ok {
			return false
		}
		return strings.Contains(s, right.Render())
	}
}

func (c condition) String() string {
	if c.op == "" {
		return c.left.String()
	}
	return fmt.Sprintf("%s %s %s", c.left, c.op, c.right)
}
