// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"fmt"
	"strings"
	"unicode"

	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

// filterPlugin adapts a bind function into a parser.ParseFilter. Argument
// arity is validated at compile time; the bound filter evaluates its
// argument expressions per render.
type filterPlugin struct {
	name  string
	desc  string
	arity int
	bind  func(name string, args []template.Expression) template.Filter
}

func (p filterPlugin) Name() string        { return p.name }
func (p filterPlugin) Description() string { return p.desc }

func (p filterPlugin) Parse(args []template.Expression) (template.Filter, error) {
	if len(args) != p.arity {
		return nil, fmt.Errorf("Filter '%s' expects %d argument(s), but %d were supplied", p.name, p.arity, len(args))
	}
	return p.bind(p.name, args), nil
}

// boundFilter carries the source form shared by all built-in filters.
type boundFilter struct {
	name string
	args []template.Expression
}

func (f boundFilter) String() string {
	if len(f.args) == 0 {
		return f.name
	}
	argStrs := make([]string, 0, len(f.args))
	for _, arg := range f.args {
		argStrs = append(argStrs, arg.String())
	}
	return f.name + ": " + strings.Join(argStrs, ", ")
}

func (f boundFilter) evaluateArgs(rt *template.Runtime) []values.Value {
	argVals := make([]values.Value, 0, len(f.args))
	for _, arg := range f.args {
		argVals = append(argVals, arg.Evaluate(rt))
	}
	return argVals
}

// funcFilter is a boundFilter whose behavior is a plain function.
type funcFilter struct {
	boundFilter
	fn func(input values.Value, args []values.Value) (values.Value, error)
}

var _ template.Filter = funcFilter{}

func (f funcFilter) Evaluate(input values.Value, rt *template.Runtime) (values.Value, error) {
	return f.fn(input, f.evaluateArgs(rt))
}

func newFilterPlugin(name, desc string, arity int,
	fn func(input values.Value, args []values.Value) (values.Value, error)) filterPlugin {

	return filterPlugin{
		name:  name,
		desc:  desc,
		arity: arity,
		bind: func(name string, args []template.Expression) template.Filter {
			return funcFilter{boundFilter{name, args}, fn}
		},
	}
}

func upcase(input values.Value, _ []values.Value) (values.Value, error) {
	return values.NewString(strings.ToUpper(input.Render())), nil
}

func downcase(input values.Value, _ []values.Value) (values.Value, error) {
	return values.NewString(strings.ToLower(input.Render())), nil
}

func capitalize(input values.Value, _ []values.Value) (values.Value, error) {
	runes := []rune(input.Render())
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return values.NewString(string(runes)), nil
}

func size(input values.Value, _ []values.Value) (values.Value, error) {
	return values.NewInt(int64(input.Len())), nil
}

func first(input values.Value, _ []values.Value) (values.Value, error) {
	items, ok := input.AsArray()
	if !ok || len(items) == 0 {
		return values.NewNil(), nil
	}
	return items[0], nil
}

func last(input values.Value, _ []values.Value) (values.Value, error) {
	items, ok := input.AsArray()
	if !ok || len(items) == 0 {
		return values.NewNil(), nil
	}
	return items[len(items)-1], nil
}

func join(input values.Value, args []values.Value) (values.Value, error) {
	items, ok := input.AsArray()
	if !ok {
		return values.NewNil(), template.NewEvalErrorf("Array expected, but found %s", input.Kind())
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Render())
	}
	return values.NewString(strings.Join(parts, args[0].Render())), nil
}

func appendFilter(input values.Value, args []values.Value) (values.Value, error) {
	return values.NewString(input.Render() + args[0].Render()), nil
}

func prepend(input values.Value, args []values.Value) (values.Value, error) {
	return values.NewString(args[0].Render() + input.Render()), nil
}

// defaultFilter substitutes its argument for nil, false and empty
// strings/arrays.
func defaultFilter(input values.Value, args []values.Value) (values.Value, error) {
	empty := !input.Truthy()
	if !empty && (input.IsArray() || input.Kind() == values.KindString) {
		empty = input.Len() == 0
	}
	if empty {
		return args[0], nil
	}
	return input, nil
}

func plus(input values.Value, args []values.Value) (values.Value, error) {
	return arithmetic(input, args[0], false)
}

func minus(input values.Value, args []values.Value) (values.Value, error) {
	return arithmetic(input, args[0], true)
}

func arithmetic(input, arg values.Value, negate bool) (values.Value, error) {
	if input.Kind() == values.KindInt && arg.Kind() == values.KindInt {
		a, _ := input.AsInt()
		b, _ := arg.AsInt()
		if negate {
			b = -b
		}
		return values.NewInt(a + b), nil
	}

	a, aok := input.AsFloat()
	b, bok := arg.AsFloat()
	if !aok {
		return values.NewNil(), template.NewEvalErrorf("Number expected, but found %s", input.Kind())
	}
	if !bok {
		return values.NewNil(), template.NewEvalErrorf("Number expected, but found %s", arg.Kind())
	}
	if negate {
		b = -b
	}
	return values.NewFloat(a + b), nil
}
