// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"fmt"
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

// ForBlock implements `{% for x in <filterchain> %} ... {% else %} ...
// {% endfor %}`. Arrays iterate their elements, objects their key/value
// pairs (each as a two-element array), scalars behave as a one-element
// collection and nil as an empty one; the optional else body renders for
// empty collections.
//
// The loop is the construct that owns interrupt semantics: a Break set in
// the body stops this loop and is cleared here, a Continue skips to the
// next iteration. An interrupt meant for an outer loop is therefore
// absorbed by the innermost one, each layer deciding locally.
type ForBlock struct{}

var _ parser.ParseBlock = ForBlock{}

func (b ForBlock) Name() string        { return "for" }
func (b ForBlock) EndName() string     { return "endfor" }
func (b ForBlock) Description() string { return "Renders its body for every element of a collection" }

func (b ForBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	varName, err := args.ExpectIdentifier()
	if err != nil {
		return nil, err
	}

	err = args.ExpectLiteralString("in", `Keyword "in" expected.`)
	if err != nil {
		return nil, err
	}

	collection, err := args.ExpectFilterChain(lang)
	if err != nil {
		return nil, err
	}
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}

	mainNodes, stopped, stopArgs, err := body.ParseUntil(lang, "else")
	if err != nil {
		return nil, err
	}

	node := &forNode{
		varName:    varName,
		collection: collection,
		body:       template.NewTemplate(mainNodes),
	}

	if stopped == "else" {
		if err := stopArgs.ExpectNothing(); err != nil {
			return nil, err
		}
		elseNodes, err := body.ParseAll(lang)
		if err != nil {
			return nil, err
		}
		node.elseBody = template.NewTemplate(elseNodes)
	}

	return node, nil
}

type forNode struct {
	varName    string
	collection template.FilterChain
	body       *template.Template
	elseBody   *template.Template
}

var _ template.Renderable = &forNode{}

func (n *forNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	col, err := n.collection.Evaluate(rt)
	if err != nil {
		return template.Trace(err, "in", n.trace())
	}

	items := collectionItems(col)

	if len(items) == 0 {
		if n.elseBody != nil {
			return n.elseBody.RenderTo(w, rt)
		}
		return nil
	}

	for _, item := range items {
		rt.PushFrame()
		rt.SetLocal(n.varName, item)
		err := n.body.RenderTo(w, rt)
		rt.PopFrame()
		if err != nil {
			return template.Trace(err, "in", n.trace())
		}

		switch rt.Interrupt() {
		case template.InterruptBreak:
			rt.ClearInterrupt()
			return nil
		case template.InterruptContinue:
			rt.ClearInterrupt()
		}
	}

	return nil
}

func collectionItems(col values.Value) []values.Value {
	switch {
	case col.IsNil():
		return nil
	case col.IsArray():
		items, _ := col.AsArray()
		return items
	case col.IsObject():
		obj, _ := col.AsObject()
		var items []values.Value
		obj.Iterate(func(k string, v values.Value) {
			items = append(items, values.NewArray([]values.Value{values.NewString(k), v}))
		})
		return items
	default:
		return []values.Value{col}
	}
}

func (n *forNode) trace() string {
	return fmt.Sprintf("{%% for %s in %s %%}", n.varName, n.collection)
}
