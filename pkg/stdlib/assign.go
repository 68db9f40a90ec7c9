// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"fmt"
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
)

// AssignTag implements `{% assign name = <filterchain> %}`: evaluate the
// chain and write the result into the outermost scope frame, so the
// assignment stays visible after any enclosing block or loop exits.
type AssignTag struct{}

var _ parser.ParseTag = AssignTag{}

func (t AssignTag) Name() string        { return "assign" }
func (t AssignTag) Description() string { return "Assigns the value of an expression to a variable" }

func (t AssignTag) Parse(args *parser.TokenStream, lang *parser.Language) (template.Renderable, error) {
	dst, err := args.ExpectIdentifier()
	if err != nil {
		return nil, err
	}

	err = args.ExpectLiteralString("=", `Assignment operator "=" expected.`)
	if err != nil {
		return nil, err
	}

	src, err := args.ExpectFilterChain(lang)
	if err != nil {
		return nil, err
	}

	// no more arguments should be supplied, trying to supply them is an error
	err = args.ExpectNothing()
	if err != nil {
		return nil, err
	}

	return &assignNode{dst: dst, src: src}, nil
}

type assignNode struct {
	dst string
	src template.FilterChain
}

var _ template.Renderable = &assignNode{}

func (n *assignNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	val, err := n.src.Evaluate(rt)
	if err != nil {
		return template.Trace(err, "in", n.trace())
	}
	rt.SetGlobal(n.dst, val)
	return nil
}

func (n *assignNode) trace() string {
	return fmt.Sprintf("{%% assign %s = %s %%}", n.dst, n.src)
}
