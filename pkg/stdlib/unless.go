// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"fmt"
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
)

// UnlessBlock is the negated counterpart of if: the main body renders when
// the condition is false, the optional else body when it is true.
type UnlessBlock struct{}

var _ parser.ParseBlock = UnlessBlock{}

func (b UnlessBlock) Name() string        { return "unless" }
func (b UnlessBlock) EndName() string     { return "endunless" }
func (b UnlessBlock) Description() string { return "Renders its body unless the condition holds" }

func (b UnlessBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	cond, err := parseCondition(args, lang)
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

	node := &unlessNode{cond: cond, body: template.NewTemplate(mainNodes)}

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

type unlessNode struct {
	cond     condition
	body     *template.Template
	elseBody *template.Template
}

var _ template.Renderable = &unlessNode{}

func (n *unlessNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	holds, err := n.cond.evaluate(rt)
	if err != nil {
		return template.Trace(err, "in", fmt.Sprintf("{%% unless %s %%}", n.cond))
	}

	if !holds {
		return n.body.RenderTo(w, rt)
	}
	if n.elseBody != nil {
		return n.elseBody.RenderTo(w, rt)
	}
	return nil
}
