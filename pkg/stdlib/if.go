// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"fmt"
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
)

// IfBlock implements `{% if cond %} ... {% elsif cond %} ... {% else %}
// ... {% endif %}`.
type IfBlock struct{}

var _ parser.ParseBlock = IfBlock{}

func (b IfBlock) Name() string        { return "if" }
func (b IfBlock) EndName() string     { return "endif" }
func (b IfBlock) Description() string { return "Renders one of its branches conditionally" }

func (b IfBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	cond, err := parseCondition(args, lang)
	if err != nil {
		return nil, err
	}
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}

	node := &ifNode{branches: []ifBranch{{cond: cond, hasCond: true}}}

	for {
		last := &node.branches[len(node.branches)-1]

		stops := []string{"elsif", "else"}
		if !last.hasCond {
			// nothing may follow an else branch
			stops = nil
		}

		nodes, stopped, stopArgs, err := body.ParseUntil(lang, stops...)
		if err != nil {
			return nil, err
		}
		last.body = template.NewTemplate(nodes)

		switch stopped {
		case "":
			return node, nil

		case "elsif":
			cond, err := parseCondition(stopArgs, lang)
			if err != nil {
				return nil, err
			}
			if err := stopArgs.ExpectNothing(); err != nil {
				return nil, err
			}
			node.branches = append(node.branches, ifBranch{cond: cond, hasCond: true})

		case "else":
			if err := stopArgs.ExpectNothing(); err != nil {
				return nil, err
			}
			node.branches = append(node.branches, ifBranch{})
		}
	}
}

type ifBranch struct {
	cond    condition
	hasCond bool
	body    *template.Template
}

type ifNode struct {
	branches []ifBranch
}

var _ template.Renderable = &ifNode{}

func (n *ifNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	for _, branch := range n.branches {
		take := true
		if branch.hasCond {
			var err error
			take, err = branch.cond.evaluate(rt)
			if err != nil {
				return template.Trace(err, "in", fmt.Sprintf("{%% if %s %%}", branch.cond))
			}
		}
		if take {
			return branch.body.RenderTo(w, rt)
		}
	}
	return nil
}
