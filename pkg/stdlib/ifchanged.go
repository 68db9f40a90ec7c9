// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"bytes"
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
)

// IfChangedBlock implements `{% ifchanged %} ... {% endifchanged %}`: the
// body renders to an in-memory buffer, and the buffer is emitted only when
// it differs from what this same block occurrence produced last time
// within the current render pass. State lives in the runtime's register
// store keyed by node identity, so two sibling ifchanged blocks never
// share it, and a new render pass starts clean.
type IfChangedBlock struct{}

var _ parser.ParseBlock = IfChangedBlock{}

func (b IfChangedBlock) Name() string    { return "ifchanged" }
func (b IfChangedBlock) EndName() string { return "endifchanged" }
func (b IfChangedBlock) Description() string {
	return "Renders its body only when the body's output changed since the last occurrence"
}

func (b IfChangedBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	// no arguments should be supplied, trying to supply them is an error
	err := args.ExpectNothing()
	if err != nil {
		return nil, err
	}

	nodes, err := body.ParseAll(lang)
	if err != nil {
		return nil, err
	}

	return &ifChangedNode{body: template.NewTemplate(nodes)}, nil
}

type ifChangedNode struct {
	body *template.Template
}

var _ template.Renderable = &ifChangedNode{}

func (n *ifChangedNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	var buf bytes.Buffer
	if err := n.body.RenderTo(&buf, rt); err != nil {
		return template.Trace(err, "in", "{% ifchanged %}")
	}
	rendered := buf.String()

	if last, found := rt.Register(n); found && last.(string) == rendered {
		return nil
	}
	rt.SetRegister(n, rendered)

	if _, err := io.WriteString(w, rendered); err != nil {
		return template.NewRenderError("Failed to render", err)
	}
	return nil
}
