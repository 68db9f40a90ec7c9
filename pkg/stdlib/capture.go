// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"bytes"
	"fmt"
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

// CaptureBlock renders its body to an in-memory buffer and globally
// assigns the resulting string, emitting nothing itself.
type CaptureBlock struct{}

var _ parser.ParseBlock = CaptureBlock{}

func (b CaptureBlock) Name() string        { return "capture" }
func (b CaptureBlock) EndName() string     { return "endcapture" }
func (b CaptureBlock) Description() string { return "Assigns its rendered body to a variable" }

func (b CaptureBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	dst, err := args.ExpectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}

	nodes, err := body.ParseAll(lang)
	if err != nil {
		return nil, err
	}

	return &captureNode{dst: dst, body: template.NewTemplate(nodes)}, nil
}

type captureNode struct {
	dst  string
	body *template.Template
}

var _ template.Renderable = &captureNode{}

func (n *captureNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	var buf bytes.Buffer
	if err := n.body.RenderTo(&buf, rt); err != nil {
		return template.Trace(err, "in", fmt.Sprintf("{%% capture %s %%}", n.dst))
	}
	rt.SetGlobal(n.dst, values.NewString(buf.String()))
	return nil
}
