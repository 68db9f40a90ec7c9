// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"bytes"
	"io"

	"carvel.dev/fluid/pkg/values"
)

// Renderable is the capability contract of every executable node: write
// text directly and incrementally to the sink, reading and writing Runtime
// state along the way. Output is streamed; nothing buffers the whole
// render before failing or succeeding.
type Renderable interface {
	RenderTo(w io.Writer, rt *Runtime) error
}

// Template is the ordered-sequence executor used as the whole-document
// root and as the body of every block construct.
type Template struct {
	nodes []Renderable
}

var _ Renderable = &Template{}

func NewTemplate(nodes []Renderable) *Template {
	return &Template{nodes: nodes}
}

// RenderTo renders children strictly in order. After each child it checks
// the runtime interrupt; if set it stops without rendering remaining
// siblings and without clearing the signal. Clearing is left to the
// construct that owns loop semantics.
func (t *Template) RenderTo(w io.Writer, rt *Runtime) error {
	for _, node := range t.nodes {
		if err := node.RenderTo(w, rt); err != nil {
			return err
		}
		if rt.Interrupt() != InterruptNone {
			break
		}
	}
	return nil
}

// Render is the convenience form consumed by callers holding a context
// object: fresh Runtime, in-memory sink. On failure the text produced
// before the failure point is returned alongside the error, matching the
// streaming contract.
func (t *Template) Render(globals *values.Object) (string, error) {
	var buf bytes.Buffer
	err := t.RenderTo(&buf, NewRuntime(globals))
	return buf.String(), err
}

// Text is the raw-text leaf node.
type Text struct {
	content string
}

var _ Renderable = Text{}

func NewText(content string) Text {
	return Text{content: content}
}

func (t Text) RenderTo(w io.Writer, rt *Runtime) error {
	if _, err := io.WriteString(w, t.content); err != nil {
		return NewRenderError("Failed to render", err)
	}
	return nil
}
