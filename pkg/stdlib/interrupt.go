// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
)

// BreakTag and ContinueTag set the runtime interrupt signal. They produce
// no output; every enclosing sequence stops rendering siblings until the
// innermost loop consumes the signal.
type BreakTag struct{}

var _ parser.ParseTag = BreakTag{}

func (t BreakTag) Name() string        { return "break" }
func (t BreakTag) Description() string { return "Stops the innermost enclosing loop" }

func (t BreakTag) Parse(args *parser.TokenStream, lang *parser.Language) (template.Renderable, error) {
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}
	return interruptNode{signal: template.InterruptBreak}, nil
}

type ContinueTag struct{}

var _ parser.ParseTag = ContinueTag{}

func (t ContinueTag) Name() string        { return "continue" }
func (t ContinueTag) Description() string { return "Skips to the next iteration of the innermost enclosing loop" }

func (t ContinueTag) Parse(args *parser.TokenStream, lang *parser.Language) (template.Renderable, error) {
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}
	return interruptNode{signal: template.InterruptContinue}, nil
}

type interruptNode struct {
	signal template.Interrupt
}

var _ template.Renderable = interruptNode{}

func (n interruptNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	rt.SetInterrupt(n.signal)
	return nil
}
