// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"io"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/version"
)

// RequireVersionTag implements `{% require_version ">= 0.1.0" %}`: the
// constraint is checked against the engine version at compile time, so a
// template depending on newer engine behavior fails before any rendering
// starts. The tag renders nothing.
type RequireVersionTag struct{}

var _ parser.ParseTag = RequireVersionTag{}

func (t RequireVersionTag) Name() string { return "require_version" }
func (t RequireVersionTag) Description() string {
	return "Fails compilation unless the engine version satisfies a constraint"
}

func (t RequireVersionTag) Parse(args *parser.TokenStream, lang *parser.Language) (template.Renderable, error) {
	constraint, err := args.ExpectString()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}

	if err := version.RequireConstraint(constraint); err != nil {
		return nil, err
	}

	return noopNode{}, nil
}

type noopNode struct{}

var _ template.Renderable = noopNode{}

func (noopNode) RenderTo(w io.Writer, rt *template.Runtime) error { return nil }
