// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/template"
)

// CommentBlock discards its body; RawBlock re-emits it verbatim. Both
// consume the body as raw source, so their contents are never parsed as
// template code (an unregistered tag inside a comment is not an error).
type CommentBlock struct{}

var _ parser.ParseBlock = CommentBlock{}

func (b CommentBlock) Name() string        { return "comment" }
func (b CommentBlock) EndName() string     { return "endcomment" }
func (b CommentBlock) Description() string { return "Discards its body" }

func (b CommentBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}
	if _, err := body.Raw(); err != nil {
		return nil, err
	}
	return template.NewText(""), nil
}

type RawBlock struct{}

var _ parser.ParseBlock = RawBlock{}

func (b RawBlock) Name() string        { return "raw" }
func (b RawBlock) EndName() string     { return "endraw" }
func (b RawBlock) Description() string { return "Emits its body verbatim, without template processing" }

func (b RawBlock) Parse(args *parser.TokenStream, body *parser.BlockBody, lang *parser.Language) (template.Renderable, error) {
	if err := args.ExpectNothing(); err != nil {
		return nil, err
	}
	content, err := body.Raw()
	if err != nil {
		return nil, err
	}
	return template.NewText(content), nil
}
