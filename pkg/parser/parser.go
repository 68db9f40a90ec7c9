// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"strings"

	"carvel.dev/fluid/pkg/filepos"
	"carvel.dev/fluid/pkg/template"
)

// maxBlockDepth bounds block nesting during parsing so pathological input
// fails with a ParseError instead of exhausting the stack.
const maxBlockDepth = 128

// Compile turns template source into an executable Template, consulting
// lang for tag, block and filter names. Compilation fails fast: the first
// offending construct aborts it and no partial Template is returned.
func Compile(src []byte, associatedName string, lang *Language) (*template.Template, error) {
	elements, err := scan(string(src), associatedName)
	if err != nil {
		return nil, err
	}

	c := &cursor{elements: elements}

	var nodes []template.Renderable
	for !c.eof() {
		node, err := parseElement(c, lang, 0)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return template.NewTemplate(nodes), nil
}

type cursor struct {
	elements []element
	pos      int
}

func (c *cursor) eof() bool { return c.pos >= len(c.elements) }

func (c *cursor) peek() element { return c.elements[c.pos] }

func (c *cursor) next() element {
	el := c.elements[c.pos]
	c.pos++
	return el
}

func parseElement(c *cursor, lang *Language, depth int) (template.Renderable, error) {
	el := c.next()

	switch el.kind {
	case elementText:
		return template.NewText(el.content), nil

	case elementOutput:
		tokens, err := tokenize(el.content, el.contentPos)
		if err != nil {
			return nil, err
		}
		args := newTokenStream(tokens, el.position)
		chain, err := args.ExpectFilterChain(lang)
		if err != nil {
			return nil, err
		}
		if err := args.ExpectNothing(); err != nil {
			return nil, err
		}
		return chain, nil

	case elementTag:
		return parseTag(c, lang, depth, el)

	default:
		panic(fmt.Sprintf("unknown element kind %d", int(el.kind)))
	}
}

// tagArgs tokenizes a tag element's contents and returns the tokens after
// the leading name. Called only once the element is known to be template
// code rather than part of a raw body.
func (el element) tagArgs() (*TokenStream, error) {
	if el.name == "" {
		return nil, NewParseError("Tag name expected.", el.position)
	}
	tokens, err := tokenize(el.content, el.contentPos)
	if err != nil {
		return nil, err
	}
	return newTokenStream(tokens[1:], el.position), nil
}

func parseTag(c *cursor, lang *Language, depth int, el element) (template.Renderable, error) {
	args, err := el.tagArgs()
	if err != nil {
		return nil, err
	}

	if plugin, found := lang.Tag(el.name); found {
		node, err := plugin.Parse(args, lang)
		if err != nil {
			return nil, err
		}
		return node, nil
	}

	if plugin, found := lang.Block(el.name); found {
		if depth >= maxBlockDepth {
			return nil, NewParseErrorf(el.position, "Exceeded maximum block nesting depth of %d", maxBlockDepth)
		}

		body := &BlockBody{
			cursor:   c,
			name:     plugin.Name(),
			endName:  plugin.EndName(),
			depth:    depth + 1,
			position: el.position,
		}

		node, err := plugin.Parse(args, body, lang)
		if err != nil {
			return nil, err
		}
		body.AssertEmpty()
		return node, nil
	}

	if strings.HasPrefix(el.name, "end") {
		return nil, NewParseErrorf(el.position, "Unexpected closing tag '%s'", el.name)
	}
	return nil, NewParseErrorf(el.position, "Unknown tag '%s'", el.name)
}

// BlockBody is the recursive body parser handed to block plugins. The
// plugin must consume the body through its own closing tag (ParseAll, or
// ParseUntil until it stops on ""), then AssertEmpty is enforced by the
// driver.
type BlockBody struct {
	cursor   *cursor
	name     string
	endName  string
	depth    int
	drained  bool
	position *filepos.Position
}

// ParseAll parses the whole body through the closing tag.
func (b *BlockBody) ParseAll(lang *Language) ([]template.Renderable, error) {
	nodes, stopped, _, err := b.ParseUntil(lang)
	if err != nil {
		return nil, err
	}
	if stopped != "" {
		panic(fmt.Sprintf("block '%s' stopped on unrequested tag '%s'", b.name, stopped))
	}
	return nodes, nil
}

// ParseUntil parses body elements until the block's closing tag (returned
// stop name "") or one of the given intermediate tag names (e.g. "else",
// "elsif"), whose argument tokens are handed back to the caller.
func (b *BlockBody) ParseUntil(lang *Language, stops ...string) ([]template.Renderable, string, *TokenStream, error) {
	var nodes []template.Renderable

	for {
		if b.cursor.eof() {
			return nil, "", nil, NewParseErrorf(b.position,
				"Expected closing tag '{%% %s %%}' before end of template", b.endName)
		}

		el := b.cursor.peek()
		if el.kind == elementTag {
			if el.name == b.endName {
				endEl := b.cursor.next()
				endArgs, err := endEl.tagArgs()
				if err != nil {
					return nil, "", nil, err
				}
				if err := endArgs.ExpectNothing(); err != nil {
					return nil, "", nil, err
				}
				b.drained = true
				return nodes, "", nil, nil
			}
			for _, stop := range stops {
				if el.name == stop {
					stopEl := b.cursor.next()
					stopArgs, err := stopEl.tagArgs()
					if err != nil {
						return nil, "", nil, err
					}
					return nodes, stop, stopArgs, nil
				}
			}
		}

		node, err := parseElement(b.cursor, lang, b.depth)
		if err != nil {
			return nil, "", nil, err
		}
		nodes = append(nodes, node)
	}
}

// Raw consumes the body without parsing it, reconstructing the original
// source text up to (but not including) the closing tag. Used by
// constructs like comment and raw whose contents are not template code.
func (b *BlockBody) Raw() (string, error) {
	var sb strings.Builder

	for {
		if b.cursor.eof() {
			return "", NewParseErrorf(b.position,
				"Expected closing tag '{%% %s %%}' before end of template", b.endName)
		}

		el := b.cursor.next()
		switch el.kind {
		case elementText:
			sb.WriteString(el.content)
		case elementOutput:
			sb.WriteString(outputOpen + el.content + outputClose)
		case elementTag:
			if el.name == b.endName {
				b.drained = true
				return sb.String(), nil
			}
			sb.WriteString(tagOpen + el.content + tagClose)
		}
	}
}

// AssertEmpty panics when a block plugin returned without draining its
// body through the closing tag: that is a plugin bug, not a user error,
// and silently truncating the template would hide it.
func (b *BlockBody) AssertEmpty() {
	if !b.drained {
		panic(fmt.Sprintf("block '%s' did not consume its body through '{%% %s %%}'", b.name, b.endName))
	}
}
