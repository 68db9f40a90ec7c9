// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"

	"carvel.dev/fluid/pkg/template"
)

// ParseTag is the plugin contract for a single construct with no body,
// e.g. `{% assign x = y %}`.
type ParseTag interface {
	Name() string
	Description() string
	Parse(args *TokenStream, lang *Language) (template.Renderable, error)
}

// ParseBlock is the plugin contract for a paired open/close construct
// whose nested body is parsed recursively through the same Language
// registry, e.g. `{% ifchanged %} ... {% endifchanged %}`.
//
// A block's Parse must leave the body fully drained (through its own
// closing tag) before returning; BlockBody.AssertEmpty enforces this so a
// buggy plugin cannot silently truncate the template.
type ParseBlock interface {
	Name() string
	EndName() string
	Description() string
	Parse(args *TokenStream, body *BlockBody, lang *Language) (template.Renderable, error)
}

// ParseFilter binds a filter's argument expressions at compile time and
// returns the runtime Filter.
type ParseFilter interface {
	Name() string
	Description() string
	Parse(args []template.Expression) (template.Filter, error)
}

// Language is the registry of grammar constructs: three independent
// name->plugin maps for tags, blocks and filters. It is built once before
// any parsing occurs and read-only thereafter.
type Language struct {
	tags    map[string]ParseTag
	blocks  map[string]ParseBlock
	filters map[string]ParseFilter
}

func NewLanguage() *Language {
	return &Language{
		tags:    map[string]ParseTag{},
		blocks:  map[string]ParseBlock{},
		filters: map[string]ParseFilter{},
	}
}

// RegisterTag adds a tag plugin. Registering a name already present is an
// error, never a silent overwrite.
func (l *Language) RegisterTag(plugin ParseTag) error {
	name := plugin.Name()
	if _, found := l.tags[name]; found {
		return fmt.Errorf("Tag '%s' is already registered", name)
	}
	l.tags[name] = plugin
	return nil
}

func (l *Language) RegisterBlock(plugin ParseBlock) error {
	name := plugin.Name()
	if _, found := l.blocks[name]; found {
		return fmt.Errorf("Block '%s' is already registered", name)
	}
	l.blocks[name] = plugin
	return nil
}

func (l *Language) RegisterFilter(plugin ParseFilter) error {
	name := plugin.Name()
	if _, found := l.filters[name]; found {
		return fmt.Errorf("Filter '%s' is already registered", name)
	}
	l.filters[name] = plugin
	return nil
}

func (l *Language) Tag(name string) (ParseTag, bool) {
	plugin, found := l.tags[name]
	return plugin, found
}

func (l *Language) Block(name string) (ParseBlock, bool) {
	plugin, found := l.blocks[name]
	return plugin, found
}

func (l *Language) Filter(name string) (ParseFilter, bool) {
	plugin, found := l.filters[name]
	return plugin, found
}
