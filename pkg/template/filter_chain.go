// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"io"
	"strings"

	"carvel.dev/fluid/pkg/values"
)

// Filter is a named post-processing transform bound to its arguments at
// compile time. Its String form reproduces the source syntax it was
// parsed from (e.g. `join: ", "`) for use in diagnostics.
type Filter interface {
	fmt.Stringer
	Evaluate(input values.Value, rt *Runtime) (values.Value, error)
}

// FilterChain is an entry expression plus its ordered filter pipeline.
// It doubles as the Renderable behind output tags.
type FilterChain struct {
	entry   Expression
	filters []Filter
}

var _ Renderable = FilterChain{}

func NewFilterChain(entry Expression, filters []Filter) FilterChain {
	return FilterChain{entry: entry, filters: filters}
}

// Evaluate resolves the entry expression and threads the result through
// each filter in declaration order. A failing filter stops the chain
// immediately; the error carries the filter's display form and the
// rendered value that was fed into it. With zero filters the entry value
// is returned untouched.
func (c FilterChain) Evaluate(rt *Runtime) (values.Value, error) {
	entry := c.entry.Evaluate(rt)

	for _, filter := range c.filters {
		result, err := filter.Evaluate(entry, rt)
		if err != nil {
			err = Trace(err, "filter", filter.String())
			err = Trace(err, "input", entry.Render())
			return values.NewNil(), err
		}
		entry = result
	}

	return entry, nil
}

func (c FilterChain) RenderTo(w io.Writer, rt *Runtime) error {
	val, err := c.Evaluate(rt)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, val.Render()); err != nil {
		return NewRenderError("Failed to render", err)
	}
	return nil
}

func (c FilterChain) String() string {
	parts := []string{c.entry.String()}
	for _, filter := range c.filters {
		parts = append(parts, filter.String())
	}
	return strings.Join(parts, " | ")
}
