// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"carvel.dev/fluid/pkg/parser"
)

// DefaultLanguage builds the registry of all built-in constructs. The
// result is read-only from the parser's point of view; callers may
// register additional plugins before handing it to Compile.
func DefaultLanguage() (*parser.Language, error) {
	lang := parser.NewLanguage()

	tags := []parser.ParseTag{
		AssignTag{},
		BreakTag{},
		ContinueTag{},
		RequireVersionTag{},
	}
	for _, tag := range tags {
		if err := lang.RegisterTag(tag); err != nil {
			return nil, err
		}
	}

	blocks := []parser.ParseBlock{
		IfBlock{},
		UnlessBlock{},
		ForBlock{},
		IfChangedBlock{},
		CaptureBlock{},
		CommentBlock{},
		RawBlock{},
	}
	for _, block := range blocks {
		if err := lang.RegisterBlock(block); err != nil {
			return nil, err
		}
	}

	filters := []parser.ParseFilter{
		newFilterPlugin("upcase", "Uppercases the input's display form", 0, upcase),
		newFilterPlugin("downcase", "Lowercases the input's display form", 0, downcase),
		newFilterPlugin("capitalize", "Uppercases the first character of the input", 0, capitalize),
		newFilterPlugin("size", "Element, key or character count of the input", 0, size),
		newFilterPlugin("first", "First element of an array", 0, first),
		newFilterPlugin("last", "Last element of an array", 0, last),
		newFilterPlugin("join", "Joins array elements with a separator", 1, join),
		newFilterPlugin("append", "Appends a string to the input", 1, appendFilter),
		newFilterPlugin("prepend", "Prepends a string to the input", 1, prepend),
		newFilterPlugin("default", "Substitutes a fallback for empty input", 1, defaultFilter),
		newFilterPlugin("plus", "Adds a number to the input", 1, plus),
		newFilterPlugin("minus", "Subtracts a number from the input", 1, minus),
	}
	for _, filter := range filters {
		if err := lang.RegisterFilter(filter); err != nil {
			return nil, err
		}
	}

	return lang, nil
}
