// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/stdlib"
)

func compile(t *testing.T, src string) error {
	lang, err := stdlib.DefaultLanguage()
	require.NoError(t, err)

	_, err = parser.Compile([]byte(src), "tpl.liquid", lang)
	return err
}

func TestCompileTextOnly(t *testing.T) {
	require.NoError(t, compile(t, "plain text, no constructs"))
}

func TestCompileUnknownTag(t *testing.T) {
	err := compile(t, "{% widget %}")
	require.Error(t, err)
	assert.Equal(t, "Unknown tag 'widget' (tpl.liquid:1:1)", err.Error())
}

func TestCompileUnexpectedClosingTag(t *testing.T) {
	err := compile(t, "{% endif %}")
	require.Error(t, err)
	assert.Equal(t, "Unexpected closing tag 'endif' (tpl.liquid:1:1)", err.Error())
}

func TestCompileUnknownFilter(t *testing.T) {
	err := compile(t, `{{ x | frobnicate }}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown filter 'frobnicate'")
}

func TestCompileTrailingArguments(t *testing.T) {
	err := compile(t, "{% assign x = 1 2 %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected nothing further, but found '2'")
}

func TestCompileMissingEndTag(t *testing.T) {
	err := compile(t, "{% if x %}body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected closing tag '{% endif %}' before end of template")
}

func TestCompileUnterminatedConstructs(t *testing.T) {
	err := compile(t, "before {{ x ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated output")

	err = compile(t, "before {% if x ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated tag")
}

func TestCompileUnterminatedString(t *testing.T) {
	err := compile(t, `{{ 'open }}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string literal")
}

// the closing delimiter search is textual, so a literal delimiter inside
// a string argument ends the construct early
func TestCompileDelimiterInsideStringEndsConstruct(t *testing.T) {
	err := compile(t, `{% assign x = "%}" %}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string literal")
}

func TestCompileTagNameRequired(t *testing.T) {
	err := compile(t, "{% %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tag name expected.")
}

func TestCompileReportsMultilinePosition(t *testing.T) {
	err := compile(t, "line one\nline two {% widget %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(tpl.liquid:2:10)")
}

func TestCompileBracketPaths(t *testing.T) {
	require.NoError(t, compile(t, `{{ tags[-1] }}{{ tags["greek"] }}{{ a.b[0].c }}`))

	err := compile(t, "{{ tags[1 }}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Closing bracket ']' expected.")
}

func TestCompileNestedBlocks(t *testing.T) {
	src := `{% for x in xs %}{% if x %}{% else %}n{% endif %}{% endfor %}`
	require.NoError(t, compile(t, src))
}

func TestCompileClosingTagTakesNoArguments(t *testing.T) {
	err := compile(t, "{% if x %}{% endif now %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected nothing further, but found 'now'")
}

func TestRegisterDuplicates(t *testing.T) {
	lang, err := stdlib.DefaultLanguage()
	require.NoError(t, err)

	err = lang.RegisterTag(stdlib.AssignTag{})
	require.Error(t, err)
	assert.Equal(t, "Tag 'assign' is already registered", err.Error())

	err = lang.RegisterBlock(stdlib.IfBlock{})
	require.Error(t, err)
	assert.Equal(t, "Block 'if' is already registered", err.Error())
}
