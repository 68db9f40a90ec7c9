// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carvel.dev/fluid/pkg/parser"
	"carvel.dev/fluid/pkg/stdlib"
	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

func compileAndRender(t *testing.T, src string, globals *values.Object) string {
	t.Helper()

	out, err := tryRender(t, src, globals)
	require.NoError(t, err)
	return out
}

func tryRender(t *testing.T, src string, globals *values.Object) (string, error) {
	t.Helper()

	lang, err := stdlib.DefaultLanguage()
	require.NoError(t, err)

	tpl, err := parser.Compile([]byte(src), "tpl.liquid", lang)
	require.NoError(t, err)

	return tpl.Render(globals)
}

func mustCompile(t *testing.T, src string) *template.Template {
	t.Helper()

	lang, err := stdlib.DefaultLanguage()
	require.NoError(t, err)

	tpl, err := parser.Compile([]byte(src), "tpl.liquid", lang)
	require.NoError(t, err)
	return tpl
}

func tryCompile(t *testing.T, src string) error {
	t.Helper()

	lang, err := stdlib.DefaultLanguage()
	require.NoError(t, err)

	_, err = parser.Compile([]byte(src), "tpl.liquid", lang)
	return err
}

func objectWith(pairs ...interface{}) *values.Object {
	obj := values.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		obj.Set(pairs[i].(string), values.NewValue(pairs[i+1]))
	}
	return obj
}
