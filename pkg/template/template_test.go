// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvel.dev/fluid/pkg/template"
	"carvel.dev/fluid/pkg/values"
)

// countingNode records whether it rendered; interruptingNode additionally
// sets the interrupt signal.
type countingNode struct {
	rendered  int
	interrupt template.Interrupt
}

var _ template.Renderable = &countingNode{}

func (n *countingNode) RenderTo(w io.Writer, rt *template.Runtime) error {
	n.rendered++
	if n.interrupt != template.InterruptNone {
		rt.SetInterrupt(n.interrupt)
	}
	return nil
}

func TestTemplateRendersChildrenInOrder(t *testing.T) {
	tpl := template.NewTemplate([]template.Renderable{
		template.NewText("a"),
		template.NewText("b"),
		template.NewText("c"),
	})

	out, err := tpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
}

func TestTemplateStopsOnInterruptWithoutClearing(t *testing.T) {
	first := &countingNode{}
	second := &countingNode{interrupt: template.InterruptBreak}
	third := &countingNode{}

	tpl := template.NewTemplate([]template.Renderable{first, second, third})

	rt := template.NewRuntime(nil)
	err := tpl.RenderTo(io.Discard, rt)
	require.NoError(t, err)

	assert.Equal(t, 1, first.rendered)
	assert.Equal(t, 1, second.rendered)
	assert.Equal(t, 0, third.rendered)
	// the signal passes through untouched; clearing belongs to loops
	assert.Equal(t, template.InterruptBreak, rt.Interrupt())
}

func TestRuntimeScopes(t *testing.T) {
	rt := template.NewRuntime(nil)
	rt.SetLocal("x", values.NewInt(1))

	rt.PushFrame()
	rt.SetLocal("x", values.NewInt(2))
	assert.Equal(t, "2", rt.Get("x").Render())

	// global write reaches frame 0 regardless of depth
	rt.SetGlobal("y", values.NewString("deep"))
	rt.PopFrame()

	assert.Equal(t, "1", rt.Get("x").Render())
	assert.Equal(t, "deep", rt.Get("y").Render())
	assert.True(t, rt.Get("missing").IsNil())
}

func TestRuntimeRegistersKeyedByIdentity(t *testing.T) {
	rt := template.NewRuntime(nil)

	key1, key2 := &struct{ int }{}, &struct{ int }{}
	rt.SetRegister(key1, "one")

	val, found := rt.Register(key1)
	require.True(t, found)
	assert.Equal(t, "one", val)

	_, found = rt.Register(key2)
	assert.False(t, found)
}

func TestFilterChainIdentity(t *testing.T) {
	globals := values.NewObject()
	globals.Set("x", values.NewString("hello"))
	rt := template.NewRuntime(globals)

	chain := template.NewFilterChain(template.NewPathExpression("x"), nil)

	val, err := chain.Evaluate(rt)
	require.NoError(t, err)
	assert.Equal(t, "hello", val.Render())
}

type failingFilter struct{}

func (failingFilter) String() string { return "explode" }
func (failingFilter) Evaluate(input values.Value, rt *template.Runtime) (values.Value, error) {
	return values.NewNil(), template.NewEvalError("Boom")
}

type suffixFilter struct{ suffix string }

func (f suffixFilter) String() string { return "suffix: " + f.suffix }
func (f suffixFilter) Evaluate(input values.Value, rt *template.Runtime) (values.Value, error) {
	return values.NewString(input.Render() + f.suffix), nil
}

func TestFilterChainThreadsFilters(t *testing.T) {
	rt := template.NewRuntime(nil)

	chain := template.NewFilterChain(
		template.NewLiteralExpression(values.NewString("a")),
		[]template.Filter{suffixFilter{"b"}, suffixFilter{"c"}},
	)

	val, err := chain.Evaluate(rt)
	require.NoError(t, err)
	assert.Equal(t, "abc", val.Render())
	assert.Equal(t, `"a" | suffix: b | suffix: c`, chain.String())
}

func TestFilterChainErrorCarriesTrace(t *testing.T) {
	rt := template.NewRuntime(nil)

	chain := template.NewFilterChain(
		template.NewLiteralExpression(values.NewInt(5)),
		[]template.Filter{failingFilter{}, suffixFilter{"never"}},
	)

	_, err := chain.Evaluate(rt)
	require.Error(t, err)
	assert.Equal(t, "Boom\n  filter: explode\n  input: 5", err.Error())
}

// fullSink accepts limit bytes, then rejects the write that would exceed
// it after taking the part that still fits.
type fullSink struct {
	buf   bytes.Buffer
	limit int
}

func (w *fullSink) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		allowed := w.limit - w.buf.Len()
		w.buf.Write(p[:allowed])
		return allowed, errors.New("sink full")
	}
	return w.buf.Write(p)
}

func TestRenderToKeepsOutputWrittenBeforeSinkFailure(t *testing.T) {
	tpl := template.NewTemplate([]template.Renderable{
		template.NewText("abc"),
		template.NewText("def"),
		template.NewText("never"),
	})

	sink := &fullSink{limit: 4}
	err := tpl.RenderTo(sink, template.NewRuntime(nil))
	require.Error(t, err)

	var renderErr *template.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "Failed to render: sink full", err.Error())

	// no rollback: everything the sink accepted stays
	assert.Equal(t, "abcd", sink.buf.String())
}

func TestExpressionPermissiveness(t *testing.T) {
	globals := values.NewObject()
	globals.Set("tags", values.NewArray([]values.Value{values.NewString("alpha")}))
	rt := template.NewRuntime(globals)

	// unmatched roots and bad segments degrade to nil, never error
	assert.True(t, template.NewPathExpression("missing").Evaluate(rt).IsNil())
	assert.True(t, template.NewPathExpression("tags", template.NewIndexSegment(9)).Evaluate(rt).IsNil())
	assert.True(t, template.NewPathExpression("tags", template.NewKeySegment("k")).Evaluate(rt).IsNil())
}

func TestExpressionString(t *testing.T) {
	expr := template.NewPathExpression("a",
		template.NewKeySegment("b"),
		template.NewIndexSegment(-1),
		template.NewKeySegment("odd key"),
	)
	assert.Equal(t, `a.b[-1]["odd key"]`, expr.String())

	assert.Equal(t, `"s"`, template.NewLiteralExpression(values.NewString("s")).String())
	assert.Equal(t, "nil", template.NewLiteralExpression(values.NewNil()).String())
	assert.Equal(t, "false", template.NewLiteralExpression(values.NewBool(false)).String())
}
