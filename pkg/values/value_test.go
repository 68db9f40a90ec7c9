// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvel.dev/fluid/pkg/values"
)

func TestRender(t *testing.T) {
	date := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, "", values.NewNil().Render())
	assert.Equal(t, "true", values.NewBool(true).Render())
	assert.Equal(t, "false", values.NewBool(false).Render())
	assert.Equal(t, "42", values.NewInt(42).Render())
	assert.Equal(t, "-7", values.NewInt(-7).Render())
	assert.Equal(t, "1.5", values.NewFloat(1.5).Render())
	assert.Equal(t, "beta", values.NewString("beta").Render())
	assert.Equal(t, "2024-03-09 12:30:00 +0000", values.NewDate(date).Render())

	arr := values.NewArray([]values.Value{values.NewString("a"), values.NewInt(1)})
	assert.Equal(t, "a1", arr.Render())

	obj := values.NewObject()
	obj.Set("greek", values.NewString("alpha"))
	obj.Set("n", values.NewInt(3))
	assert.Equal(t, `{"greek": alpha, "n": 3}`, values.NewObjectValue(obj).Render())
}

func TestScalarProjection(t *testing.T) {
	_, ok := values.NewInt(1).AsScalar()
	assert.True(t, ok)

	_, ok = values.NewNil().AsScalar()
	assert.False(t, ok)

	_, ok = values.NewArray(nil).AsScalar()
	assert.False(t, ok)

	obj := values.NewObjectValue(values.NewObject())
	_, ok = obj.AsScalar()
	assert.False(t, ok)
}

func TestEquals(t *testing.T) {
	assert.True(t, values.NewInt(1).Equals(values.NewFloat(1.0)))
	assert.True(t, values.NewFloat(1.0).Equals(values.NewInt(1)))
	assert.False(t, values.NewInt(1).Equals(values.NewFloat(1.5)))
	assert.True(t, values.NewNil().Equals(values.NewNil()))
	assert.False(t, values.NewNil().Equals(values.NewBool(false)))
	assert.False(t, values.NewString("1").Equals(values.NewInt(1)))

	a1 := values.NewArray([]values.Value{values.NewInt(1), values.NewString("x")})
	a2 := values.NewArray([]values.Value{values.NewInt(1), values.NewString("x")})
	assert.True(t, a1.Equals(a2))

	// object equality ignores insertion order
	o1 := values.NewObject()
	o1.Set("a", values.NewInt(1))
	o1.Set("b", values.NewInt(2))
	o2 := values.NewObject()
	o2.Set("b", values.NewInt(2))
	o2.Set("a", values.NewInt(1))
	assert.True(t, values.NewObjectValue(o1).Equals(values.NewObjectValue(o2)))
}

func TestCompare(t *testing.T) {
	cmp, err := values.NewInt(1).Compare(values.NewFloat(2.5))
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = values.NewString("beta").Compare(values.NewString("alpha"))
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = values.NewInt(1).Compare(values.NewString("1"))
	require.Error(t, err)
	assert.Equal(t, "Cannot compare integer with string", err.Error())

	_, err = values.NewArray(nil).Compare(values.NewArray(nil))
	require.Error(t, err)
}

func TestTruthy(t *testing.T) {
	assert.False(t, values.NewNil().Truthy())
	assert.False(t, values.NewBool(false).Truthy())
	assert.True(t, values.NewBool(true).Truthy())
	assert.True(t, values.NewInt(0).Truthy())
	assert.True(t, values.NewString("").Truthy())
	assert.True(t, values.NewArray(nil).Truthy())
}

func TestIndexArray(t *testing.T) {
	arr := values.NewArray([]values.Value{
		values.NewString("alpha"), values.NewString("beta"), values.NewString("gamma"),
	})

	assert.Equal(t, "beta", arr.Index(values.NewInt(1)).Render())
	assert.Equal(t, "gamma", arr.Index(values.NewInt(-1)).Render())
	assert.Equal(t, "alpha", arr.Index(values.NewInt(-3)).Render())

	// permissive: out of range and wrong key kinds degrade to nil
	assert.True(t, arr.Index(values.NewInt(3)).IsNil())
	assert.True(t, arr.Index(values.NewInt(-4)).IsNil())
	assert.True(t, arr.Index(values.NewString("x")).IsNil())
}

func TestIndexObject(t *testing.T) {
	obj := values.NewObject()
	obj.Set("greek", values.NewString("alpha"))
	val := values.NewObjectValue(obj)

	assert.Equal(t, "alpha", val.Index(values.NewString("greek")).Render())
	assert.True(t, val.Index(values.NewString("missing")).IsNil())
	assert.True(t, val.Index(values.NewInt(0)).IsNil())
}

func TestIndexScalarDegradesToNil(t *testing.T) {
	assert.True(t, values.NewInt(42).Index(values.NewInt(0)).IsNil())
	assert.True(t, values.NewNil().Index(values.NewString("k")).IsNil())
}

func TestObjectOrder(t *testing.T) {
	obj := values.NewObject()
	obj.Set("b", values.NewInt(1))
	obj.Set("a", values.NewInt(2))
	obj.Set("b", values.NewInt(3)) // overwrite keeps position

	assert.Equal(t, []string{"b", "a"}, obj.Keys())

	val, found := obj.Get("b")
	require.True(t, found)
	assert.Equal(t, "3", val.Render())
}

func TestLen(t *testing.T) {
	assert.Equal(t, 3, values.NewString("äbc").Len())
	assert.Equal(t, 2, values.NewArray([]values.Value{values.NewNil(), values.NewNil()}).Len())
	assert.Equal(t, 0, values.NewInt(5).Len())
}
