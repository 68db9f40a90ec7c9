// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values_test

import (
	"math"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvel.dev/fluid/pkg/values"
)

func TestNewValue(t *testing.T) {
	assert.Equal(t, values.KindNil, values.NewValue(nil).Kind())
	assert.Equal(t, values.KindBool, values.NewValue(true).Kind())
	assert.Equal(t, values.KindInt, values.NewValue(42).Kind())
	assert.Equal(t, values.KindInt, values.NewValue(uint64(42)).Kind())
	assert.Equal(t, values.KindFloat, values.NewValue(1.5).Kind())
	assert.Equal(t, values.KindString, values.NewValue("x").Kind())
	assert.Equal(t, values.KindDate, values.NewValue(time.Now()).Kind())

	arr := values.NewValue([]interface{}{1, "two", nil})
	require.Equal(t, values.KindArray, arr.Kind())
	assert.Equal(t, "two", arr.Index(values.NewInt(1)).Render())
}

func TestNewValueMapSortsKeys(t *testing.T) {
	val := values.NewValue(map[string]interface{}{
		"zeta":  1,
		"alpha": 2,
		"mid":   map[string]interface{}{"b": 1, "a": 2},
	})

	obj, ok := val.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, obj.Keys())

	mid, found := obj.Get("mid")
	require.True(t, found)
	midObj, ok := mid.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, midObj.Keys())
}

func TestNewValueUnknownTypePanics(t *testing.T) {
	assert.Panics(t, func() { values.NewValue(struct{}{}) })
}

// unsigned values beyond the int64 range must not wrap negative
func TestNewValueUnsignedOverflowPanics(t *testing.T) {
	assert.Panics(t, func() { values.NewValue(uint64(math.MaxUint64)) })
	assert.Equal(t, "9223372036854775807", values.NewValue(uint64(math.MaxInt64)).Render())
}

func TestNewValueFuzzed(t *testing.T) {
	f := fuzz.New().NilChance(0.1).NumElements(0, 8)

	for i := 0; i < 200; i++ {
		var strs map[string]string
		var nums []float64
		f.Fuzz(&strs)
		f.Fuzz(&nums)

		doc := map[string]interface{}{}
		for k, v := range strs {
			doc[k] = v
		}
		var arr []interface{}
		for _, n := range nums {
			arr = append(arr, n)
		}
		doc["nums"] = arr

		val := values.NewValue(doc)
		require.Equal(t, values.KindObject, val.Kind())
		assert.True(t, val.Equals(values.NewValue(doc)))
		// rendering any converted value must be total
		_ = val.Render()
	}
}
