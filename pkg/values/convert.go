// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// NewValue converts a plain Go value (as produced by the decoders used for
// context files) into a Value. Native Go maps carry no order, so their keys
// are sorted to keep conversion deterministic; decoders that preserve order
// build Objects directly instead of going through here.
//
// Unknown types panic: inputs come from decoders the engine chose, so an
// unhandled type is an internal invariant violation.
func NewValue(val interface{}) Value {
	switch typedVal := val.(type) {
	case nil:
		return NewNil()

	case Value:
		return typedVal

	case bool:
		return NewBool(typedVal)

	case string:
		return NewString(typedVal)

	case int:
		return NewInt(int64(typedVal))

	case int32:
		return NewInt(int64(typedVal))

	case int64:
		return NewInt(typedVal)

	case uint:
		return NewInt(uintToInt(uint64(typedVal)))

	case uint32:
		return NewInt(int64(typedVal))

	case uint64:
		return NewInt(uintToInt(typedVal))

	case float32:
		return NewFloat(float64(typedVal))

	case float64:
		return NewFloat(typedVal)

	case time.Time:
		return NewDate(typedVal)

	case []interface{}:
		result := make([]Value, 0, len(typedVal))
		for _, item := range typedVal {
			result = append(result, NewValue(item))
		}
		return NewArray(result)

	case map[string]interface{}:
		keys := make([]string, 0, len(typedVal))
		for k := range typedVal {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, NewValue(typedVal[k]))
		}
		return NewObjectValue(obj)

	case map[interface{}]interface{}:
		keys := make([]string, 0, len(typedVal))
		for k := range typedVal {
			keyStr, ok := k.(string)
			if !ok {
				panic(fmt.Sprintf("expected object key %v to be string", k))
			}
			keys = append(keys, keyStr)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, NewValue(typedVal[k]))
		}
		return NewObjectValue(obj)

	default:
		panic(fmt.Sprintf("unknown type %T for conversion to template value", val))
	}
}

// uintToInt guards the narrowing to the value model's int64: wrapping
// negative would silently corrupt the value.
func uintToInt(val uint64) int64 {
	if val > math.MaxInt64 {
		panic(fmt.Sprintf("integer %d overflows the template value model", val))
	}
	return int64(val)
}
