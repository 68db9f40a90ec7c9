// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindDate
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		panic(fmt.Sprintf("unknown value kind %d", int(k)))
	}
}

// DateFormat is the display form of date scalars.
const DateFormat = "2006-01-02 15:04:05 -0700"

// View is the capability surface the engine programs against instead of
// concrete value representations: classification, scalar projection,
// display rendering, equality and child lookup.
type View interface {
	Kind() Kind
	IsNil() bool
	IsScalar() bool
	IsArray() bool
	IsObject() bool
	AsScalar() (Value, bool)
	Render() string
	Equals(other Value) bool
	Index(seg Value) Value
}

// Value is an immutable tagged union. The zero value is nil.
type Value struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	dateVal  time.Time
	arrayVal []Value
	objVal   *Object
}

var _ View = Value{}

func NewNil() Value                { return Value{kind: KindNil} }
func NewBool(val bool) Value       { return Value{kind: KindBool, boolVal: val} }
func NewInt(val int64) Value       { return Value{kind: KindInt, intVal: val} }
func NewFloat(val float64) Value   { return Value{kind: KindFloat, floatVal: val} }
func NewString(val string) Value   { return Value{kind: KindString, strVal: val} }
func NewDate(val time.Time) Value  { return Value{kind: KindDate, dateVal: val} }
func NewArray(vals []Value) Value  { return Value{kind: KindArray, arrayVal: vals} }
func NewObjectValue(obj *Object) Value { return Value{kind: KindObject, objVal: obj} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) IsScalar() bool {
	switch v.kind {
	case KindBool, KindInt, KindFloat, KindString, KindDate:
		return true
	default:
		return false
	}
}

// AsScalar is the canonical scalar projection. It reports false for nil,
// arrays and objects, i.e. wherever a scalar is structurally required but
// not present.
func (v Value) AsScalar() (Value, bool) {
	if v.IsScalar() {
		return v, true
	}
	return NewNil(), false
}

func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.boolVal, true
	}
	return false, false
}

// AsInt projects integer-valued scalars (floats with no fractional part
// included).
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.intVal, true
	case KindFloat:
		if v.floatVal == float64(int64(v.floatVal)) {
			return int64(v.floatVal), true
		}
	}
	return 0, false
}

func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.intVal), true
	case KindFloat:
		return v.floatVal, true
	}
	return 0, false
}

func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.strVal, true
	}
	return "", false
}

func (v Value) AsDate() (time.Time, bool) {
	if v.kind == KindDate {
		return v.dateVal, true
	}
	return time.Time{}, false
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind == KindArray {
		return v.arrayVal, true
	}
	return nil, false
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind == KindObject {
		return v.objVal, true
	}
	return nil, false
}

// Render returns the display form of the value: what an output tag writes.
// Nil renders as an empty string, arrays as the concatenation of their
// elements' renders, objects in their source-like form in insertion order.
func (v Value) Render() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'f', -1, 64)
	case KindString:
		return v.strVal
	case KindDate:
		return v.dateVal.Format(DateFormat)
	case KindArray:
		var sb strings.Builder
		for _, item := range v.arrayVal {
			sb.WriteString(item.Render())
		}
		return sb.String()
	case KindObject:
		var sb strings.Builder
		sb.WriteString("{")
		first := true
		v.objVal.Iterate(func(k string, item Value) {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&sb, "%q: %s", k, item.Render())
		})
		sb.WriteString("}")
		return sb.String()
	default:
		panic(fmt.Sprintf("unknown value kind %d", int(v.kind)))
	}
}

// Truthy follows templating convention: only nil and false are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.boolVal
	default:
		return true
	}
}

// Equals compares structurally. Numeric kinds compare by value, so an
// integer 1 equals a float 1.0.
func (v Value) Equals(other Value) bool {
	if (v.kind == KindInt || v.kind == KindFloat) && (other.kind == KindInt || other.kind == KindFloat) {
		if v.kind == KindInt && other.kind == KindInt {
			return v.intVal == other.intVal
		}
		vf, _ := v.AsFloat()
		of, _ := other.AsFloat()
		return vf == of
	}

	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindString:
		return v.strVal == other.strVal
	case KindDate:
		return v.dateVal.Equal(other.dateVal)
	case KindArray:
		if len(v.arrayVal) != len(other.arrayVal) {
			return false
		}
		for i, item := range v.arrayVal {
			if !item.Equals(other.arrayVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.objVal.Equals(other.objVal)
	default:
		panic(fmt.Sprintf("unknown value kind %d", int(v.kind)))
	}
}

// Compare orders two values where their kinds permit (numerics, strings,
// dates). Ordering anything else is an error.
func (v Value) Compare(other Value) (int, error) {
	if (v.kind == KindInt || v.kind == KindFloat) && (other.kind == KindInt || other.kind == KindFloat) {
		if v.kind == KindInt && other.kind == KindInt {
			return compareOrdered(v.intVal, other.intVal), nil
		}
		vf, _ := v.AsFloat()
		of, _ := other.AsFloat()
		return compareOrdered(vf, of), nil
	}

	if v.kind == other.kind {
		switch v.kind {
		case KindString:
			return strings.Compare(v.strVal, other.strVal), nil
		case KindDate:
			switch {
			case v.dateVal.Before(other.dateVal):
				return -1, nil
			case v.dateVal.After(other.dateVal):
				return 1, nil
			default:
				return 0, nil
			}
		}
	}

	return 0, fmt.Errorf("Cannot compare %s with %s", v.kind, other.kind)
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Index looks up a child of the value. Lookup is deliberately permissive:
// a missing key, an out-of-range offset, or indexing into a scalar yields
// nil rather than an error. Arrays accept integer offsets, negative ones
// counting from the end; objects accept string keys.
func (v Value) Index(seg Value) Value {
	switch v.kind {
	case KindArray:
		idx, ok := seg.AsInt()
		if !ok {
			return NewNil()
		}
		if idx < 0 {
			idx += int64(len(v.arrayVal))
		}
		if idx < 0 || idx >= int64(len(v.arrayVal)) {
			return NewNil()
		}
		return v.arrayVal[idx]
	case KindObject:
		key, ok := seg.AsString()
		if !ok {
			return NewNil()
		}
		item, found := v.objVal.Get(key)
		if !found {
			return NewNil()
		}
		return item
	default:
		return NewNil()
	}
}

// Len reports element count for arrays, key count for objects and rune
// count for strings; 0 for everything else.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arrayVal)
	case KindObject:
		return v.objVal.Len()
	case KindString:
		return utf8.RuneCountInString(v.strVal)
	default:
		return 0
	}
}
