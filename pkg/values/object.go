// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values

// Object is a string-keyed map where the order of keys is maintained
// (unlike the native Go map). Key order is what keeps rendered output
// deterministic and stable; it is ignored for equality.
type Object struct {
	items []ObjectItem
}

type ObjectItem struct {
	Key   string
	Value Value
}

func NewObject() *Object {
	return &Object{}
}

func NewObjectWithItems(items []ObjectItem) *Object {
	obj := &Object{}
	for _, item := range items {
		obj.Set(item.Key, item.Value)
	}
	return obj
}

// Set overwrites an existing key in place (keeping its position) or
// appends a new one.
func (o *Object) Set(key string, value Value) {
	for i, item := range o.items {
		if item.Key == key {
			item.Value = value
			o.items[i] = item
			return
		}
	}
	o.items = append(o.items, ObjectItem{key, value})
}

func (o *Object) Get(key string) (Value, bool) {
	for _, item := range o.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return NewNil(), false
}

func (o *Object) Delete(key string) bool {
	for i, item := range o.items {
		if item.Key == key {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Object) Keys() (keys []string) {
	o.Iterate(func(k string, _ Value) {
		keys = append(keys, k)
	})
	return
}

func (o *Object) Iterate(iterFunc func(k string, v Value)) {
	for _, item := range o.items {
		iterFunc(item.Key, item.Value)
	}
}

func (o *Object) IterateErr(iterFunc func(k string, v Value) error) error {
	for _, item := range o.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Object) Len() int { return len(o.items) }

// Equals compares contents structurally; key order does not matter.
func (o *Object) Equals(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.items) != len(other.items) {
		return false
	}
	for _, item := range o.items {
		otherVal, found := other.Get(item.Key)
		if !found || !item.Value.Equals(otherVal) {
			return false
		}
	}
	return true
}
