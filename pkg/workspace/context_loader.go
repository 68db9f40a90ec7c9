// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"carvel.dev/fluid/pkg/values"
)

// LoadContextFile reads a context data file and returns the top-level
// object templates are rendered against. The format follows the file
// extension: .yaml/.yml/.json (YAML being a JSON superset) or .toml.
func LoadContextFile(path string) (*values.Object, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading context file: %s", err)
	}
	return LoadContext(bs, filepath.Ext(path))
}

func LoadContext(bs []byte, ext string) (*values.Object, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		return loadYAMLContext(bs)
	case ".toml":
		return loadTOMLContext(bs)
	default:
		return nil, fmt.Errorf("Unsupported context file extension '%s' (expected .yaml, .yml, .json or .toml)", ext)
	}
}

func loadYAMLContext(bs []byte) (*values.Object, error) {
	var doc interface{}
	// ordered decoding keeps object key order identical to the source file
	if err := yaml.UnmarshalWithOptions(bs, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("Parsing context file: %s", err)
	}

	val, err := convertYAML(doc)
	if err != nil {
		return nil, err
	}

	obj, ok := val.AsObject()
	if !ok {
		return nil, fmt.Errorf("Expected context file to hold an object at the top level, but found %s", val.Kind())
	}
	return obj, nil
}

func convertYAML(doc interface{}) (values.Value, error) {
	switch typedDoc := doc.(type) {
	case yaml.MapSlice:
		obj := values.NewObject()
		for _, item := range typedDoc {
			key, ok := item.Key.(string)
			if !ok {
				return values.NewNil(), fmt.Errorf("Expected object key '%v' to be a string", item.Key)
			}
			val, err := convertYAML(item.Value)
			if err != nil {
				return values.NewNil(), err
			}
			obj.Set(key, val)
		}
		return values.NewObjectValue(obj), nil

	case []interface{}:
		items := make([]values.Value, 0, len(typedDoc))
		for _, item := range typedDoc {
			val, err := convertYAML(item)
			if err != nil {
				return values.NewNil(), err
			}
			items = append(items, val)
		}
		return values.NewArray(items), nil

	default:
		return values.NewValue(typedDoc), nil
	}
}

func loadTOMLContext(bs []byte) (*values.Object, error) {
	var table map[string]interface{}
	if err := toml.Unmarshal(bs, &table); err != nil {
		return nil, fmt.Errorf("Parsing context file: %s", err)
	}

	// TOML decoding loses key order; conversion sorts keys to stay
	// deterministic
	val := values.NewValue(table)
	obj, ok := val.AsObject()
	if !ok {
		panic("toml table converted to non-object")
	}
	return obj, nil
}
