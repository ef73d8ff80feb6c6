// Package data holds the sample data tree a form view is rendered against and
// the dotted-path helpers used to address it.
package data

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formview/pkg/schema"
)

// Tree is an arbitrarily nested mapping of string keys to values (strings,
// booleans, numbers, arrays, nested trees, or nil).
type Tree = map[string]any

// Decode parses a JSON or YAML payload into a Tree. JSON numbers are kept as
// json.Number so their textual form survives display.
func Decode(raw []byte, format schema.Format) (Tree, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Tree{}, nil
	}

	var out any
	switch format {
	case schema.FormatJSON:
		dec := gojson.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("data: decode json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("data: decode yaml: %w", err)
		}
	}

	if out == nil {
		return Tree{}, nil
	}
	tree, ok := normalize(out).(map[string]any)
	if !ok {
		return nil, errors.New("data: document root must be an object")
	}
	return tree, nil
}

// DecodeDocument parses a loaded document, picking the format from its
// location or content.
func DecodeDocument(doc schema.Document) (Tree, error) {
	return Decode(doc.Raw(), doc.Format())
}

// normalize rewrites YAML's map[any]any into map[string]any so lookups only
// have to deal with string keys.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalize(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return v
	}
}

// Lookup resolves a dotted path from root. Every step must land on a mapping
// that holds the next key, or on an array indexed by a canonical decimal
// segment ("0", "12"); otherwise def is returned.
func Lookup(root any, path string, def any) any {
	value, ok := Resolve(root, path)
	if !ok {
		return def
	}
	return value
}

// Resolve is Lookup with an explicit found flag. An empty path never
// resolves.
func Resolve(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := root
	for _, segment := range strings.Split(path, ".") {
		next, ok := childOf(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Child returns the value stored under key when node is a mapping, or the
// element at index key when node is an array. Anything else yields nil.
func Child(node any, key string) any {
	value, _ := childOf(node, key)
	return value
}

// Get is Child with a presence flag, so an explicit null can be told apart
// from a missing key.
func Get(node any, key string) (any, bool) {
	return childOf(node, key)
}

func childOf(node any, key string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[key]
		return value, ok
	case map[string]string:
		value, ok := typed[key]
		return value, ok
	case []any:
		index, ok := arrayIndex(key, len(typed))
		if !ok {
			return nil, false
		}
		return typed[index], true
	default:
		return nil, false
	}
}

func arrayIndex(key string, length int) (int, bool) {
	index, err := strconv.Atoi(key)
	if err != nil || index < 0 || index >= length {
		return 0, false
	}
	// "01" and "+1" are not element keys.
	if strconv.Itoa(index) != key {
		return 0, false
	}
	return index, true
}
