package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// object is an insertion-ordered JSON/YAML mapping produced by the decoders
// below. Both decoders share it so node construction only deals with one
// representation.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// decodeOrderedJSON walks the token stream so object keys keep their document
// order, which encoding into map[string]any would lose.
func decodeOrderedJSON(raw []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	value, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}

func readJSONValue(dec *gojson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(gojson.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", keyTok)
			}
			value, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		items := []any{}
		for dec.More() {
			value, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
	}
}

// decodeOrderedYAML converts a yaml.Node tree, which preserves mapping order,
// into the shared ordered representation.
func decodeOrderedYAML(raw []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty YAML document")
	}
	return convertYAMLNode(doc.Content[0], 0)
}

const maxYAMLDepth = 256

func convertYAMLNode(node *yaml.Node, depth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if depth > maxYAMLDepth {
		return nil, errors.New("YAML document nests too deeply")
	}

	switch node.Kind {
	case yaml.AliasNode:
		return convertYAMLNode(node.Alias, depth+1)
	case yaml.MappingNode:
		obj := newObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value, err := convertYAMLNode(node.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj.set(key, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := convertYAMLNode(child, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, nil
	}
}
