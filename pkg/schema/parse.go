package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Parse decodes a schema document into a Form, preserving the key order of
// every mapping.
func Parse(doc Document) (*Form, error) {
	form, err := ParseBytes(doc.raw, doc.Format())
	if err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}
	return form, nil
}

// ParseBytes decodes raw JSON or YAML into a Form. The document root must be a
// mapping of top-level keys to schema nodes; entries that are not mappings are
// skipped.
func ParseBytes(raw []byte, format Format) (*Form, error) {
	var (
		root any
		err  error
	)
	switch format {
	case FormatJSON:
		root, err = decodeOrderedJSON(raw)
	case FormatYAML:
		root, err = decodeOrderedYAML(raw)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	obj, ok := root.(*object)
	if !ok {
		return nil, errors.New("document root must be an object")
	}

	form := NewForm()
	for _, key := range obj.keys {
		child, ok := obj.values[key].(*object)
		if !ok {
			continue
		}
		form.Roots.Set(key, buildNode(child))
	}
	return form, nil
}

// ParseNode decodes a single schema node (as opposed to a whole form).
func ParseNode(raw []byte, format Format) (*Node, error) {
	var (
		root any
		err  error
	)
	if format == FormatJSON {
		root, err = decodeOrderedJSON(raw)
	} else {
		root, err = decodeOrderedYAML(raw)
	}
	if err != nil {
		return nil, err
	}
	obj, ok := root.(*object)
	if !ok {
		return nil, errors.New("schema node must be an object")
	}
	return buildNode(obj), nil
}

func buildNode(obj *object) *Node {
	node := &Node{
		Type:        stringValue(obj, "type"),
		Title:       stringValue(obj, "title"),
		Description: stringValue(obj, "description"),
		Element:     stringValue(obj, "element"),
	}

	if raw, ok := obj.get("enum"); ok {
		if items, ok := raw.([]any); ok {
			for _, item := range items {
				if text, ok := scalarString(item); ok {
					node.Enum = append(node.Enum, text)
				}
			}
		}
	}

	if raw, ok := obj.get(ExtensionOrder); ok {
		if items, ok := raw.([]any); ok {
			node.Order = make([]string, 0, len(items))
			for _, item := range items {
				if key, ok := item.(string); ok {
					node.Order = append(node.Order, key)
				}
			}
		}
	}

	if raw, ok := obj.get("properties"); ok {
		if props, ok := raw.(*object); ok {
			node.Properties = NewProperties()
			for _, key := range props.keys {
				child, ok := props.values[key].(*object)
				if !ok {
					continue
				}
				node.Properties.Set(key, buildNode(child))
			}
		}
	}

	if raw, ok := obj.get(ExtensionVisibleIf); ok {
		if cond, ok := raw.(*object); ok {
			node.VisibleIf = buildCondition(cond)
		}
	}

	return node
}

func buildCondition(obj *object) *Condition {
	cond := &Condition{Field: stringValue(obj, "field")}

	if raw, ok := obj.get("hasValue"); ok {
		switch raw.(type) {
		case nil:
			cond.HasValue = Null{}
		case *object, []any:
		default:
			cond.HasValue = raw
		}
	}
	if raw, ok := obj.get("isNotEmpty"); ok {
		if flag, ok := raw.(bool); ok {
			cond.IsNotEmpty = Bool(flag)
		}
	}
	if raw, ok := obj.get("isEmpty"); ok {
		if flag, ok := raw.(bool); ok {
			cond.IsEmpty = Bool(flag)
		}
	}
	return cond
}

func stringValue(obj *object, key string) string {
	raw, ok := obj.get(key)
	if !ok {
		return ""
	}
	text, _ := raw.(string)
	return text
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case nil, *object, []any:
		return "", false
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return strings.TrimSpace(fmt.Sprint(v)), true
	}
}
