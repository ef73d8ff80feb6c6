package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Violation describes a schema construct that parses but will not render the
// way its author most likely intended.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	return v.Path + " -> " + v.Message
}

// Lint inspects form for dangling order keys, radio nodes without options,
// object nodes without properties and conditions that reference unknown
// nodes. Violations are sorted by path, then message.
func Lint(form *Form) []Violation {
	if form == nil {
		return nil
	}

	var result []Violation
	for _, key := range form.Keys() {
		node, _ := form.Node(key)
		result = append(result, lintNode(form, []string{key}, node)...)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Path == result[j].Path {
			return result[i].Message < result[j].Message
		}
		return result[i].Path < result[j].Path
	})
	return result
}

func lintNode(form *Form, path []string, node *Node) []Violation {
	if node == nil {
		return nil
	}
	location := strings.Join(path, ".")

	var result []Violation
	if cond := node.VisibleIf; cond != nil {
		result = append(result, lintCondition(form, location, cond)...)
	}

	if (node.Element == ElementRadio || node.Type == TypeRadio) && len(node.Enum) == 0 {
		result = append(result, Violation{
			Path:    location,
			Message: "radio without enum renders as a plain field",
		})
	}

	if node.Type == TypeObject && node.Properties == nil {
		result = append(result, Violation{
			Path:    location,
			Message: "object without properties renders as a plain field",
		})
	}

	if node.Order != nil && node.Properties != nil {
		for _, key := range node.Order {
			if _, ok := node.Child(key); !ok {
				result = append(result, Violation{
					Path:    location,
					Message: fmt.Sprintf("%s key %q has no matching property", ExtensionOrder, key),
				})
			}
		}
	}

	for _, key := range node.Properties.Keys() {
		child, _ := node.Child(key)
		result = append(result, lintNode(form, appendPath(path, key), child)...)
	}
	return result
}

func lintCondition(form *Form, location string, cond *Condition) []Violation {
	var result []Violation
	if strings.TrimSpace(cond.Field) == "" {
		result = append(result, Violation{
			Path:    location,
			Message: ExtensionVisibleIf + " has no field",
		})
	} else if _, ok := form.Lookup(cond.Field); !ok {
		result = append(result, Violation{
			Path:    location,
			Message: fmt.Sprintf("%s field %q does not match any node", ExtensionVisibleIf, cond.Field),
		})
	}
	if !cond.HasPredicate() {
		result = append(result, Violation{
			Path:    location,
			Message: ExtensionVisibleIf + " has no predicate and always passes",
		})
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
