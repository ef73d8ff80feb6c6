package schema

import "strings"

// Node types and element hints recognised by the view walker. Other values are
// carried through untouched and fall back to plain field rendering.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeRadio   = "radio"

	ElementCheckbox = "checkbox"
	ElementRadio    = "radio"
	ElementTextbox  = "textbox"
)

// Extension keys read from schema documents.
const (
	ExtensionOrder     = "x-ui-order"
	ExtensionVisibleIf = "x-ui-visible-if"
)

// Node is one entry of a declarative form description. Nodes are immutable
// once parsed; the walker and evaluator only read them.
type Node struct {
	Type        string
	Title       string
	Description string
	Element     string
	Enum        []string
	// Order lists child keys explicitly. A nil slice means "not declared" and
	// children follow Properties' natural order; an empty non-nil slice
	// declares that no children are shown.
	Order      []string
	Properties *Properties
	VisibleIf  *Condition
}

// IsGroup reports whether the node renders as a section/subsection.
func (n *Node) IsGroup() bool {
	return n != nil && n.Type == TypeObject && n.Properties != nil
}

// IsRadio reports whether the node renders as a radio group.
func (n *Node) IsRadio() bool {
	if n == nil || len(n.Enum) == 0 {
		return false
	}
	return n.Element == ElementRadio || n.Type == TypeRadio
}

// IsCheckbox reports whether the node renders as a checkbox.
func (n *Node) IsCheckbox() bool {
	return n != nil && (n.Element == ElementCheckbox || n.Type == TypeBoolean)
}

// ChildKeys returns the traversal order for a group node: the explicit order
// list when declared, otherwise the natural key order of Properties. Keys in
// an explicit order that have no matching property are returned as-is; the
// caller decides how to treat them.
func (n *Node) ChildKeys() []string {
	if n == nil {
		return nil
	}
	if n.Order != nil {
		return append([]string(nil), n.Order...)
	}
	return n.Properties.Keys()
}

// Child returns the property node registered under key.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	return n.Properties.Get(key)
}

// Condition gates a node (and its subtree) on a value in the full data tree.
//
// Field is a dotted path resolved from the data root. At most one predicate is
// honoured, checked in the order HasValue, IsNotEmpty, IsEmpty. A condition
// without any predicate is vacuously true.
type Condition struct {
	Field string
	// HasValue holds the expected value. Booleans compare against the value
	// after truthy-string normalisation; other scalars compare by equality.
	// Null stands for an explicit null operand. Nil means the predicate is
	// absent.
	HasValue   any
	IsNotEmpty *bool
	IsEmpty    *bool
}

// Null is the HasValue operand for an explicit null. It matches a path that
// resolves to a null value; a missing path does not match.
type Null struct{}

// HasPredicate reports whether any recognised predicate is present.
func (c *Condition) HasPredicate() bool {
	return c != nil && (c.HasValue != nil || c.IsNotEmpty != nil || c.IsEmpty != nil)
}

// Bool returns a pointer to v. Handy when building conditions in code.
func Bool(v bool) *bool {
	return &v
}

// Form is a parsed schema document: an ordered set of top-level nodes, each
// rendered as its own section.
type Form struct {
	Roots *Properties
}

// NewForm constructs an empty form.
func NewForm() *Form {
	return &Form{Roots: NewProperties()}
}

// Keys returns the top-level keys in document order.
func (f *Form) Keys() []string {
	if f == nil {
		return nil
	}
	return f.Roots.Keys()
}

// Node returns the top-level node registered under key.
func (f *Form) Node(key string) (*Node, bool) {
	if f == nil {
		return nil, false
	}
	return f.Roots.Get(key)
}

// Title returns the title of the first top-level node that declares one.
func (f *Form) Title() string {
	for _, key := range f.Keys() {
		if node, ok := f.Node(key); ok && node != nil && node.Title != "" {
			return node.Title
		}
	}
	return ""
}

// Lookup resolves a dotted path of property keys from the form roots, e.g.
// "profile.plan".
func (f *Form) Lookup(path string) (*Node, bool) {
	segments := strings.Split(strings.TrimSpace(path), ".")
	if len(segments) == 0 || segments[0] == "" {
		return nil, false
	}
	node, ok := f.Node(segments[0])
	for _, segment := range segments[1:] {
		if !ok || node == nil {
			return nil, false
		}
		node, ok = node.Child(segment)
	}
	return node, ok && node != nil
}
