package schema

// Properties is an insertion-ordered mapping of child keys to nodes. Go maps
// carry no order, so the parser records the document's key order here.
type Properties struct {
	keys  []string
	nodes map[string]*Node
}

// NewProperties constructs an empty mapping.
func NewProperties() *Properties {
	return &Properties{nodes: make(map[string]*Node)}
}

// Set registers node under key. Re-setting an existing key replaces the node
// but keeps its original position.
func (p *Properties) Set(key string, node *Node) {
	if p.nodes == nil {
		p.nodes = make(map[string]*Node)
	}
	if _, exists := p.nodes[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.nodes[key] = node
}

// Get returns the node stored under key.
func (p *Properties) Get(key string) (*Node, bool) {
	if p == nil {
		return nil, false
	}
	node, ok := p.nodes[key]
	return node, ok
}

// Keys returns a copy of the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil || len(p.keys) == 0 {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}
