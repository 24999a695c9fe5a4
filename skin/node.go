package skin

import "strings"

// Attr is one raw markup attribute, kept in document order
type Attr struct {
	Key   string
	Value string
}

// Node is a declarative object descriptor produced by a skin parser
type Node struct {
	Kind     string
	Attrs    []Attr
	Children []*Node
	Line     int // Source line when known, 0 otherwise
}

// Attr returns the first value for key (case-insensitive)
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits n and its descendants in pre-order until fn returns false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
