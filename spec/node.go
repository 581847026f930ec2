package spec

import (
	"fmt"
)

// Node is a JSON-like value together with its location within the document
// it was selected from. Assigning through [Node.SetValue] mutates the
// parent value at this node's location too.
//
// Updating a document after evaluating a query can invalidate existing
// Nodes derived from it; use that capability at your own risk.
type Node struct {
	value    any
	location *Location
	parent   *Node
	root     any
}

// NewRootNode returns the root Node for value: an empty location and a nil
// parent.
func NewRootNode(value any) *Node {
	return &Node{value: value, root: value}
}

// newChild returns a Node for value found at key under parent, sharing
// parent's location tail.
func newChild(parent *Node, value any, key any) *Node {
	return &Node{
		value:    value,
		location: parent.location.Push(key),
		parent:   parent,
		root:     parent.root,
	}
}

// Value returns the JSON-like value captured at n's creation.
func (n *Node) Value() any { return n.value }

// Location returns n's path from the root, as a persistent linked list.
func (n *Node) Location() *Location { return n.location }

// Parent returns n's parent Node, the container n was selected from, or nil
// if n is the root node.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the original document n was selected from.
func (n *Node) Root() any { return n.root }

// Path returns the normalized path from the root of the document to n, per
// [RFC 9535 Section 2.7].
//
// [RFC 9535 Section 2.7]: https://www.rfc-editor.org/rfc/rfc9535#section-2.7
func (n *Node) Path() string {
	return newNormalizedPath(n.location).String()
}

// NormalizedPath returns n's path as a [NormalizedPath] value.
func (n *Node) NormalizedPath() NormalizedPath {
	return newNormalizedPath(n.location)
}

// SetValue assigns val to n and, for a non-root node whose parent still
// contains the key n was selected under, writes val through to the parent
// value too. Writing the root node's value updates only the Node's own
// captured value; it does not rewrite the caller's document root.
//
// Returns an error if the parent's structure changed since n was created
// such that n's key or index is no longer present — the same failure an
// ordinary indexing operation would report.
func (n *Node) SetValue(val any) error {
	if n.parent != nil && n.location != nil {
		key, _ := n.location.Last()
		if err := writeThrough(n.parent.value, key, val); err != nil {
			return err
		}
	}
	n.value = val
	return nil
}

// writeThrough assigns val into container at key, where key is a string
// object member name or an int array index.
func writeThrough(container any, key, val any) error {
	switch key := key.(type) {
	case string:
		obj, ok := container.(*Object)
		if !ok {
			return fmt.Errorf("jsonpath: cannot write member %q: parent is not an object", key)
		}
		if _, ok := obj.Get(key); !ok {
			return fmt.Errorf("jsonpath: cannot write member %q: key no longer present", key)
		}
		obj.Set(key, val)
		return nil
	case int:
		arr, ok := container.([]any)
		if !ok {
			return fmt.Errorf("jsonpath: cannot write index %d: parent is not an array", key)
		}
		if key < 0 || key >= len(arr) {
			return fmt.Errorf("jsonpath: cannot write index %d: out of range", key)
		}
		arr[key] = val
		return nil
	default:
		return fmt.Errorf("jsonpath: invalid path key %v", key)
	}
}

// String returns a debug representation of n.
func (n *Node) String() string {
	return fmt.Sprintf("Node(%s)", n.Path())
}

// NodeList is an ordered collection of Nodes, as produced by evaluating a
// query.
type NodeList []*Node

// Values returns the value of each node in nl, in order.
func (nl NodeList) Values() []any {
	vals := make([]any, len(nl))
	for i, n := range nl {
		vals[i] = n.Value()
	}
	return vals
}

// Paths returns the normalized path of each node in nl, in order.
func (nl NodeList) Paths() []string {
	paths := make([]string, len(nl))
	for i, n := range nl {
		paths[i] = n.Path()
	}
	return paths
}

// Item is a (path, value) pair for one node in a NodeList.
type Item struct {
	Path  string
	Value any
}

// Items returns a (path, value) pair for each node in nl, in order.
func (nl NodeList) Items() []Item {
	items := make([]Item, len(nl))
	for i, n := range nl {
		items[i] = Item{Path: n.Path(), Value: n.Value()}
	}
	return items
}

// Empty returns true if nl has no nodes.
func (nl NodeList) Empty() bool {
	return len(nl) == 0
}

// String returns a debug representation of nl.
func (nl NodeList) String() string {
	return fmt.Sprintf("NodeList%v", []*Node(nl))
}
