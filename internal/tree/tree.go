package tree

import (
	"fmt"
)

// Tree owns an arena of nodes addressed by NodeID. Children are ordered
// index lists and parents are explicit indices, so ancestor walks are O(1)
// per step and there are no ownership cycles.
type Tree struct {
	nodes []*Node
	root  NodeID
}

// New creates a tree holding a single root node.
func New(label string, span Span) *Tree {
	t := &Tree{root: 0}
	t.nodes = append(t.nodes, &Node{ID: 0, Label: label, Span: span, Parent: NoNode})
	return t
}

// AddChild appends a new child under parent and returns its id. It is the
// only structural edit and belongs to tree construction; marking never
// calls it.
func (t *Tree) AddChild(parent NodeID, label string, span Span) NodeID {
	p := t.mustNode(parent)
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{ID: id, Label: label, Span: span, Parent: parent})
	p.Children = append(p.Children, id)
	return id
}

// Root returns the root node id.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id, or nil when id is out of range.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) mustNode(id NodeID) *Node {
	n := t.Node(id)
	if n == nil {
		panic(fmt.Sprintf("tree: node %d out of range", id))
	}
	return n
}

// Parent returns the parent of id and whether it has one.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.mustNode(id).Parent
	return p, p != NoNode
}

// Ancestors returns the ancestor chain of id from its parent up to the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p, ok := t.Parent(id); ok; p, ok = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Depth returns the number of ancestors of id. The root has depth 0.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for p, ok := t.Parent(id); ok; p, ok = t.Parent(p) {
		d++
	}
	return d
}

// Walk visits every node in preorder. Returning false from fn stops the
// walk.
func (t *Tree) Walk(fn func(n *Node) bool) {
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[id]
		if !fn(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Nodes returns every node id in preorder.
func (t *Tree) Nodes() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	t.Walk(func(n *Node) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

// Tokens returns the terminal nodes in left-to-right order.
func (t *Tree) Tokens() []NodeID {
	var out []NodeID
	t.Walk(func(n *Node) bool {
		if n.IsLeaf() {
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

// TokensCovered returns the tokens whose spans lie within span, in order.
func (t *Tree) TokensCovered(span Span) []NodeID {
	var out []NodeID
	for _, id := range t.Tokens() {
		if span.Covers(t.nodes[id].Span) {
			out = append(out, id)
		}
	}
	return out
}

// ClearRelational resets the relational tag on every node. Labels are left
// untouched.
func (t *Tree) ClearRelational() {
	for _, n := range t.nodes {
		n.Relational = false
	}
}

// Validate checks that every span is well formed and that each node's span
// contains the spans of its children.
func (t *Tree) Validate() error {
	for _, n := range t.nodes {
		if !n.Span.Valid() {
			return &ErrInvalidSpan{Node: n.ID, Label: n.Label, Span: n.Span}
		}
		for _, c := range n.Children {
			child := t.nodes[c]
			if !n.Span.Covers(child.Span) {
				return &ErrSpanContainment{Parent: n.ID, Child: c, ParentSpan: n.Span, ChildSpan: child.Span}
			}
		}
	}
	return nil
}
