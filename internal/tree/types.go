package tree

import (
	"fmt"
	"sort"
)

// Span is a half-open character range [Begin, End) over the source text.
type Span struct {
	Begin int `json:"begin" yaml:"begin"`
	End   int `json:"end" yaml:"end"`
}

// Valid reports whether the span is well formed (End >= Begin).
func (s Span) Valid() bool {
	return s.End >= s.Begin
}

// Covers reports whether o lies entirely within s. Partial overlaps are
// not covered.
func (s Span) Covers(o Span) bool {
	return s.Begin <= o.Begin && o.End <= s.End
}

// Union returns the smallest span containing both s and o.
func (s Span) Union(o Span) Span {
	u := s
	if o.Begin < u.Begin {
		u.Begin = o.Begin
	}
	if o.End > u.End {
		u.End = o.End
	}
	return u
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Begin, s.End)
}

// NodeID addresses a node inside its tree's arena.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Node is a labeled, spanned tree node. Structure (Children, Parent) is
// fixed once the tree is built; only the additional labels and the
// relational tag change during marking.
type Node struct {
	ID       NodeID
	Label    string
	Span     Span
	Children []NodeID
	Parent   NodeID

	// Relational flags the node as related for the current marking pass.
	Relational bool

	labels map[string]struct{}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// AddLabel adds an additional label. Duplicates collapse.
func (n *Node) AddLabel(label string) {
	if n.labels == nil {
		n.labels = make(map[string]struct{})
	}
	n.labels[label] = struct{}{}
}

// HasLabel reports whether the additional label is present.
func (n *Node) HasLabel(label string) bool {
	_, ok := n.labels[label]
	return ok
}

// Labels returns the additional labels in sorted order.
func (n *Node) Labels() []string {
	out := make([]string, 0, len(n.labels))
	for l := range n.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
