package tree

import "strings"

// RelationalPrefix is prepended to the label of relationally tagged nodes.
const RelationalPrefix = "REL-"

// SerializeOptions controls Serialize output.
type SerializeOptions struct {
	// Plain omits additional labels and relational tags.
	Plain bool
}

// Serialize writes the tree in bracketed form, e.g.
//
//	(ROOT (SBARQ (WHNP (WRB How)(JJ many))(NNS people)))
//
// Unless Plain is set, additional labels are appended to the node label
// sorted and joined with "-", and relational nodes get RelationalPrefix.
func Serialize(t *Tree, opts SerializeOptions) string {
	var b strings.Builder
	writeNode(&b, t, t.Root(), opts)
	return b.String()
}

// String returns the decorated serialization.
func (t *Tree) String() string {
	return Serialize(t, SerializeOptions{})
}

func writeNode(b *strings.Builder, t *Tree, id NodeID, opts SerializeOptions) {
	n := t.nodes[id]
	if n.IsLeaf() {
		b.WriteString(DecoratedLabel(n, opts))
		return
	}
	b.WriteByte('(')
	b.WriteString(DecoratedLabel(n, opts))
	b.WriteByte(' ')
	for i, c := range n.Children {
		if i > 0 && t.nodes[c].IsLeaf() {
			b.WriteByte(' ')
		}
		writeNode(b, t, c, opts)
	}
	b.WriteByte(')')
}

// DecoratedLabel renders a node label with its decorations.
func DecoratedLabel(n *Node, opts SerializeOptions) string {
	if opts.Plain || (len(n.labels) == 0 && !n.Relational) {
		return n.Label
	}
	var b strings.Builder
	if n.Relational {
		b.WriteString(RelationalPrefix)
	}
	b.WriteString(n.Label)
	for _, l := range n.Labels() {
		b.WriteByte('-')
		b.WriteString(l)
	}
	return b.String()
}
