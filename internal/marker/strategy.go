package marker

import "github.com/qcri/qfmark/internal/tree"

// Strategy selects the nodes to mark starting from a node. Strategies are
// stateless values and may be shared freely. The result is ordered,
// duplicate free, and only contains nodes already in the tree.
type Strategy func(t *tree.Tree, start tree.NodeID) []tree.NodeID

// SameNode selects the starting node itself.
func SameNode(_ *tree.Tree, start tree.NodeID) []tree.NodeID {
	return []tree.NodeID{start}
}

// TwoAncestors selects the parent and the grandparent of start, truncated
// when the tree is too shallow.
func TwoAncestors(t *tree.Tree, start tree.NodeID) []tree.NodeID {
	return ancestorsUpTo(t, start, 2)
}

// SecondParent selects the grandparent of start. It returns nothing when
// start has fewer than two ancestors.
func SecondParent(t *tree.Tree, start tree.NodeID) []tree.NodeID {
	chain := ancestorsUpTo(t, start, 2)
	if len(chain) < 2 {
		return nil
	}
	return chain[1:]
}

func ancestorsUpTo(t *tree.Tree, start tree.NodeID, n int) []tree.NodeID {
	out := make([]tree.NodeID, 0, n)
	for p, ok := t.Parent(start); ok && len(out) < n; p, ok = t.Parent(p) {
		out = append(out, p)
	}
	return out
}
