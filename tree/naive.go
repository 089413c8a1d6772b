package tree

import (
	"stree.io/stree/node"
	"stree.io/stree/seq"
)

// Naive builds the tree by scanning every suffix from the root, in
// Θ(n²). It maintains no suffix links and never touches the aux node.
// It exists as the oracle the linear-time builders are tested against.
type Naive struct{}

func (Naive) Name() string { return "naive" }

func (Naive) build(t *Tree, s *seq.Sequence) {
	end := s.Len()
	for start := range end {
		t.tick(start)
		n, matched, child := t.root.FindPath(seq.Path{Seq: s, Start: start, End: end})
		in := n.(*node.Internal)
		if child != nil {
			// the suffix diverges in the middle of an edge
			in = in.SplitEdge(matched, child)
		}
		// The end marker is unique to this sequence, so the suffix can
		// never be fully matched and never collide with an existing edge.
		in.AddChild(node.NewLeaf(in, s, start))
	}
}
