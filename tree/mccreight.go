package tree

import (
	"fortio.org/log"

	"stree.io/stree/node"
	"stree.io/stree/seq"
)

// McCreight inserts the suffixes of a sequence in order of decreasing
// length, in linear time. Where the naive builder restarts every search
// at the root, McCreight jumps from head to head through suffix links:
// writing head_{i-1} = χ·α·β, the next head is reached by following the
// suffix link of the contracted locus of head_{i-1} (the locus of χα)
// and then "rescanning" β by edge lengths alone, since every symbol of β
// is already known to be present.
type McCreight struct{}

func (McCreight) Name() string { return "mccreight" }

func (McCreight) build(t *Tree, s *seq.Sequence) {
	b := &mccreight{t: t, s: s}
	b.build()
}

type mccreight struct {
	t *Tree
	s *seq.Sequence

	// Work counters. Both stay linear in the sequence length; the white
	// box tests pin that down on adversarial inputs.
	rescanSteps int
	scanSteps   int
}

func (b *mccreight) build() {
	end := b.s.Len()
	n := b.t.root
	for start := 0; start < end; start++ {
		b.t.tick(start)

		// Scan: from the last known locus, match the suffix symbol by
		// symbol until it falls out of the tree. The matched prefix is
		// head_i, the rest becomes a new leaf.
		deep, matched, child := n.FindPath(seq.Path{Seq: b.s, Start: start, End: end})
		b.scanSteps += matched - n.Depth()
		head := deep.(*node.Internal)
		if child != nil {
			head = head.SplitEdge(matched, child)
		}
		head.AddChild(node.NewLeaf(head, b.s, start))
		if log.LogDebug() {
			log.Debugf("suffix %d: head %q tail length %d", start, head, end-start-matched)
		}

		if head.SuffixLink == nil {
			head.SuffixLink = b.rescan(head)
		}
		n = b.follow(head)
	}
}

// follow reads a suffix link, treating the aux node as the root: aux
// stands for the state one symbol above the root, so hopping there and
// consuming the dropped first symbol lands back at the root.
func (b *mccreight) follow(n *node.Internal) *node.Internal {
	if n.SuffixLink == b.t.aux {
		return b.t.root
	}
	return n.SuffixLink
}

// rescan computes the suffix link of head: ascend to the parent, follow
// its link, then descend again to string-depth head.Depth()-1. The
// descent compares only edge lengths, never symbols — everything below
// the parent's link is an already-inserted copy of head's label minus
// its first symbol. If the target depth falls mid-edge the edge is
// split; the new node is the link target.
func (b *mccreight) rescan(head *node.Internal) *node.Internal {
	depth := head.Depth() - 1
	f := node.Node(b.follow(head.Parent()))
	for f.Depth() < depth {
		b.rescanSteps++
		f = f.(*node.Internal).Children[head.At(f.Depth()+1)]
	}
	if f.Depth() > depth {
		f = f.Parent().SplitEdge(depth, f)
	}
	return f.(*node.Internal)
}
