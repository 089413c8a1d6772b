package tree

import (
	"stree.io/stree/node"
	"stree.io/stree/seq"
)

// Ukkonen builds the tree on-line, one symbol per phase, in linear time.
// The implementation follows Ukkonen's paper: the active point is kept
// as a canonical reference pair (node, start) into the current sequence,
// update performs the pending suffix extensions of a phase, and canonize
// renormalizes the pair so the remaining path is shorter than the edge
// it starts on. Open leaf edges all end at the shared phase counter, so
// a phase extends every existing leaf in one store (Trick 3), and a
// phase ends at the first extension already present, since every
// shorter pending suffix is then present too (Trick 2).
type Ukkonen struct{}

func (Ukkonen) Name() string { return "ukkonen" }

func (Ukkonen) build(t *Tree, s *seq.Sequence) {
	b := &ukkonen{t: t, s: s}
	b.build()
}

type ukkonen struct {
	t *Tree
	s *seq.Sequence
	// e is the current phase: the number of symbols inserted so far.
	// Open leaf edges end here.
	e int
}

func (b *ukkonen) build() {
	n := b.t.root
	start := 0
	for i := 1; i <= b.s.Len(); i++ {
		b.e = i
		b.t.tick(i - 1)
		n, start = b.update(n, start)
		n, start = b.canonize(n, start, i)
	}
	// The sequence is complete, including its end marker: the implicit
	// tree is now a true suffix tree. Freeze the open edges.
	b.t.root.PreOrder(func(m node.Node) {
		if l, ok := m.(*node.Leaf); ok {
			l.Freeze()
		}
	})
}

// update inserts the phase's new symbol at every pending suffix, walking
// the boundary path by suffix links until it reaches the end point: the
// first state that already has the symbol. Fresh internal nodes created
// on the way are chained together by suffix links as soon as their
// targets exist.
func (b *ukkonen) update(n *node.Internal, start int) (*node.Internal, int) {
	i := b.e - 1
	ti := b.s.At(i)

	oldr := b.t.root
	endPoint, r := b.testAndSplit(n, start, i, ti)
	for !endPoint {
		r.AddChild(node.NewOpenLeaf(r, b.s, i-r.Depth(), &b.e))
		if oldr != b.t.root {
			oldr.SuffixLink = r
		}
		oldr = r

		n, start = b.canonize(n.SuffixLink, start, i)
		endPoint, r = b.testAndSplit(n, start, i, ti)
	}
	if oldr != b.t.root {
		oldr.SuffixLink = n
	}
	return n, start
}

// testAndSplit reports whether the state (n, [start, end)) already has a
// t-transition. If not, the state is made explicit (the edge below it is
// split) so a leaf can be attached to it.
func (b *ukkonen) testAndSplit(n *node.Internal, start, end int, t seq.Symbol) (bool, *node.Internal) {
	if l := end - start; l > 0 {
		child, cs, ck, _ := b.transition(n, start)
		if t == cs.At(ck+l) {
			return true, n
		}
		return false, n.SplitEdge(n.Depth()+l, child)
	}
	if n == b.t.aux {
		return true, n
	}
	if _, ok := n.Children[t]; ok {
		return true, n
	}
	return false, n
}

// canonize normalizes a reference pair: while the remaining path [start,
// end) covers a whole edge, descend and shorten it, so that afterwards
// the path is strictly shorter than the edge it points into (or empty).
func (b *ukkonen) canonize(n *node.Internal, start, end int) (*node.Internal, int) {
	if end-start == 0 {
		return n, start
	}
	child, _, ck, cp := b.transition(n, start)
	for cp-ck <= end-start {
		start += cp - ck
		n = child.(*node.Internal)
		if end-start > 0 {
			child, _, ck, cp = b.transition(n, start)
		}
	}
	return n, start
}

// transition returns the child reached from n by the symbol at absolute
// position k of the current sequence, together with the child's label
// sequence and the edge range within it. In a generalized tree the
// child's label may live in an earlier sequence, hence the indirection.
// From aux, every symbol leads to the root over an edge of length one.
func (b *ukkonen) transition(n *node.Internal, k int) (node.Node, *seq.Sequence, int, int) {
	if n == b.t.aux {
		return b.t.root, b.s, 0, 1
	}
	child := n.Children[b.s.At(k)]
	return child, child.Sequence(), child.Start() + n.Depth(), child.End()
}
