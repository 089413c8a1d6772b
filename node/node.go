// Package node implements the internal and leaf nodes of a generalized
// suffix tree. Every node knows one full path-label from the root:
// (sequence, start, end). The incoming edge is derived from it and the
// parent's depth, so edges never copy symbols.
package node // import "stree.io/stree/node"

import (
	"fmt"

	"fortio.org/log"
	"fortio.org/sets"

	"stree.io/stree/seq"
)

// Node is either an *Internal or a *Leaf.
type Node interface {
	Parent() *Internal
	SetParent(p *Internal)
	Sequence() *seq.Sequence
	Start() int
	End() int
	// Depth is the string-depth: the number of symbols from the root to
	// this node.
	Depth() int
	// At returns the i-th symbol of the node's path-label.
	At(i int) seq.Symbol
	// Label is the full path from the root to this node.
	Label() seq.Path
	// Edge is the label of the edge from the parent into this node.
	Edge() seq.Path
	PreOrder(f func(Node))
	PostOrder(f func(Node))
	// ComputeC recomputes C(v), the number of distinct sequence ids below
	// each internal node, and returns the id set of this subtree.
	ComputeC() sets.Set[seq.ID]
	// ComputeLeftDiverse recomputes left-diversity bottom-up. It returns
	// the set of left characters of the subtree, or nil if the subtree is
	// already left-diverse.
	ComputeLeftDiverse() sets.Set[seq.Symbol]
	fmt.Stringer
}

// An Internal node. The root, the aux node and every node created by an
// edge split are Internal. Internal nodes other than root and aux always
// have at least two children.
type Internal struct {
	parent *Internal
	s      *seq.Sequence
	start  int
	end    int

	// SuffixLink points to the locus of this node's label minus its first
	// symbol. Maintained by the linear-time builders; under Naive only the
	// root's link (to aux) is set.
	SuffixLink *Internal

	// Children, keyed by the first symbol of each child's incoming edge.
	Children map[seq.Symbol]Node

	// C is the number of distinct sequence ids among the leaves below this
	// node. Valid after ComputeC.
	C int

	// LeftDiverse is true if at least two leaves below this node are
	// preceded by different symbols in their sequences. Valid after
	// ComputeLeftDiverse.
	LeftDiverse bool

	// Name labels the root and aux nodes in debug output.
	Name string
}

func NewInternal(parent *Internal, s *seq.Sequence, start, end int) *Internal {
	return &Internal{
		parent:   parent,
		s:        s,
		start:    start,
		end:      end,
		C:        -1,
		Children: make(map[seq.Symbol]Node),
	}
}

func (n *Internal) Parent() *Internal      { return n.parent }
func (n *Internal) SetParent(p *Internal)  { n.parent = p }
func (n *Internal) Sequence() *seq.Sequence { return n.s }
func (n *Internal) Start() int             { return n.start }
func (n *Internal) End() int               { return n.end }
func (n *Internal) Depth() int             { return n.end - n.start }

func (n *Internal) At(i int) seq.Symbol {
	return n.s.At(n.start + i)
}

func (n *Internal) Label() seq.Path {
	return seq.Path{Seq: n.s, Start: n.start, End: n.end}
}

func (n *Internal) Edge() seq.Path {
	if n.parent == nil {
		return seq.Path{Seq: n.s, Start: n.start, End: n.start}
	}
	return seq.Path{Seq: n.s, Start: n.start + n.parent.Depth(), End: n.end}
}

func (n *Internal) String() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Label().String()
}

func (n *Internal) PreOrder(f func(Node)) {
	f(n)
	for _, c := range n.Children {
		c.PreOrder(f)
	}
}

func (n *Internal) PostOrder(f func(Node)) {
	for _, c := range n.Children {
		c.PostOrder(f)
	}
	f(n)
}

// FindPath descends from n matching the absolute path p symbol by symbol.
// The first n.Depth() symbols of p are assumed already matched. It returns
// the deepest node reached, the total matched length, and, when the match
// ends in the middle of an edge, the child below the mismatch.
func (n *Internal) FindPath(p seq.Path) (Node, int, Node) {
	var cur Node = n
	matched := n.Depth()
	maxLen := p.Len()
	for matched < maxLen {
		child := cur.(*Internal).Children[p.At(matched)]
		if child == nil {
			return cur, matched, nil
		}
		stop := min(child.Depth(), maxLen)
		for matched < stop {
			if child.At(matched) != p.At(matched) {
				break
			}
			matched++
		}
		if matched < child.Depth() {
			// the path ends between cur and child
			return cur, matched, child
		}
		cur = child
	}
	return cur, matched, nil
}

// SplitEdge splits the edge n --> child into n --> new --> child and
// returns the new internal node, whose string-depth is newLen. The new
// node's suffix link starts unset.
func (n *Internal) SplitEdge(newLen int, child Node) *Internal {
	if newLen <= n.Depth() || newLen >= child.Depth() {
		log.Fatalf("split depth %d outside (%d, %d)", newLen, n.Depth(), child.Depth())
	}
	// child.Start() is the start of the path-label, not of the edge.
	edgeEnd := child.Start() + newLen
	mid := NewInternal(n, child.Sequence(), child.Start(), edgeEnd)
	n.Children[child.At(n.Depth())] = mid
	mid.Children[child.At(newLen)] = child
	child.SetParent(mid)
	log.Debugf("split edge %q--%q at depth %d", n, child, newLen)
	return mid
}

// AddChild installs c under n, keyed by the first symbol of c's edge.
func (n *Internal) AddChild(c Node) {
	n.Children[c.At(n.Depth())] = c
	c.SetParent(n)
}

func (n *Internal) ComputeC() sets.Set[seq.ID] {
	ids := sets.New[seq.ID]()
	for _, c := range n.Children {
		for id := range c.ComputeC() {
			ids.Add(id)
		}
	}
	n.C = ids.Len()
	return ids
}

func (n *Internal) ComputeLeftDiverse() sets.Set[seq.Symbol] {
	left := sets.New[seq.Symbol]()
	n.LeftDiverse = false
	for _, c := range n.Children {
		lc := c.ComputeLeftDiverse()
		if lc == nil {
			n.LeftDiverse = true
		} else {
			for sym := range lc {
				left.Add(sym)
			}
		}
	}
	if left.Len() > 1 {
		n.LeftDiverse = true
	}
	if n.LeftDiverse {
		return nil
	}
	return left
}

// A Leaf represents one suffix of one stored sequence: the path from the
// root through the leaf spells Sequence[Start:] including the end marker.
type Leaf struct {
	parent *Internal
	s      *seq.Sequence
	start  int
	end    int
	// phase, while non-nil, is the live end of an open edge: the Ukkonen
	// builder's current phase counter. Frozen into end when the sequence
	// is complete.
	phase *int
}

// NewLeaf makes a closed leaf spanning the rest of the sequence.
func NewLeaf(parent *Internal, s *seq.Sequence, start int) *Leaf {
	return &Leaf{parent: parent, s: s, start: start, end: s.Len()}
}

// NewOpenLeaf makes a leaf whose end follows the phase counter.
func NewOpenLeaf(parent *Internal, s *seq.Sequence, start int, phase *int) *Leaf {
	return &Leaf{parent: parent, s: s, start: start, phase: phase}
}

func (l *Leaf) Parent() *Internal      { return l.parent }
func (l *Leaf) SetParent(p *Internal)  { l.parent = p }
func (l *Leaf) Sequence() *seq.Sequence { return l.s }
func (l *Leaf) Start() int             { return l.start }

func (l *Leaf) End() int {
	if l.phase != nil {
		return *l.phase
	}
	return l.end
}

func (l *Leaf) Depth() int { return l.End() - l.start }

// Open reports whether the leaf edge still grows with the phase counter.
func (l *Leaf) Open() bool { return l.phase != nil }

// Freeze rebinds an open end to its current value.
func (l *Leaf) Freeze() {
	if l.phase != nil {
		l.end = *l.phase
		l.phase = nil
	}
}

// ID is the id of the sequence whose suffix this leaf represents.
func (l *Leaf) ID() seq.ID { return l.s.ID() }

// SuffixStart is the starting position of the suffix this leaf represents.
func (l *Leaf) SuffixStart() int { return l.start }

func (l *Leaf) At(i int) seq.Symbol {
	return l.s.At(l.start + i)
}

func (l *Leaf) Label() seq.Path {
	return seq.Path{Seq: l.s, Start: l.start, End: l.End()}
}

func (l *Leaf) Edge() seq.Path {
	return seq.Path{Seq: l.s, Start: l.start + l.parent.Depth(), End: l.End()}
}

func (l *Leaf) String() string {
	return fmt.Sprintf("%s (%v:%d)", l.Label(), l.ID(), l.start)
}

func (l *Leaf) PreOrder(f func(Node))  { f(l) }
func (l *Leaf) PostOrder(f func(Node)) { f(l) }

func (l *Leaf) ComputeC() sets.Set[seq.ID] {
	return sets.New[seq.ID](l.ID())
}

func (l *Leaf) ComputeLeftDiverse() sets.Set[seq.Symbol] {
	if l.start > 0 {
		return sets.New[seq.Symbol](l.s.At(l.start - 1))
	}
	// A suffix starting at 0 has no left character; it diversifies any
	// subtree it appears in.
	return nil
}
