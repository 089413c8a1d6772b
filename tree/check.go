package tree

import (
	"fmt"

	"stree.io/stree/node"
	"stree.io/stree/seq"
)

// CheckInvariants walks the whole tree and verifies its structural
// invariants, returning an error naming the first broken one. Intended
// for tests and for DebugChecks mode; cost is linear in tree size per
// call.
func (t *Tree) CheckInvariants() error {
	if t.root.SuffixLink != t.aux {
		return fmt.Errorf("suffix link validity: root links to %v, not aux", t.root.SuffixLink)
	}

	type pos struct {
		id    seq.ID
		start int
	}
	leaves := make(map[pos]int)

	var err error
	t.root.PreOrder(func(m node.Node) {
		if err != nil {
			return
		}
		if l, ok := m.(*node.Leaf); ok {
			leaves[pos{l.ID(), l.SuffixStart()}]++
			if l.Open() {
				err = fmt.Errorf("leaf coverage: leaf %v still has an open edge", l)
			}
			return
		}
		in := m.(*node.Internal)
		if in != t.root && len(in.Children) < 2 {
			err = fmt.Errorf("no redundant internals: %q has %d child(ren)", in, len(in.Children))
			return
		}
		for key, c := range in.Children {
			if c.Parent() != in {
				err = fmt.Errorf("edge-key consistency: child %q of %q has wrong parent", c, in)
				return
			}
			if c.Edge().Len() < 1 {
				err = fmt.Errorf("depth monotonicity: empty edge into %q", c)
				return
			}
			if c.At(in.Depth()) != key {
				err = fmt.Errorf("edge-key consistency: %q keyed %v but edge starts with %v",
					c, key, c.At(in.Depth()))
				return
			}
			if c.Depth() != in.Depth()+c.Edge().Len() {
				err = fmt.Errorf("depth monotonicity: %q depth %d != %d+%d",
					c, c.Depth(), in.Depth(), c.Edge().Len())
				return
			}
		}
		if in != t.root && in.SuffixLink != nil && in.SuffixLink != t.aux {
			want := in.Label().Slice(1, in.Depth())
			if !in.SuffixLink.Label().Equal(want) {
				err = fmt.Errorf("suffix link validity: %q links to %q, want locus of %q",
					in, in.SuffixLink, want)
				return
			}
		}
		// End markers end leaf edges; they never occur inside an
		// internal node's label.
		for i := range in.Depth() {
			if seq.IsEndMarker(in.At(i)) {
				err = fmt.Errorf("sentinel uniqueness: end marker inside internal node %q", in)
				return
			}
		}
	})
	if err != nil {
		return err
	}

	// Every suffix of every stored sequence has exactly one leaf, and
	// that leaf spells the suffix.
	total := 0
	for id, s := range t.sequences {
		for start := range s.Len() {
			switch n := leaves[pos{id, start}]; n {
			case 1:
				// ok
			case 0:
				return fmt.Errorf("leaf coverage: no leaf for %v[%d:]", id, start)
			default:
				return fmt.Errorf("leaf coverage: %d leaves for %v[%d:]", n, id, start)
			}
		}
		total += s.Len()
	}
	if len(leaves) != total {
		return fmt.Errorf("leaf coverage: %d leaves for %d suffixes", len(leaves), total)
	}
	var lerr error
	t.root.PreOrder(func(m node.Node) {
		if lerr != nil {
			return
		}
		if l, ok := m.(*node.Leaf); ok {
			s := t.sequences[l.ID()]
			want := seq.Path{Seq: s, Start: l.SuffixStart(), End: s.Len()}
			if !l.Label().Equal(want) {
				lerr = fmt.Errorf("leaf coverage: leaf %v spells %q, want %q", l, l.Label(), want)
			}
			if !seq.IsEndMarker(l.At(l.Depth() - 1)) {
				lerr = fmt.Errorf("sentinel uniqueness: leaf %v does not end in a marker", l)
			}
		}
	})
	return lerr
}
