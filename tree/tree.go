// Package tree implements a generalized suffix tree over sequences of
// arbitrary comparable symbols, with substring, common-substring,
// maximal-repeat and lowest-common-ancestor queries.
package tree // import "stree.io/stree/tree"

import (
	"errors"
	"fmt"
	"iter"

	"fortio.org/log"

	"stree.io/stree/node"
	"stree.io/stree/seq"
)

var (
	// ErrDuplicateID is returned by Add when the id is already present.
	ErrDuplicateID = errors.New("sequence id already added")
	// ErrUnknownID is returned by FindID for an id never added.
	ErrUnknownID = errors.New("unknown sequence id")
	// ErrEmptySequence is returned by Add for a zero-length sequence.
	ErrEmptySequence = errors.New("empty sequence")
)

// DebugChecks makes Add verify the structural invariants after every
// build and abort on the first violation. Too slow for production trees.
var DebugChecks = false

// A Tree is a generalized suffix tree. The zero value is not usable; use
// New or FromMap. A tree is not safe for concurrent use.
type Tree struct {
	root *node.Internal
	aux  *node.Internal

	sequences map[seq.ID]*seq.Sequence
	builder   Builder

	lca *lcaIndex

	progress     func(phase int)
	progressTick int
}

// New returns an empty tree. The optional builder (default McCreight)
// is fixed for the tree's lifetime.
func New(builder ...Builder) *Tree {
	b := Builder(McCreight{})
	if len(builder) > 0 {
		b = builder[0]
	}
	aux := node.NewInternal(nil, seq.Empty(), 0, 0)
	aux.Name = "aux"
	root := node.NewInternal(nil, seq.Empty(), 0, 0)
	root.Name = "root"
	// aux sits above the root: its single (virtual) edge consumes any one
	// symbol and leads to the root, which lets the linear-time builders
	// drop the first symbol of a suffix without a special case.
	root.SuffixLink = aux
	return &Tree{
		root:         root,
		aux:          aux,
		sequences:    make(map[seq.ID]*seq.Sequence),
		builder:      b,
		progressTick: 1,
	}
}

// FromMap builds a tree holding every sequence of d.
func FromMap(d map[seq.ID][]seq.Symbol, builder ...Builder) (*Tree, error) {
	t := New(builder...)
	for id, symbols := range d {
		if err := t.Add(id, symbols); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() *node.Internal { return t.root }

// SetProgress registers fn to be called every tick phases during
// construction with the current phase index.
func (t *Tree) SetProgress(tick int, fn func(phase int)) {
	if tick < 1 {
		tick = 1
	}
	t.progressTick = tick
	t.progress = fn
}

func (t *Tree) tick(phase int) {
	if t.progress != nil && phase%t.progressTick == 0 {
		t.progress(phase)
	}
}

// Add appends the unique end marker to symbols and inserts every suffix
// of the result into the tree. The sequence is copied; the caller may
// reuse the slice.
func (t *Tree) Add(id seq.ID, symbols []seq.Symbol) error {
	if len(symbols) == 0 {
		return fmt.Errorf("%w: id %v", ErrEmptySequence, id)
	}
	if _, dup := t.sequences[id]; dup {
		return fmt.Errorf("%w: %v", ErrDuplicateID, id)
	}
	s := seq.New(id, symbols)
	t.sequences[id] = s
	log.Debugf("adding %v (%d symbols) with the %s builder", id, s.Len(), t.builder.Name())
	t.builder.build(t, s)
	t.lca = nil
	if DebugChecks {
		if err := t.CheckInvariants(); err != nil {
			log.Fatalf("after adding %v: %v", id, err)
		}
	}
	return nil
}

// AddString adds a sequence with one symbol per rune.
func (t *Tree) AddString(id seq.ID, s string) error {
	return t.Add(id, seq.FromString(s))
}

func (t *Tree) findPath(needle []seq.Symbol) (node.Node, int, node.Node, int) {
	p := seq.Wrap(needle).Whole()
	n, matched, child := t.root.FindPath(p)
	return n, matched, child, p.Len()
}

// Find reports whether needle is a substring of any stored sequence.
func (t *Tree) Find(needle []seq.Symbol) bool {
	_, matched, _, want := t.findPath(needle)
	return matched == want
}

// FindID reports whether needle is a substring of the sequence id. It
// fails with ErrUnknownID if id was never added.
func (t *Tree) FindID(id seq.ID, needle []seq.Symbol) (bool, error) {
	if _, ok := t.sequences[id]; !ok {
		return false, fmt.Errorf("%w: %v", ErrUnknownID, id)
	}
	for lid := range t.FindAll(needle) {
		if lid == id {
			return true, nil
		}
	}
	return false, nil
}

// FindAll yields, for every occurrence of needle, the id of the sequence
// it occurs in and the full suffix path starting at the occurrence
// (end marker included). Order is unspecified. The result is independent
// of later tree mutations.
func (t *Tree) FindAll(needle []seq.Symbol) iter.Seq2[seq.ID, seq.Path] {
	n, matched, child, want := t.findPath(needle)
	var leaves []*node.Leaf
	if matched == want {
		top := n
		if child != nil {
			top = child
		}
		top.PreOrder(func(m node.Node) {
			if l, ok := m.(*node.Leaf); ok {
				leaves = append(leaves, l)
			}
		})
	}
	return func(yield func(seq.ID, seq.Path) bool) {
		for _, l := range leaves {
			if !yield(l.ID(), l.Label()) {
				return
			}
		}
	}
}

// PreOrder walks the tree visiting each node before its children.
func (t *Tree) PreOrder(f func(node.Node)) { t.root.PreOrder(f) }

// PostOrder walks the tree visiting each node after its children.
func (t *Tree) PostOrder(f func(node.Node)) { t.root.PostOrder(f) }

// LeafAt returns the leaf for the suffix of sequence id starting at
// start, or nil.
func (t *Tree) LeafAt(id seq.ID, start int) *node.Leaf {
	var found *node.Leaf
	t.root.PreOrder(func(m node.Node) {
		if l, ok := m.(*node.Leaf); ok && l.ID() == id && l.SuffixStart() == start {
			found = l
		}
	})
	return found
}

// A Common is the longest substring occurring in at least K distinct
// sequences.
type Common struct {
	K      int
	Length int
	Path   seq.Path
}

// CommonSubstrings returns, for every k from max(minK, 2) up to the
// number of stored sequences, the longest substring common to at least k
// of them, with one representative path. Among substrings of equal
// length, the one whose rendered symbols sort last (Path.Less) is chosen.
func (t *Tree) CommonSubstrings(minK int) []Common {
	t.root.ComputeC()

	type entry struct {
		depth int
		path  seq.Path
	}
	best := make(map[int]entry)
	maxC := 0
	t.root.PreOrder(func(m node.Node) {
		in, ok := m.(*node.Internal)
		if !ok {
			return
		}
		k := in.C
		if k > maxC {
			maxC = k
		}
		if d := in.Depth(); d > 0 && d >= best[k].depth {
			if l := firstLeafBelow(in); l != nil {
				p := seq.Path{Seq: l.Sequence(), Start: l.SuffixStart(), End: l.SuffixStart() + d}
				if d > best[k].depth || best[k].path.Less(p) {
					best[k] = entry{depth: d, path: p}
				}
			}
		}
	})

	minK = max(minK, 2)
	// l(k) is non-increasing in k: accumulate the running maximum from
	// the deep end.
	var maxLen int
	var maxPath seq.Path
	var out []Common
	for k := maxC; k >= 2; k-- {
		if e := best[k]; e.depth > maxLen || (e.depth > 0 && e.depth == maxLen && maxPath.Less(e.path)) {
			maxLen = e.depth
			maxPath = e.path
		}
		if k >= minK {
			out = append(out, Common{K: k, Length: maxLen, Path: maxPath})
		}
	}
	// ascending k
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// firstLeafBelow descends along arbitrary children to any leaf.
func firstLeafBelow(n node.Node) *node.Leaf {
	for {
		switch v := n.(type) {
		case *node.Leaf:
			return v
		case *node.Internal:
			var next node.Node
			for _, c := range v.Children {
				next = c
				break
			}
			if next == nil {
				return nil
			}
			n = next
		}
	}
}

// A Repeat is a maximal repeat: C is the number of distinct sequences
// the substring occurs in.
type Repeat struct {
	C    int
	Path seq.Path
}

// MaximalRepeats returns every maximal repeat: substrings that occur at
// least twice, cannot be extended to the right (they end at an internal
// node) and cannot be uniformly extended to the left (the node is
// left-diverse). Order is unspecified.
func (t *Tree) MaximalRepeats() []Repeat {
	t.root.ComputeC()
	t.root.ComputeLeftDiverse()

	var out []Repeat
	for _, c := range t.root.Children {
		c.PreOrder(func(m node.Node) {
			if in, ok := m.(*node.Internal); ok && in.LeftDiverse {
				out = append(out, Repeat{C: in.C, Path: in.Label()})
			}
		})
	}
	return out
}
