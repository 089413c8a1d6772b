// Package seq holds the sequences a suffix tree is built over and paths
// (contiguous ranges) into them. Symbols are opaque to the tree: anything
// that supports == and can key a map works, which is why Symbol is an alias
// for any. A sequence of runes, ints and structs mixed together is fine.
package seq // import "stree.io/stree/seq"

import (
	"fmt"
	"strings"
)

// Symbol is one element of a sequence. Must be comparable at runtime
// (usable as a map key); the tree never interprets it otherwise.
type Symbol = any

// ID identifies one sequence added to a tree. Must be comparable.
type ID = any

// endMarker terminates a stored sequence. One distinct marker per sequence
// id, unequal to every client symbol and to every other sequence's marker,
// so no stored suffix is a prefix of another.
type endMarker struct {
	id ID
}

func (e endMarker) String() string {
	return "$"
}

// IsEndMarker reports whether sym is an internally generated end marker.
func IsEndMarker(sym Symbol) bool {
	_, ok := sym.(endMarker)
	return ok
}

// A Sequence is an immutable run of symbols owned by the tree. Sequences
// created with New carry the end marker as their last symbol; sequences
// created with Wrap (queries) don't.
type Sequence struct {
	id  ID
	sym []Symbol
}

// New copies symbols and appends the unique end marker for id.
func New(id ID, symbols []Symbol) *Sequence {
	s := &Sequence{id: id, sym: make([]Symbol, 0, len(symbols)+1)}
	s.sym = append(s.sym, symbols...)
	s.sym = append(s.sym, endMarker{id: id})
	return s
}

// Wrap makes a marker-less sequence around symbols, for use as a query.
// The slice is not copied.
func Wrap(symbols []Symbol) *Sequence {
	return &Sequence{sym: symbols}
}

// Empty is the zero-length sequence used by the root and aux nodes.
func Empty() *Sequence {
	return &Sequence{}
}

func (s *Sequence) ID() ID {
	return s.id
}

func (s *Sequence) Len() int {
	return len(s.sym)
}

func (s *Sequence) At(i int) Symbol {
	return s.sym[i]
}

// Whole is the path covering the entire sequence.
func (s *Sequence) Whole() Path {
	return Path{Seq: s, Start: 0, End: len(s.sym)}
}

func (s *Sequence) String() string {
	return s.Whole().String()
}

// FromString splits s into one Symbol per rune. Convenience for clients
// whose sequences are plain strings, like the CLI.
func FromString(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, string(r))
	}
	return syms
}

// A Path is a view of the half-open range [Start, End) of one sequence.
// Paths are values; copying one is cheap and never copies symbols.
type Path struct {
	Seq   *Sequence
	Start int
	End   int
}

func (p Path) Len() int {
	return p.End - p.Start
}

// At returns the symbol at offset i from the start of the path.
func (p Path) At(i int) Symbol {
	return p.Seq.At(p.Start + i)
}

// Slice returns the sub-path [a, b) of p.
func (p Path) Slice(a, b int) Path {
	return Path{Seq: p.Seq, Start: p.Start + a, End: p.Start + b}
}

// Equal reports whether both paths spell the same symbols. Identity of the
// underlying sequences is irrelevant.
func (p Path) Equal(q Path) bool {
	if p.Len() != q.Len() {
		return false
	}
	for i := range p.Len() {
		if p.At(i) != q.At(i) {
			return false
		}
	}
	return true
}

// CommonPrefix returns the number of symbols, starting at offset, that p
// and q agree on.
func (p Path) CommonPrefix(q Path, offset int) int {
	length := min(p.Len(), q.Len()) - offset
	i := 0
	for i < length {
		if p.At(offset+i) != q.At(offset+i) {
			break
		}
		i++
	}
	return i
}

// String renders the symbols space-separated, end markers as "$".
func (p Path) String() string {
	var b strings.Builder
	for i := range p.Len() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, p.At(i))
	}
	return b.String()
}

// Less orders paths by their rendered symbols. Only query results are ever
// sorted with it; construction never compares whole paths.
func (p Path) Less(q Path) bool {
	return p.String() < q.String()
}
