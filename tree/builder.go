package tree

import (
	"fmt"

	"stree.io/stree/seq"
)

// A Builder inserts all suffixes of one sequence into the tree. The three
// implementations are Naive, McCreight and Ukkonen; they share the node
// types but no state, and the choice is fixed when the tree is created.
type Builder interface {
	Name() string
	build(t *Tree, s *seq.Sequence)
}

// Builders lists every available builder.
var Builders = []Builder{Naive{}, McCreight{}, Ukkonen{}}

// ByName resolves a builder from its name.
func ByName(name string) (Builder, error) {
	for _, b := range Builders {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("unknown builder %q (want naive, mccreight or ukkonen)", name)
}
