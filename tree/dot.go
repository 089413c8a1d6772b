package tree

import (
	"fmt"
	"strings"

	"stree.io/stree/node"
)

// ToDot renders the tree in GraphViz format: internal nodes red, leaves
// green, suffix links as blue non-constraining edges. Node labels are
// the path-labels, which are unique; leaves carry their (id:start) pair.
func (t *Tree) ToDot() string {
	var b strings.Builder
	b.WriteString("strict digraph G {\n")
	dotNode(&b, t.root)
	b.WriteString("}\n")
	return b.String()
}

func dotNode(b *strings.Builder, n node.Node) {
	switch v := n.(type) {
	case *node.Leaf:
		fmt.Fprintf(b, "%q [color=green];\n", v.String())
	case *node.Internal:
		fmt.Fprintf(b, "%q [color=red];\n", v.String())
		if v.SuffixLink != nil {
			fmt.Fprintf(b, "%q -> %q [color=blue; constraint=false];\n", v.String(), v.SuffixLink.String())
		}
		for key, c := range v.Children {
			fmt.Fprintf(b, "%q -> %q [label=%q];\n", v.String(), c.String(), fmt.Sprint(key))
			dotNode(b, c)
		}
	}
}
