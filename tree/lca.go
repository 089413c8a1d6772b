package tree

import (
	"math/bits"

	"stree.io/stree/node"
)

// Constant-time lowest common ancestor after linearithmic preprocessing,
// by reduction to range-minimum over an Euler tour of the tree: the LCA
// of u and v is the shallowest node between any occurrence of u and any
// occurrence of v on the tour. Consecutive tour depths differ by exactly
// one; a plain sparse table over the depths is enough for O(1) queries.
type lcaIndex struct {
	tour  []node.Node
	depth []int // tree depth in edges, not string depth
	first map[node.Node]int
	// table[j][i] is the index of the minimum depth in [i, i+2^j).
	table [][]int
}

func newLCAIndex(root node.Node) *lcaIndex {
	x := &lcaIndex{first: make(map[node.Node]int)}
	var dfs func(n node.Node, d int)
	dfs = func(n node.Node, d int) {
		if _, seen := x.first[n]; !seen {
			x.first[n] = len(x.tour)
		}
		x.tour = append(x.tour, n)
		x.depth = append(x.depth, d)
		if in, ok := n.(*node.Internal); ok {
			for _, c := range in.Children {
				dfs(c, d+1)
				// re-entry after each child
				x.tour = append(x.tour, n)
				x.depth = append(x.depth, d)
			}
		}
	}
	dfs(root, 0)
	x.buildTable()
	return x
}

func (x *lcaIndex) buildTable() {
	n := len(x.depth)
	levels := 1
	for 1<<levels <= n {
		levels++
	}
	x.table = make([][]int, levels)
	x.table[0] = make([]int, n)
	for i := range x.table[0] {
		x.table[0][i] = i
	}
	for j := 1; j < levels; j++ {
		width := 1 << j
		prev := x.table[j-1]
		row := make([]int, n-width+1)
		for i := range row {
			a, b := prev[i], prev[i+width/2]
			if x.depth[b] < x.depth[a] {
				a = b
			}
			row[i] = a
		}
		x.table[j] = row
	}
}

// rangeMin returns the index of the minimum depth in the inclusive tour
// range [l, r].
func (x *lcaIndex) rangeMin(l, r int) int {
	if l > r {
		l, r = r, l
	}
	j := bits.Len(uint(r-l+1)) - 1
	a := x.table[j][l]
	b := x.table[j][r-(1<<j)+1]
	if x.depth[b] < x.depth[a] {
		return b
	}
	return a
}

// LCA returns the lowest common ancestor of u and v, both of which must
// be nodes of this tree. The index is built lazily on first use and
// discarded whenever a sequence is added.
func (t *Tree) LCA(u, v node.Node) node.Node {
	if t.lca == nil {
		t.lca = newLCAIndex(t.root)
	}
	return t.lca.tour[t.lca.rangeMin(t.lca.first[u], t.lca.first[v])]
}
