package hierarchy

import (
	"slices"
	"strings"
)

// Root is the arena index of the root node.
const Root = 0

// Node is one entry of a [Tree].
type Node struct {
	Name     string
	Category string  // leaf category ("" for internal nodes)
	Value    float64 // aggregate: own value for leaves, subtree sum otherwise
	Text     string  // leaf value as received, for display
	Depth    int     // 0 for the root
	Parent   int     // arena index of the parent, -1 for the root
	Children []int   // arena indices ordered by descending Value
	Leaf     bool

	order int // position among siblings in the input document
}

// Tree is an immutable arena of hierarchy nodes. Index [Root] is the root.
type Tree struct {
	nodes  []Node
	leaves []int
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node at index i.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Total returns the aggregate value of the root.
func (t *Tree) Total() float64 { return t.nodes[Root].Value }

// Leaves returns the leaf indices in pre-order over the sorted tree. This is
// the order tiles are numbered in.
func (t *Tree) Leaves() []int { return slices.Clone(t.leaves) }

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int { return len(t.leaves) }

// TopLevel returns the ancestor of i at depth 1, the category group a leaf
// belongs to. The root maps to itself.
func (t *Tree) TopLevel(i int) int {
	for t.nodes[i].Depth > 1 {
		i = t.nodes[i].Parent
	}
	return i
}

// Categories returns the names of the root's children in input order.
func (t *Tree) Categories() []string {
	kids := slices.Clone(t.nodes[Root].Children)
	slices.SortFunc(kids, func(a, b int) int { return t.nodes[a].order - t.nodes[b].order })

	names := make([]string, len(kids))
	for i, k := range kids {
		names[i] = t.nodes[k].Name
	}
	return names
}

// Path returns the slash-joined names from the root down to i.
func (t *Tree) Path(i int) string {
	var parts []string
	for ; i >= 0; i = t.nodes[i].Parent {
		parts = append(parts, t.nodes[i].Name)
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}

// Walk visits nodes in pre-order over the sorted tree. Returning false from
// fn skips the node's subtree.
func (t *Tree) Walk(fn func(i int, n Node) bool) {
	var visit func(i int)
	visit = func(i int) {
		if !fn(i, t.nodes[i]) {
			return
		}
		for _, c := range t.nodes[i].Children {
			visit(c)
		}
	}
	visit(Root)
}
