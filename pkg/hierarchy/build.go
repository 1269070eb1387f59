package hierarchy

import (
	"cmp"
	"slices"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
)

// Build converts a raw dataset document into an aggregated, sorted [Tree].
func Build(raw *dataset.RawNode) (*Tree, error) {
	if raw == nil {
		return nil, errors.New(errors.ErrCodeMalformedTree, "dataset has no root node")
	}

	// The root name only prefixes error paths; "(root)" keeps them readable.
	name := raw.Name
	if name == "" {
		name = "(root)"
	}
	b := &builder{}
	if _, err := b.add(raw, -1, 0, 0, name); err != nil {
		return nil, err
	}

	t := &Tree{nodes: b.nodes}
	t.sortChildren()
	t.Walk(func(i int, n Node) bool {
		if n.Leaf {
			t.leaves = append(t.leaves, i)
		}
		return true
	})
	return t, nil
}

type builder struct {
	nodes []Node
}

// add appends raw and its subtree, returning the new node's index.
func (b *builder) add(raw *dataset.RawNode, parent, depth, order int, path string) (int, error) {
	if raw == nil {
		return 0, errors.New(errors.ErrCodeMalformedTree, "%s: null node", path)
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		Name:   raw.Name,
		Depth:  depth,
		Parent: parent,
		order:  order,
	})

	switch {
	case raw.IsLeaf():
		if raw.Category == nil {
			return 0, errors.New(errors.ErrCodeMalformedTree, "%s: leaf has no category", path)
		}
		if raw.Value.Number < 0 {
			return 0, errors.New(errors.ErrCodeMalformedTree, "%s: negative value %s", path, raw.Value.Text)
		}
		n := &b.nodes[idx]
		n.Leaf = true
		n.Category = *raw.Category
		n.Value = raw.Value.Number
		n.Text = raw.Value.Text
		return idx, nil

	case raw.IsInternal():
		children := make([]int, 0, len(raw.Children))
		var sum float64
		for i, c := range raw.Children {
			childPath := path + "/"
			if c != nil {
				childPath += c.Name
			}
			ci, err := b.add(c, idx, depth+1, i, childPath)
			if err != nil {
				return 0, err
			}
			children = append(children, ci)
			sum += b.nodes[ci].Value
		}
		// b.nodes may have grown; index again rather than holding a pointer.
		b.nodes[idx].Children = children
		b.nodes[idx].Value = sum
		return idx, nil

	case raw.Value != nil && raw.Children != nil:
		return 0, errors.New(errors.ErrCodeMalformedTree, "%s: node has both children and a value", path)
	default:
		return 0, errors.New(errors.ErrCodeMalformedTree, "%s: node has neither children nor a value", path)
	}
}

func (t *Tree) sortChildren() {
	for i := range t.nodes {
		slices.SortStableFunc(t.nodes[i].Children, func(a, b int) int {
			return cmp.Compare(t.nodes[b].Value, t.nodes[a].Value)
		})
	}
}
