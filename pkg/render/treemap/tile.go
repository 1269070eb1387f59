package treemap

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/render/treemap/tooltip"
)

// LabelInset is the horizontal offset of label lines inside a tile.
const LabelInset = 3

// Tile is one drawable leaf.
type Tile struct {
	Index    int
	ID       string // "tile-<Index>"
	ClipID   string // "clip-<Index>"
	Node     int    // arena index in the hierarchy
	Name     string
	Category string
	Value    string // display text of the leaf value
	Weight   float64
	Rect     layout.Rect // in plot coordinates
	Color    string      // "#rrggbb"
	Group    string      // top-level ancestor name
	Lines    []Line      // label, relative to the tile origin
}

// Line is one word of a tile label.
type Line struct {
	Text string
	X, Y float64
}

// Tooltip returns the tooltip content of t.
func (t Tile) Tooltip() tooltip.Content {
	return tooltip.Content{ID: t.ID, Name: t.Name, Category: t.Category, Value: t.Value}
}

// Contains reports whether the plot-space point (x, y) is inside t.
func (t Tile) Contains(x, y float64) bool { return t.Rect.Contains(x, y) }

// LabelLines splits name on whitespace and stacks one word per line at
// x = [LabelInset], y = fontSize × (line+1). Overflow is left to clipping.
func LabelLines(name string, fontSize float64) []Line {
	words := strings.Fields(name)
	lines := make([]Line, len(words))
	for i, w := range words {
		lines[i] = Line{Text: w, X: LabelInset, Y: fontSize * float64(i+1)}
	}
	return lines
}

// BuildTiles creates one tile per leaf in leaf-traversal order. Colors are
// requested from reg in that same order.
func BuildTiles(tree *hierarchy.Tree, l layout.Layout, reg *colors.Registry, fontSize float64) []Tile {
	leaves := tree.Leaves()
	tiles := make([]Tile, len(leaves))
	for i, idx := range leaves {
		n := tree.Node(idx)
		group := tree.Node(tree.TopLevel(idx)).Name
		tiles[i] = Tile{
			Index:    i,
			ID:       fmt.Sprintf("tile-%d", i),
			ClipID:   fmt.Sprintf("clip-%d", i),
			Node:     idx,
			Name:     n.Name,
			Category: n.Category,
			Value:    n.Text,
			Weight:   n.Value,
			Rect:     l.Rect(idx),
			Color:    reg.ColorForNode(tree, idx).Hex(),
			Group:    group,
			Lines:    LabelLines(n.Name, fontSize),
		}
	}
	return tiles
}
