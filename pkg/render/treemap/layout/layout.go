package layout

import (
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
)

// Layout holds one rectangle per node of a tree, indexed by arena index.
type Layout struct {
	Width, Height float64
	Tiling        string
	Rects         []Rect
}

// Rect returns the rectangle of node i.
func (l Layout) Rect(i int) Rect { return l.Rects[i] }

// Option configures [Compute].
type Option func(*config)

type config struct {
	name  string
	tiler Tiler
}

// WithTiling selects a registered tiling strategy by name.
// Unknown names make [Compute] fail with INVALID_TILING.
func WithTiling(name string) Option {
	return func(c *config) {
		c.name = name
		c.tiler, _ = ParseTiling(name)
	}
}

// WithTiler installs a custom tiling strategy.
func WithTiler(name string, t Tiler) Option {
	return func(c *config) { c.name, c.tiler = name, t }
}

// Compute lays tree out in a width × height area anchored at the origin.
func Compute(tree *hierarchy.Tree, width, height float64, opts ...Option) (Layout, error) {
	cfg := config{name: Squarify}
	cfg.tiler, _ = ParseTiling(Squarify)
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tiler == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidTiling, "unknown tiling %q", cfg.name)
	}
	if width < 0 || height < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "negative plotting area %gx%g", width, height)
	}
	if tree.Total() <= 0 {
		return Layout{}, errors.New(errors.ErrCodeEmptyDataset, "dataset total value is zero")
	}

	rects := make([]Rect, tree.Len())
	rects[hierarchy.Root] = Rect{X1: width, Y1: height}

	var values []float64
	tree.Walk(func(i int, n hierarchy.Node) bool {
		if len(n.Children) == 0 {
			return true
		}
		values = values[:0]
		for _, c := range n.Children {
			values = append(values, tree.Node(c).Value)
		}
		for j, r := range cfg.tiler.Tile(n.Depth, values, rects[i]) {
			rects[n.Children[j]] = r
		}
		return true
	})

	return Layout{Width: width, Height: height, Tiling: cfg.name, Rects: rects}, nil
}
