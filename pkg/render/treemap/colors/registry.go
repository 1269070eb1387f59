// Package colors assigns stable palette colors to top-level categories.
//
// A [Registry] is created once per render and shared by the tile and legend
// renderers. The first time a category name is requested it is bound to the
// next palette slot; the binding never changes afterwards. With more names
// than palette entries the slots wrap around, so the 11th name of a
// 10-color palette reuses slot 0.
package colors

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
)

// Category10 is the ten-color categorical palette used by default.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// ParsePalette parses hex color strings ("#rrggbb").
func ParsePalette(hexes []string) ([]colorful.Color, error) {
	if len(hexes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "palette is empty")
	}
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette entry %d", i)
		}
		out[i] = c
	}
	return out, nil
}

// Registry memoizes category → color bindings in first-seen order.
// It is not safe for concurrent use.
type Registry struct {
	palette  []colorful.Color
	assigned map[string]int
	order    []string
}

// NewRegistry creates a registry over palette. An empty palette falls back
// to [Category10].
func NewRegistry(palette []colorful.Color) *Registry {
	if len(palette) == 0 {
		palette, _ = ParsePalette(Category10)
	}
	return &Registry{palette: palette, assigned: make(map[string]int)}
}

// ColorFor returns the color bound to name, binding the next slot on first use.
func (r *Registry) ColorFor(name string) colorful.Color {
	slot, ok := r.assigned[name]
	if !ok {
		slot = len(r.order) % len(r.palette)
		r.assigned[name] = slot
		r.order = append(r.order, name)
	}
	return r.palette[slot]
}

// Hex returns ColorFor(name) as "#rrggbb".
func (r *Registry) Hex(name string) string { return r.ColorFor(name).Hex() }

// ColorForNode returns the color of the depth-1 ancestor of node i, so every
// leaf under one top-level group shares a color regardless of its own
// category field.
func (r *Registry) ColorForNode(t *hierarchy.Tree, i int) colorful.Color {
	return r.ColorFor(t.Node(t.TopLevel(i)).Name)
}

// Names returns the bound names in first-seen order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// Wrapped reports whether more names were bound than the palette holds.
func (r *Registry) Wrapped() bool { return len(r.order) > len(r.palette) }

// PaletteSize returns the number of palette entries.
func (r *Registry) PaletteSize() int { return len(r.palette) }

// String describes the registry for debug logs.
func (r *Registry) String() string {
	return fmt.Sprintf("colors.Registry{%d names, %d slots}", len(r.order), len(r.palette))
}

// TextColor returns black or white, whichever reads better on bg.
func TextColor(bg colorful.Color) colorful.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}
