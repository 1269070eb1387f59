package treemap

import (
	"github.com/google/uuid"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/render/treemap/tooltip"
)

// Defaults applied by [Build] when no option overrides them.
const (
	// DefaultTitle is the page heading.
	DefaultTitle = "Video Game Sales"
	// DefaultDescription is the subtitle under the heading.
	DefaultDescription = "Top 100 Most Sold Video Games Grouped by Platform"
	// DefaultFontSize is the tile label size in px.
	DefaultFontSize = 12
)

// Margin is the space between the treemap surface edge and the plot.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin returns 20px on every side.
func DefaultMargin() Margin { return Margin{Top: 20, Right: 20, Bottom: 20, Left: 20} }

// Document is everything a sink needs to draw one treemap page.
type Document struct {
	RenderID    string
	Title       string
	Description string

	Width, Height         float64 // treemap surface, margins included
	PlotWidth, PlotHeight float64
	Margin                Margin
	Tiling                string
	FontSize              float64
	TooltipOffset         float64

	Tiles  []Tile
	Legend Legend

	// Wrapped is set when there are more categories than palette colors
	// and some categories share a color.
	Wrapped bool
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	doc      Document
	registry *colors.Registry
}

// WithTitle sets the page heading.
func WithTitle(s string) Option { return func(b *builder) { b.doc.Title = s } }

// WithDescription sets the subtitle under the heading.
func WithDescription(s string) Option { return func(b *builder) { b.doc.Description = s } }

// WithMargin sets the space around the plot.
func WithMargin(m Margin) Option { return func(b *builder) { b.doc.Margin = m } }

// WithFontSize sets the tile label size in px.
func WithFontSize(px float64) Option { return func(b *builder) { b.doc.FontSize = px } }

// WithRenderID fixes the render id. Without it a random UUID is used.
func WithRenderID(id string) Option { return func(b *builder) { b.doc.RenderID = id } }

// WithLegend overrides the legend grid.
func WithLegend(o LegendOptions) Option { return func(b *builder) { b.doc.Legend.LegendOptions = o } }

// WithTooltipOffset sets the pointer offset the tooltip script uses.
func WithTooltipOffset(d float64) Option { return func(b *builder) { b.doc.TooltipOffset = d } }

// WithRegistry supplies the color registry. Without it a fresh registry over
// [colors.Category10] is used.
func WithRegistry(r *colors.Registry) Option { return func(b *builder) { b.registry = r } }

// Build binds tiles and legend items to the layout of tree. The plot size is
// taken from l; the surface adds the margins around it.
func Build(tree *hierarchy.Tree, l layout.Layout, opts ...Option) *Document {
	b := builder{doc: Document{
		Title:         DefaultTitle,
		Description:   DefaultDescription,
		Margin:        DefaultMargin(),
		FontSize:      DefaultFontSize,
		TooltipOffset: tooltip.DefaultOffset,
		Legend:        Legend{LegendOptions: DefaultLegendOptions()},
	}}
	for _, opt := range opts {
		opt(&b)
	}
	if b.registry == nil {
		b.registry = colors.NewRegistry(nil)
	}
	if b.doc.RenderID == "" {
		b.doc.RenderID = uuid.NewString()
	}

	d := b.doc
	d.Tiling = l.Tiling
	d.PlotWidth, d.PlotHeight = l.Width, l.Height
	d.Width = l.Width + d.Margin.Left + d.Margin.Right
	d.Height = l.Height + d.Margin.Top + d.Margin.Bottom

	// Tiles first: colors bind in leaf order.
	d.Tiles = BuildTiles(tree, l, b.registry, d.FontSize)
	d.Legend = BuildLegend(tree.Categories(), b.registry, d.Legend.LegendOptions)
	d.Wrapped = b.registry.Wrapped()
	return &d
}

// TileAt returns the tile under the plot-space point (x, y).
func (d *Document) TileAt(x, y float64) (Tile, bool) {
	for _, t := range d.Tiles {
		if t.Contains(x, y) {
			return t, true
		}
	}
	return Tile{}, false
}

// TileAtSurface is [Document.TileAt] for a point on the treemap surface,
// margins included.
func (d *Document) TileAtSurface(x, y float64) (Tile, bool) {
	return d.TileAt(x-d.Margin.Left, y-d.Margin.Top)
}

// Categories returns the legend names in order.
func (d *Document) Categories() []string {
	names := make([]string, len(d.Legend.Items))
	for i, it := range d.Legend.Items {
		names[i] = it.Name
	}
	return names
}
