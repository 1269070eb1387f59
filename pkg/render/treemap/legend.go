package treemap

import "github.com/matzehuels/treemap/pkg/render/treemap/colors"

// LegendOptions sizes the legend grid.
type LegendOptions struct {
	Width, Height float64 // legend surface
	Columns       int
	ItemWidth     float64 // horizontal space reserved per item, before the offset
	ItemHeight    float64 // swatch side
	ItemOffset    float64 // gap between items on both axes
}

// DefaultLegendOptions returns a 300×200 legend with three 100px columns
// of 15px swatches spaced 10px apart.
func DefaultLegendOptions() LegendOptions {
	return LegendOptions{
		Width:      300,
		Height:     200,
		Columns:    3,
		ItemWidth:  100,
		ItemHeight: 15,
		ItemOffset: 10,
	}
}

// Legend is the category key.
type Legend struct {
	LegendOptions
	Items []LegendItem
}

// LegendItem is one swatch and label. X and Y are the item origin inside
// the legend surface.
type LegendItem struct {
	Index    int
	Row, Col int
	Name     string
	Color    string
	X, Y     float64
}

// Swatch returns the swatch side length.
func (lg Legend) Swatch() float64 { return lg.ItemHeight }

// TextX returns the label x offset relative to the item origin.
func (lg Legend) TextX() float64 { return lg.ItemHeight + 5 }

// TextY returns the label baseline relative to the item origin.
func (lg Legend) TextY() float64 { return lg.ItemHeight - 2 }

// BuildLegend places one item per name in the given order. Row is
// index / Columns and column is index mod Columns. A non-positive column
// count is treated as one column.
func BuildLegend(names []string, reg *colors.Registry, opts LegendOptions) Legend {
	cols := max(opts.Columns, 1)
	items := make([]LegendItem, len(names))
	for i, name := range names {
		row, col := i/cols, i%cols
		items[i] = LegendItem{
			Index: i,
			Row:   row,
			Col:   col,
			Name:  name,
			Color: reg.Hex(name),
			X:     float64(col) * (opts.ItemWidth + opts.ItemOffset),
			Y:     float64(row) * (opts.ItemHeight + opts.ItemOffset),
		}
	}
	return Legend{LegendOptions: opts, Items: items}
}
