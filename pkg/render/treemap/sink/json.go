package sink

import (
	"encoding/json"

	"github.com/matzehuels/treemap/pkg/render/treemap"
)

type jsonOutput struct {
	RenderID    string     `json:"render_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	PlotWidth   float64    `json:"plot_width"`
	PlotHeight  float64    `json:"plot_height"`
	Margin      jsonMargin `json:"margin"`
	Tiling      string     `json:"tiling"`
	FontSize    float64    `json:"font_size"`
	Wrapped     bool       `json:"palette_wrapped,omitempty"`
	Tiles       []jsonTile `json:"tiles"`
	Legend      jsonLegend `json:"legend"`
}

type jsonMargin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type jsonTile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Value    string   `json:"value"`
	Group    string   `json:"group"`
	X0       float64  `json:"x0"`
	Y0       float64  `json:"y0"`
	X1       float64  `json:"x1"`
	Y1       float64  `json:"y1"`
	Color    string   `json:"color"`
	Lines    []string `json:"lines"`
}

type jsonLegend struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Columns int              `json:"columns"`
	Items   []jsonLegendItem `json:"items"`
}

type jsonLegendItem struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// RenderJSON exports the computed layout as a pretty-printed JSON document:
// surface and plot sizes, one entry per tile in tile order with its
// rectangle in plot coordinates, and the legend grid.
func RenderJSON(d *treemap.Document) ([]byte, error) {
	out := jsonOutput{
		RenderID:    d.RenderID,
		Title:       d.Title,
		Description: d.Description,
		Width:       d.Width,
		Height:      d.Height,
		PlotWidth:   d.PlotWidth,
		PlotHeight:  d.PlotHeight,
		Margin:      jsonMargin(d.Margin),
		Tiling:      d.Tiling,
		FontSize:    d.FontSize,
		Wrapped:     d.Wrapped,
		Tiles:       make([]jsonTile, len(d.Tiles)),
		Legend: jsonLegend{
			Width:   d.Legend.Width,
			Height:  d.Legend.Height,
			Columns: d.Legend.Columns,
			Items:   make([]jsonLegendItem, len(d.Legend.Items)),
		},
	}

	for i, t := range d.Tiles {
		lines := make([]string, len(t.Lines))
		for j, l := range t.Lines {
			lines[j] = l.Text
		}
		out.Tiles[i] = jsonTile{
			ID:       t.ID,
			Name:     t.Name,
			Category: t.Category,
			Value:    t.Value,
			Group:    t.Group,
			X0:       t.Rect.X0,
			Y0:       t.Rect.Y0,
			X1:       t.Rect.X1,
			Y1:       t.Rect.Y1,
			Color:    t.Color,
			Lines:    lines,
		}
	}
	for i, it := range d.Legend.Items {
		out.Legend.Items[i] = jsonLegendItem{
			Name: it.Name, Color: it.Color,
			Row: it.Row, Col: it.Col,
			X: it.X, Y: it.Y,
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
