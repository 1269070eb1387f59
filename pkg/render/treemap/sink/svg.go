package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/treemap/pkg/render/treemap"
)

const treemapCSS = `
    .tile { stroke: #fff; stroke-width: 0.5; }
    .tile-text text { font-family: sans-serif; pointer-events: none; }
    .legend-item { stroke: #fff; }
    #legend text { font-family: sans-serif; font-size: 12px; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	titles bool
	legend bool
}

// WithoutTitles omits the per-tile <title> tooltips.
func WithoutTitles() SVGOption { return func(r *svgRenderer) { r.titles = false } }

// WithoutLegend omits the legend surface.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// RenderSVG renders d as one standalone SVG: the treemap surface on top and
// the legend surface below it.
func RenderSVG(d *treemap.Document, opts ...SVGOption) []byte {
	r := svgRenderer{titles: true, legend: true}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := d.Width, d.Height
	if r.legend {
		width = math.Max(width, d.Legend.Width)
		height += d.Legend.Height
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%s" height="%s" data-render-id="%s">`+"\n",
		num(width), num(height), num(width), num(height), escapeXML(d.RenderID))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", treemapCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#fff"/>`+"\n")

	fmt.Fprintf(&buf, `  <g id="tree-map" transform="translate(%s, %s)">`+"\n", num(d.Margin.Left), num(d.Margin.Top))
	writeTiles(&buf, d, r.titles, "    ")
	buf.WriteString("  </g>\n")

	if r.legend {
		fmt.Fprintf(&buf, `  <g id="legend" transform="translate(0, %s)">`+"\n", num(d.Height))
		writeLegendItems(&buf, d.Legend, "    ")
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeTiles emits one group per tile: the rect, its clip path and the
// clipped label lines.
func writeTiles(buf *bytes.Buffer, d *treemap.Document, titles bool, indent string) {
	for _, t := range d.Tiles {
		fmt.Fprintf(buf, `%s<g class="tile-group" transform="translate(%s,%s)" style="overflow: hidden">`+"\n",
			indent, num(t.Rect.X0), num(t.Rect.Y0))
		fmt.Fprintf(buf, `%s  <rect id="%s" class="tile" width="%s" height="%s" fill="%s" data-name="%s" data-category="%s" data-value="%s">`,
			indent, t.ID, num(t.Rect.Width()), num(t.Rect.Height()), t.Color,
			escapeXML(t.Name), escapeXML(t.Category), escapeXML(t.Value))
		if titles {
			fmt.Fprintf(buf, "<title>%s</title>", escapeXML(t.Tooltip().Text()))
		}
		buf.WriteString("</rect>\n")
		fmt.Fprintf(buf, `%s  <clipPath id="%s"><use href="#%s" xlink:href="#%s"/></clipPath>`+"\n",
			indent, t.ClipID, t.ID, t.ID)
		fmt.Fprintf(buf, `%s  <g class="tile-text" clip-path="url(#%s)">`+"\n", indent, t.ClipID)
		for _, line := range t.Lines {
			fmt.Fprintf(buf, `%s    <text x="%s" y="%s" style="font-size: %spx">%s</text>`+"\n",
				indent, num(line.X), num(line.Y), num(d.FontSize), escapeXML(line.Text))
		}
		fmt.Fprintf(buf, "%s  </g>\n%s</g>\n", indent, indent)
	}
}

// writeLegendItems emits one translated group per legend item.
func writeLegendItems(buf *bytes.Buffer, lg treemap.Legend, indent string) {
	for _, it := range lg.Items {
		fmt.Fprintf(buf, `%s<g transform="translate(%s %s)">`+"\n", indent, num(it.X), num(it.Y))
		fmt.Fprintf(buf, `%s  <rect class="legend-item" width="%s" height="%s" fill="%s"/>`+"\n",
			indent, num(lg.Swatch()), num(lg.Swatch()), it.Color)
		fmt.Fprintf(buf, `%s  <text x="%s" y="%s">%s</text>`+"\n",
			indent, num(lg.TextX()), num(lg.TextY()), escapeXML(it.Name))
		fmt.Fprintf(buf, "%s</g>\n", indent)
	}
}

// num formats a coordinate at full precision with no trailing zeros.
func num(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
