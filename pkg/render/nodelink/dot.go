package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the aggregate value and share of the total to labels.
	Detailed bool
	// MaxDepth drops nodes deeper than this. Zero keeps every level.
	MaxDepth int
}

// leafTint is how far leaf fills are blended from the group color towards
// white.
const leafTint = 0.55

var white = colorful.Color{R: 1, G: 1, B: 1}

// ToDOT converts a hierarchy to Graphviz DOT source. Colors are requested
// from reg in pre-order, so passing the registry used for the treemap keeps
// both diagrams consistent.
func ToDOT(tree *hierarchy.Tree, reg *colors.Registry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	total := tree.Total()
	var edges []string
	tree.Walk(func(i int, n hierarchy.Node) bool {
		if opts.MaxDepth > 0 && n.Depth > opts.MaxDepth {
			return false
		}
		attrs := fmtAttrs(tree, reg, i, fmtLabel(n, total, opts.Detailed))
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
		if n.Parent >= 0 {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", nodeID(n.Parent), nodeID(i)))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "n" + strconv.Itoa(i) }

func fmtLabel(n hierarchy.Node, total float64, detailed bool) string {
	if !detailed {
		return n.Name
	}
	value := n.Text
	if value == "" {
		value = strconv.FormatFloat(n.Value, 'f', 2, 64)
	}
	share := 0.0
	if total > 0 {
		share = n.Value / total * 100
	}
	return fmt.Sprintf("%s\n%s (%.1f%%)", n.Name, value, share)
}

func fmtAttrs(tree *hierarchy.Tree, reg *colors.Registry, i int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	n := tree.Node(i)
	if n.Depth == 0 {
		return append(attrs, "shape=ellipse")
	}

	fill := reg.ColorForNode(tree, i)
	if n.Leaf && n.Depth > 1 {
		fill = fill.BlendLab(white, leafTint).Clamped()
	}
	return append(attrs,
		fmt.Sprintf("fillcolor=%q", fill.Hex()),
		fmt.Sprintf("fontcolor=%q", colors.TextColor(fill).Hex()),
	)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox-anchored one so the SVG scales like the treemap output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
