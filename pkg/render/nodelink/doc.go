// Package nodelink renders the aggregated hierarchy as a node-link diagram.
//
// # Overview
//
// This package is an alternative to the treemap for inspecting a dataset's
// structure: the root, its category groups and their leaves appear as boxes
// joined by arrows, laid out left to right by Graphviz. Group and leaf boxes
// are filled with the same category colors the treemap uses.
//
// # Usage
//
//	reg := colors.NewRegistry(nil)
//	dot := nodelink.ToDOT(tree, reg, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Options
//
//   - Detailed: labels include the aggregate value and share of the total.
//   - MaxDepth: nodes deeper than this are left out (0 keeps all).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
