// Package treemap turns a laid-out hierarchy into drawable tiles and legend
// items.
//
// # Overview
//
// The treemap visualization is built in stages, each in its own package:
//
//  1. Hierarchy ([hierarchy]): aggregate leaf values and sort children.
//  2. Layout ([layout]): subdivide the plotting area into rectangles.
//  3. Document (this package): bind colors, labels and tooltip content to
//     every leaf rectangle and arrange the category legend.
//  4. Sink ([sink]): write the document as HTML, SVG, JSON, PDF or PNG.
//
// A typical render:
//
//	tree, _ := hierarchy.Build(raw)
//	l, _ := layout.Compute(tree, 960, 560, layout.WithTiling(layout.Squarify))
//	doc := treemap.Build(tree, l, treemap.WithTitle("Video Game Sales"))
//	html := sink.RenderHTML(doc)
//
// Tiles are built before the legend. Both share one [colors.Registry], so
// category colors are bound in leaf-traversal order.
//
// [hierarchy]: github.com/matzehuels/treemap/pkg/hierarchy
// [layout]: github.com/matzehuels/treemap/pkg/render/treemap/layout
// [sink]: github.com/matzehuels/treemap/pkg/render/treemap/sink
package treemap
