// Package render provides the output stage for hierarchy visualizations.
//
// # Overview
//
// This package holds what every visualization shares:
//
//   - Format conversion from SVG to PDF/PNG ([ToPDF], [ToPNG])
//   - The treemap visualization (in [treemap] and its subpackages)
//   - Node-link diagrams of the category hierarchy (in [nodelink])
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] pipe an SVG document through the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(doc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// A missing rsvg-convert binary yields an UNSUPPORTED error that names the
// install command.
//
// # Treemap
//
// Key treemap subpackages:
//   - [treemap/layout]: rectangle subdivision (squarify, slice-dice, slice, dice)
//   - [treemap/colors]: first-seen category color registry
//   - [treemap/tooltip]: hover overlay state machine
//   - [treemap/sink]: HTML, SVG, JSON, PDF and PNG writers
//
// [treemap]: github.com/matzehuels/treemap/pkg/render/treemap
// [treemap/layout]: github.com/matzehuels/treemap/pkg/render/treemap/layout
// [treemap/colors]: github.com/matzehuels/treemap/pkg/render/treemap/colors
// [treemap/tooltip]: github.com/matzehuels/treemap/pkg/render/treemap/tooltip
// [treemap/sink]: github.com/matzehuels/treemap/pkg/render/treemap/sink
// [nodelink]: github.com/matzehuels/treemap/pkg/render/nodelink
package render
