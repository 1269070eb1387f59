// Package sink writes a treemap [treemap.Document] in its output formats.
//
// # Formats
//
//   - [RenderHTML]: the complete host page. A container holds the title
//     heading, the description, the hidden tooltip overlay, the treemap
//     surface and the legend surface, in that order. An embedded script
//     drives the tooltip from pointer events.
//   - [RenderSVG]: one standalone SVG stacking the treemap above the legend.
//     Each tile carries a <title> with its tooltip text, since there is no
//     script.
//   - [RenderJSON]: the computed layout for other tools.
//   - [RenderPDF], [RenderPNG]: the standalone SVG converted by rsvg-convert.
//
// # Attributes
//
// Both markup formats expose the same inspectable attributes. Every tile
// rect has id "tile-<i>", class "tile" and data-name, data-category and
// data-value. Legend swatches have class "legend-item". The HTML tooltip
// carries data-value while visible.
package sink
