// Package pkg provides the core libraries for treemap visualization of
// hierarchical datasets.
//
// # Overview
//
// A dataset is a nested JSON document: internal nodes carry a name and
// children, leaves carry a name, a category and a value. The libraries turn
// it into a treemap whose tiles are sized by value and colored by top-level
// group, with a legend and a hover tooltip.
//
// # Architecture
//
// The data flow:
//
//	URL / file / stdin
//	         ↓
//	    [dataset] package (fetch and decode, one attempt)
//	         ↓
//	    [hierarchy] package (validate, aggregate, sort)
//	         ↓
//	    [render/treemap/layout] package (squarified subdivision)
//	         ↓
//	    [render/treemap] package (tiles, colors, legend)
//	         ↓
//	    HTML/SVG/JSON/PDF/PNG output
//
// # Quick Start
//
//	raw, _ := dataset.Load(ctx, dataset.DefaultURL)
//	tree, _ := hierarchy.Build(raw)
//	l, _ := layout.Compute(tree, 960, 560)
//	doc := treemap.Build(tree, l)
//	page := sink.RenderHTML(doc)
//
// # Main Packages
//
// [dataset] - Source resolution and decoding. Leaf values may be JSON numbers
// or numeric strings; the received text is kept for display.
//
// [hierarchy] - Arena tree with aggregate values, children ordered by
// descending value and leaves in tile order.
//
// [render/treemap/layout] - Squarify (golden ratio), slice, dice and
// slice-dice tilings over the plot rectangle.
//
// [render/treemap] - The render document: tiles, labels, legend grid and
// sizes. Colors come from [render/treemap/colors], hover behavior from
// [render/treemap/tooltip].
//
// [render/treemap/sink] - Output writers. HTML embeds the tooltip script.
//
// [render/nodelink] - The hierarchy as a Graphviz diagram.
//
// [pipeline] - The complete load → build → layout → render pass used by the
// CLI commands.
//
// [config] - TOML settings with defaults matching the reference page.
//
// [errors] - Coded errors. Load, malformed tree and empty dataset abort a
// render pass.
//
// [observability] - Hook interfaces for pipeline and HTTP events.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/dataset
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/hierarchy
// [render/treemap/layout]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap/layout
// [render/treemap]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap
// [render/treemap/colors]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap/colors
// [render/treemap/tooltip]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap/tooltip
// [render/treemap/sink]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/observability
package pkg
