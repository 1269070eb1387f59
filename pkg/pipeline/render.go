package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/render/nodelink"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/sink"
)

// Render generates artifacts in the requested formats. doc may be nil for
// node-link diagrams. Formats the visualization type cannot produce are
// returned as skipped rather than failing the pass.
func (r *Runner) Render(ctx context.Context, tree *hierarchy.Tree, doc *treemap.Document, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	var formats, skipped []string
	for _, f := range opts.Formats {
		if opts.Supports(f) {
			formats = append(formats, f)
		} else {
			skipped = append(skipped, f)
			opts.Logger.Warn("format not available for this type; skipping", "format", f, "type", opts.VizType)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	var artifacts map[string][]byte
	var err error
	if opts.IsNodelink() {
		artifacts, err = renderNodelink(ctx, tree, formats, opts)
	} else {
		artifacts, err = renderTreemap(ctx, doc, formats, opts)
	}
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return artifacts, skipped, nil
}

// renderTreemap writes the treemap document in each format.
func renderTreemap(ctx context.Context, doc *treemap.Document, formats []string, opts Options) (map[string][]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInternal, "treemap render without a layout")
	}
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatHTML:
			data = sink.RenderHTML(doc)
		case FormatSVG:
			data = sink.RenderSVG(doc)
		case FormatJSON:
			data, err = sink.RenderJSON(doc)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, doc)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, doc, sink.WithScale(opts.Scale))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported treemap format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderNodelink writes the hierarchy as a Graphviz diagram in each format.
func renderNodelink(ctx context.Context, tree *hierarchy.Tree, formats []string, opts Options) (map[string][]byte, error) {
	reg, err := newRegistry(opts)
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(tree, reg, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
