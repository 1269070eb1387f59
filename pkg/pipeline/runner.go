package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
)

// Runner executes render passes. It holds no per-pass state, so one Runner
// can serve several passes.
type Runner struct {
	Loader *dataset.Loader
	Logger *log.Logger
}

// NewRunner creates a runner. A nil loader uses [dataset.NewLoader] with a
// default client; a nil logger uses log.Default().
func NewRunner(loader *dataset.Loader, logger *log.Logger) *Runner {
	if loader == nil {
		loader = dataset.NewLoader(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Loader: loader, Logger: logger}
}

// Execute runs the complete load → build → layout → render pipeline.
// Load, build and layout failures abort before anything is rendered.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts.Logger.Debug("starting render pass", "options", opts.String())

	result := &Result{}

	// Stage 1+2: Load and build
	loadStart := time.Now()
	tree, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = tree
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.LeafCount = tree.LeafCount()
	result.Stats.CategoryCount = len(tree.Categories())

	opts.Logger.Info("loaded dataset",
		"leaves", result.Stats.LeafCount,
		"categories", result.Stats.CategoryCount,
		"duration", result.Stats.LoadTime)

	// Stage 3: Layout
	if opts.IsTreemap() {
		layoutStart := time.Now()
		doc, err := r.Layout(ctx, tree, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Document = doc
		result.Stats.LayoutTime = time.Since(layoutStart)

		opts.Logger.Info("computed layout",
			"tiles", len(doc.Tiles),
			"tiling", doc.Tiling,
			"render", doc.RenderID,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, skipped, err := r.Render(ctx, tree, result.Document, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Skipped = skipped
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the dataset named by opts.Source and builds its hierarchy.
func (r *Runner) Load(ctx context.Context, opts Options) (*hierarchy.Tree, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	tree, err := r.load(ctx, opts.Source)
	leaves := 0
	if tree != nil {
		leaves = tree.LeafCount()
	}
	hooks.OnLoadComplete(ctx, opts.Source, leaves, time.Since(start), err)
	return tree, err
}

func (r *Runner) load(ctx context.Context, source string) (*hierarchy.Tree, error) {
	raw, err := r.Loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(raw)
}

// Layout subdivides the plot area and binds tiles and legend items.
func (r *Runner) Layout(ctx context.Context, tree *hierarchy.Tree, opts Options) (*treemap.Document, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg := opts.Config

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, cfg.Treemap.Tiling, tree.LeafCount())
	start := time.Now()

	doc, err := r.layout(tree, opts)
	hooks.OnLayoutComplete(ctx, cfg.Treemap.Tiling, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if doc.Wrapped {
		opts.Logger.Warn("more categories than palette colors; colors repeat",
			"categories", len(doc.Legend.Items),
			"palette", len(cfg.Palette))
	}
	return doc, nil
}

func (r *Runner) layout(tree *hierarchy.Tree, opts Options) (*treemap.Document, error) {
	cfg := opts.Config
	w, h := cfg.PlotSize()
	l, err := layout.Compute(tree, w, h, opts.LayoutOptions()...)
	if err != nil {
		return nil, err
	}

	reg, err := newRegistry(opts)
	if err != nil {
		return nil, err
	}
	docOpts := []treemap.Option{
		treemap.WithTitle(cfg.Title),
		treemap.WithDescription(cfg.Description),
		treemap.WithMargin(cfg.MarginOptions()),
		treemap.WithFontSize(cfg.Treemap.FontSize),
		treemap.WithLegend(cfg.LegendOptions()),
		treemap.WithTooltipOffset(cfg.Tooltip.Offset),
		treemap.WithRegistry(reg),
	}
	if opts.RenderID != "" {
		docOpts = append(docOpts, treemap.WithRenderID(opts.RenderID))
	}
	return treemap.Build(tree, l, docOpts...), nil
}

func newRegistry(opts Options) (*colors.Registry, error) {
	palette, err := colors.ParsePalette(opts.Config.Palette)
	if err != nil {
		return nil, err
	}
	return colors.NewRegistry(palette), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
