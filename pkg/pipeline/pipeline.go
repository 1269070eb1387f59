// Package pipeline provides the render pipeline for treemap visualizations.
//
// This package implements the complete load → build → layout → render
// sequence used by the CLI commands. Keeping it here means `render` and
// `explore` share defaults, validation and logging.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: fetch or read the dataset document (one attempt, no retry)
//  2. Build: aggregate values and sort the hierarchy
//  3. Layout: subdivide the plot area and bind tiles, colors and legend
//  4. Render: write the requested formats (HTML, SVG, JSON, PDF, PNG)
//
// A failure in load, build or layout aborts the pass: nothing is rendered.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "",                // default dataset URL
//	    Formats: []string{"html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run stages individually:
//
//	tree, err := runner.Load(ctx, opts)
//	doc, err := runner.Layout(ctx, tree, opts)
//	artifacts, err := runner.Render(ctx, tree, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// Visualization types.
const (
	VizTypeTreemap  = "treemap"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeTreemap

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// NodelinkFormats are the formats a node-link diagram can be written in.
var NodelinkFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTreemap:  true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render pass.
type Options struct {
	// Source is an http(s) URL, a file path or "-" for stdin. Empty means
	// Config.Dataset.
	Source string

	// Config holds sizes, tiling, palette and page texts. Nil means
	// config.Default().
	Config *config.Config

	VizType  string
	Formats  []string
	Scale    float64 // PNG scale factor
	Detailed bool    // node-link labels carry values

	// RenderID stamps the HTML and JSON artifacts. Empty generates one.
	RenderID string

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tree      *hierarchy.Tree
	Document  *treemap.Document
	Artifacts map[string][]byte

	// Skipped lists requested formats the visualization type cannot produce.
	Skipped []string

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LeafCount     int
	CategoryCount int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: html, svg, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid type: %q (must be one of: treemap, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Source == "" {
		o.Source = o.Config.Dataset
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// IsTreemap reports whether this is a treemap visualization.
func (o *Options) IsTreemap() bool {
	return o.VizType == "" || o.VizType == VizTypeTreemap
}

// IsNodelink reports whether this is a node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// Supports reports whether the visualization type can produce format.
func (o *Options) Supports(format string) bool {
	if o.IsNodelink() {
		return NodelinkFormats[format]
	}
	return ValidFormats[format]
}

// LayoutOptions returns the tiling option for [layout.Compute].
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{layout.WithTiling(o.Config.Treemap.Tiling)}
}

// String summarizes the options for debug logs.
func (o *Options) String() string {
	return fmt.Sprintf("source=%s type=%s formats=%s tiling=%s",
		o.Source, o.VizType, strings.Join(o.Formats, ","), o.Config.Treemap.Tiling)
}
