package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single format) or base path (several)
	formats  string  // comma-separated output formats
	vizType  string  // treemap or nodelink
	scale    float64 // PNG scale factor
	detailed bool    // node-link labels carry values
	config   configFlags
}

// renderCommand creates the render command for generating treemap outputs.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a dataset as a treemap page or image",
		Long: `Render loads a dataset, lays it out and writes the requested formats.

The source is an http(s) URL, a JSON file, or "-" for stdin. Without a
source the dataset named in the config (by default the video game sales
dataset) is fetched.

Formats: html (default), svg, json, pdf, png. PDF and PNG need rsvg-convert
on the PATH. The nodelink type writes svg, pdf and png only.`,
		Example: `  # Video game sales page
  treemap render

  # A local file as SVG and PNG: sales.svg, sales.png
  treemap render sales.json -f svg,png

  # Wider page with slice-dice tiling
  treemap render sales.json --width 1400 --tiling slice-dice -o page.html

  # Hierarchy as a node-link diagram
  treemap render sales.json -t nodelink -f svg --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return c.runRender(cmd, source, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	flags.StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), svg, json, pdf, png (comma-separated)")
	flags.StringVarP(&opts.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: treemap, nodelink")
	flags.Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	flags.BoolVar(&opts.detailed, "detailed", false, "show values in node-link labels")
	opts.config.register(cmd)

	return cmd
}

// runRender executes one render pass and writes its artifacts.
func (c *CLI) runRender(cmd *cobra.Command, source string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.config.resolve(cmd)
	if err != nil {
		return err
	}
	formats := pipeline.ParseFormats(opts.formats)
	if len(formats) == 0 {
		formats = []string{pipeline.FormatHTML}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if source == "" {
		source = cfg.Dataset
	}

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Source:   source,
		Config:   cfg,
		VizType:  opts.vizType,
		Formats:  formats,
		Scale:    opts.scale,
		Detailed: opts.detailed,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range result.Skipped {
		printWarning(out, "%s output is not available for %s", f, opts.vizType)
	}

	paths := outputPaths(opts.output, source, written(formats, result.Artifacts))
	if err := writeArtifacts(ctx, out, result.Artifacts, paths); err != nil {
		return err
	}

	renderID := ""
	if result.Document != nil {
		renderID = result.Document.RenderID
	}
	if opts.output != "-" {
		printStats(out, result.Stats.LeafCount, result.Stats.CategoryCount, renderID)
		if result.Document != nil {
			printNextStep(out, "Explore in the terminal", strings.TrimSpace(appName+" explore "+argSource(source, cfg.Dataset)))
		}
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))
	return nil
}

// written returns the formats, in request order, that produced an artifact.
func written(formats []string, artifacts map[string][]byte) []string {
	var out []string
	for _, f := range formats {
		if _, ok := artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// outputTarget is one artifact's destination. An empty path means stdout.
type outputTarget struct {
	format string
	path   string
}

// outputPaths decides where each format is written. A single format with an
// explicit output goes exactly there; otherwise each format becomes
// base.format, with base derived from the output or the source.
func outputPaths(output, source string, formats []string) []outputTarget {
	targets := make([]outputTarget, 0, len(formats))
	if len(formats) == 1 && output != "" {
		path := output
		if output == "-" {
			path = ""
		}
		return append(targets, outputTarget{formats[0], path})
	}
	base := basePath(output, source)
	for _, f := range formats {
		path := base + "." + f
		if sameFile(path, source) {
			path = base + ".layout." + f
		}
		targets = append(targets, outputTarget{f, path})
	}
	return targets
}

// sameFile reports whether a derived path names the source file.
func sameFile(path, source string) bool {
	if source == "" || source == "-" || dataset.IsURL(source) {
		return false
	}
	return filepath.Clean(path) == filepath.Clean(source)
}

// basePath derives the base output path. Without an output it strips the
// extension from a file source; URLs and stdin fall back to the app name.
// A known format extension on output is stripped.
func basePath(output, source string) string {
	if output == "" || output == "-" {
		if source == "" || source == "-" || dataset.IsURL(source) {
			return appName
		}
		return strings.TrimSuffix(source, filepath.Ext(source))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each target and reports the files it created.
func writeArtifacts(ctx context.Context, out io.Writer, artifacts map[string][]byte, targets []outputTarget) error {
	logger := loggerFromContext(ctx)
	for _, t := range targets {
		data := artifacts[t.format]
		if t.path == "" {
			if _, err := out.Write(data); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(t.path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", t.path, err)
		}
		logger.Debug("wrote artifact", "format", t.format, "path", t.path, "bytes", len(data))
		printSuccess(out, "Generated %s", t.format)
		printFile(out, t.path)
	}
	return nil
}

// argSource returns source as it should appear in a suggested command: empty
// when it is the configured default.
func argSource(source, dflt string) string {
	if source == dflt {
		return ""
	}
	return source
}
