// Package config loads render settings from an optional TOML file.
//
// Settings start from [Default] and are overlaid by the file passed to
// [Load]. Unknown keys are rejected so typos do not go unnoticed. The CLI
// applies flag overrides on top of the loaded value and then calls
// [Config.Validate].
package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
	"github.com/matzehuels/treemap/pkg/render/treemap/tooltip"
)

// Config is the complete set of render settings.
type Config struct {
	Dataset     string   `toml:"dataset"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Palette     []string `toml:"palette"`

	Treemap Treemap `toml:"treemap"`
	Legend  Legend  `toml:"legend"`
	Tooltip Tooltip `toml:"tooltip"`
}

// Treemap sizes the treemap surface. Width and Height include the margins.
type Treemap struct {
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Tiling   string  `toml:"tiling"`
	FontSize float64 `toml:"font_size"`
	Margin   Margin  `toml:"margin"`
}

// Margin is the space around the plot inside the treemap surface.
type Margin struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Legend sizes the legend grid.
type Legend struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Columns    int     `toml:"columns"`
	ItemWidth  float64 `toml:"item_width"`
	ItemHeight float64 `toml:"item_height"`
	ItemOffset float64 `toml:"item_offset"`
}

// Tooltip configures the hover overlay.
type Tooltip struct {
	Offset float64 `toml:"offset"`
}

// Default returns the settings of the reference page: a 1000×600 surface
// with 20px margins, squarified tiling and a 300×200 legend of three
// columns.
func Default() *Config {
	m := treemap.DefaultMargin()
	lg := treemap.DefaultLegendOptions()
	return &Config{
		Dataset:     dataset.DefaultURL,
		Title:       treemap.DefaultTitle,
		Description: treemap.DefaultDescription,
		Palette:     append([]string(nil), colors.Category10...),
		Treemap: Treemap{
			Width:    1000,
			Height:   600,
			Tiling:   layout.Squarify,
			FontSize: treemap.DefaultFontSize,
			Margin:   Margin(m),
		},
		Legend: Legend{
			Width:      lg.Width,
			Height:     lg.Height,
			Columns:    lg.Columns,
			ItemWidth:  lg.ItemWidth,
			ItemHeight: lg.ItemHeight,
			ItemOffset: lg.ItemOffset,
		},
		Tooltip: Tooltip{Offset: tooltip.DefaultOffset},
	}
}

// Load reads path over [Default]. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := cfg.decode(string(data)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML text over [Default].
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Validate checks sizes, the tiling name and the palette.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	t := c.Treemap
	if t.Width <= 0 || t.Height <= 0 {
		return invalid("treemap size must be positive, got %gx%g", t.Width, t.Height)
	}
	if t.Margin.Top < 0 || t.Margin.Right < 0 || t.Margin.Bottom < 0 || t.Margin.Left < 0 {
		return invalid("treemap margins must be non-negative")
	}
	if w, h := c.PlotSize(); w <= 0 || h <= 0 {
		return invalid("margins leave no plotting area (%gx%g)", w, h)
	}
	if t.FontSize <= 0 {
		return invalid("font_size must be positive, got %g", t.FontSize)
	}
	if _, ok := layout.ParseTiling(t.Tiling); !ok {
		return invalid("unknown tiling %q: must be one of %s", t.Tiling, strings.Join(layout.Tilings, ", "))
	}

	lg := c.Legend
	if lg.Width <= 0 || lg.Height <= 0 {
		return invalid("legend size must be positive, got %gx%g", lg.Width, lg.Height)
	}
	if lg.Columns <= 0 {
		return invalid("legend columns must be positive, got %d", lg.Columns)
	}
	if lg.ItemWidth <= 0 || lg.ItemHeight <= 0 || lg.ItemOffset < 0 {
		return invalid("legend item sizes must be positive")
	}

	if c.Tooltip.Offset < 0 {
		return invalid("tooltip offset must be non-negative, got %g", c.Tooltip.Offset)
	}
	if _, err := colors.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}

// PlotSize returns the treemap surface minus its margins.
func (c *Config) PlotSize() (float64, float64) {
	m := c.Treemap.Margin
	return c.Treemap.Width - m.Left - m.Right, c.Treemap.Height - m.Top - m.Bottom
}

// MarginOptions converts the margin to its document form.
func (c *Config) MarginOptions() treemap.Margin { return treemap.Margin(c.Treemap.Margin) }

// LegendOptions converts the legend settings to their document form.
func (c *Config) LegendOptions() treemap.LegendOptions {
	return treemap.LegendOptions(c.Legend)
}
