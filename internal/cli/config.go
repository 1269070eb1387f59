package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/config"
)

// configFlags are the settings every command can override on the command
// line. Flags win over the --config file, which wins over the defaults.
type configFlags struct {
	path    string
	title   string
	tiling  string
	width   float64
	height  float64
	columns int
}

func (f *configFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.path, "config", "", "TOML settings file")
	flags.StringVar(&f.title, "title", "", "page title")
	flags.StringVar(&f.tiling, "tiling", "", "tiling method: squarify, slice-dice, slice, dice")
	flags.Float64Var(&f.width, "width", 0, "treemap surface width including margins")
	flags.Float64Var(&f.height, "height", 0, "treemap surface height including margins")
	flags.IntVar(&f.columns, "columns", 0, "legend items per row")
}

// resolve loads the config file and applies the flags the user set.
func (f *configFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.Title = f.title
	}
	if flags.Changed("tiling") {
		cfg.Treemap.Tiling = f.tiling
	}
	if flags.Changed("width") {
		cfg.Treemap.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Treemap.Height = f.height
	}
	if flags.Changed("columns") {
		cfg.Legend.Columns = f.columns
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configCommand prints the effective settings as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Long: `Print the settings a render would use, after applying the --config file
and any overriding flags. The output is a valid config file.`,
		Example: `  # Start a config file from the defaults
  treemap config > treemap.toml

  # Check what a config file plus overrides resolves to
  treemap config --config treemap.toml --width 1200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
