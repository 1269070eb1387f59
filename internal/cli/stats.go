package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/treemap"
)

// categoryStats summarizes one top-level group.
type categoryStats struct {
	Name   string
	Color  string
	Leaves int
	Total  float64
	Share  float64 // fraction of the root total
}

// summarize returns one entry per legend item, in legend order.
func summarize(tree *hierarchy.Tree, doc *treemap.Document) []categoryStats {
	byName := make(map[string]int)
	for _, k := range tree.Node(hierarchy.Root).Children {
		byName[tree.Node(k).Name] = k
	}
	leaves := make(map[string]int)
	for _, t := range doc.Tiles {
		leaves[t.Group]++
	}

	total := tree.Total()
	out := make([]categoryStats, 0, len(doc.Legend.Items))
	for _, it := range doc.Legend.Items {
		s := categoryStats{Name: it.Name, Color: it.Color, Leaves: leaves[it.Name]}
		if k, ok := byName[it.Name]; ok {
			s.Total = tree.Node(k).Value
		}
		if total > 0 {
			s.Share = s.Total / total
		}
		out = append(out, s)
	}
	return out
}

// statsCommand prints a per-category table for a dataset.
func (c *CLI) statsCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "stats [source]",
		Short: "Summarize a dataset by category",
		Long: `Stats loads a dataset and prints, for each top-level category in legend
order, its color, leaf count, total value and share of the whole.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{Source: source, Config: cfg, Logger: loggerFromContext(cmd.Context())}

			runner := c.newRunner()
			tree, err := runner.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}
			doc, err := runner.Layout(cmd.Context(), tree, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, statsTable(summarize(tree, doc)))
			printKeyValue(out, "Leaves", strconv.Itoa(tree.LeafCount()))
			printKeyValue(out, "Total", strconv.FormatFloat(tree.Total(), 'f', 2, 64))
			printKeyValue(out, "Tiling", doc.Tiling)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// statsTable renders stats as a bordered table with a colored swatch column.
func statsTable(stats []categoryStats) string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			"■",
			s.Name,
			strconv.Itoa(s.Leaves),
			strconv.FormatFloat(s.Total, 'f', -1, 64),
			fmt.Sprintf("%.1f%%", s.Share*100),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Category", "Leaves", "Total", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 && row >= 0 && row < len(stats) {
				return base.Foreground(lipgloss.Color(stats[row].Color))
			}
			if col >= 2 {
				return base.Align(lipgloss.Right)
			}
			return base
		})
	return t.Render()
}
