package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
	"github.com/matzehuels/treemap/pkg/render/treemap/tooltip"
)

// Rows outside the tile grid.
const (
	headerRows  = 2 // title, description
	tooltipRows = 5 // three content lines plus border
	helpRows    = 1
	minGridRows = 3
)

var (
	exploreHelpStyle    = lipgloss.NewStyle().Foreground(colorDim)
	exploreTooltipStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGray).Padding(0, 1)
)

// exploreCommand creates the explore command, an interactive terminal view
// of the treemap with a hover tooltip.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "explore [source]",
		Short: "Explore a treemap in the terminal",
		Long: `Explore lays out a dataset and draws it in the terminal. Hovering a tile
with the mouse shows its name, category and value; leaving it hides them.
Press q or esc to quit.`,
		Example: `  treemap explore
  treemap explore sales.json --tiling slice-dice`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = args[0]
			}
			return c.runExplore(cmd, source, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(cmd *cobra.Command, source string, flags *configFlags) error {
	ctx := cmd.Context()
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		Source:  source,
		Config:  cfg,
		Formats: []string{pipeline.FormatJSON},
		Logger:  loggerFromContext(ctx),
	}

	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Loading dataset...")
	spin.Start()
	runner := c.newRunner()
	tree, err := runner.Load(ctx, opts)
	if err != nil {
		spin.Stop()
		return err
	}
	doc, err := runner.Layout(ctx, tree, opts)
	if err != nil {
		spin.Stop()
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Loaded %d leaves in %d categories", tree.LeafCount(), len(doc.Legend.Items)))

	p := tea.NewProgram(newExploreModel(doc),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err = p.Run()
	return err
}

// =============================================================================
// exploreModel - Terminal treemap with hover tooltip
// =============================================================================

// exploreModel maps terminal cells onto the plot and drives a tooltip
// controller from mouse motion.
type exploreModel struct {
	doc     *treemap.Document
	tip     *tooltip.Controller
	width   int
	height  int
	hovered int     // tile index under the pointer, -1 for none
	cells   [][]int // tile index per grid cell, -1 for none
}

func newExploreModel(doc *treemap.Document) exploreModel {
	return exploreModel{
		doc:     doc,
		tip:     tooltip.New(tooltip.WithOffset(1)),
		hovered: -1,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cells = m.rasterize()
		m.hover(-1, 0, 0)
	case tea.MouseMsg:
		m.pointer(msg.X, msg.Y)
	}
	return m, nil
}

// pointer handles the pointer at terminal cell (x, y).
func (m *exploreModel) pointer(x, y int) {
	row := y - headerRows
	if row < 0 || row >= len(m.cells) || x < 0 || x >= m.width {
		m.hover(-1, x, y)
		return
	}
	m.hover(m.cells[row][x], x, y)
}

// hover moves the pointer onto tile i (or off every tile when i < 0).
// Entering a new tile replaces the content; moving within one only
// repositions the tooltip.
func (m *exploreModel) hover(i, x, y int) {
	switch {
	case i < 0:
		if m.hovered >= 0 {
			m.tip.Leave()
		}
	case i == m.hovered:
		m.tip.Move(float64(x), float64(y))
	default:
		if m.hovered >= 0 {
			m.tip.Leave()
		}
		m.tip.Enter(m.doc.Tiles[i].Tooltip(), float64(x), float64(y))
	}
	m.hovered = i
}

// gridRows returns the number of terminal rows the tiles occupy.
func (m exploreModel) gridRows() int {
	return max(m.height-headerRows-legendRows(m.doc)-tooltipRows-helpRows, minGridRows)
}

// rasterize samples the plot at the center of every grid cell.
func (m exploreModel) rasterize() [][]int {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	rows := m.gridRows()
	sx := m.doc.PlotWidth / float64(m.width)
	sy := m.doc.PlotHeight / float64(rows)

	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, m.width)
		for c := range cells[r] {
			cells[r][c] = -1
			if t, ok := m.doc.TileAt((float64(c)+0.5)*sx, (float64(r)+0.5)*sy); ok {
				cells[r][c] = t.Index
			}
		}
	}
	return cells
}

func legendRows(doc *treemap.Document) int {
	n := len(doc.Legend.Items)
	if n == 0 {
		return 0
	}
	return doc.Legend.Items[n-1].Row + 1
}

func (m exploreModel) View() string {
	if m.cells == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.doc.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.doc.Description))
	b.WriteString("\n")
	m.writeGrid(&b)
	m.writeLegend(&b)
	m.writeTooltip(&b)
	b.WriteString(exploreHelpStyle.Render("hover a tile for details · q quit"))
	return b.String()
}

// writeGrid draws each row as runs of same-tile cells. A tile's name is
// written along its top row.
func (m exploreModel) writeGrid(b *strings.Builder) {
	top := make(map[int]int) // tile index -> first grid row
	for r, row := range m.cells {
		for _, i := range row {
			if _, ok := top[i]; !ok {
				top[i] = r
			}
		}
	}

	for r, row := range m.cells {
		for c := 0; c < len(row); {
			i := row[c]
			end := c
			for end < len(row) && row[end] == i {
				end++
			}
			width := end - c
			if i < 0 {
				b.WriteString(strings.Repeat(" ", width))
			} else {
				text := strings.Repeat(" ", width)
				if top[i] == r {
					text = fitLabel(m.doc.Tiles[i].Name, width)
				}
				b.WriteString(m.tileStyle(i).Render(text))
			}
			c = end
		}
		b.WriteString("\n")
	}
}

func (m exploreModel) tileStyle(i int) lipgloss.Style {
	t := m.doc.Tiles[i]
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Color)).
		Foreground(lipgloss.Color(textColor(t.Color)))
	if i == m.hovered {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// writeLegend draws the legend on the same row and column grid the page uses.
func (m exploreModel) writeLegend(b *strings.Builder) {
	items := m.doc.Legend.Items
	cols := max(m.doc.Legend.Columns, 1)
	cellWidth := max(m.width/cols, 4)
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		for _, it := range items[start:end] {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render("■")
			b.WriteString(swatch + " " + fitLabel(it.Name, cellWidth-2))
		}
		b.WriteString("\n")
	}
}

// writeTooltip draws the tooltip box below the grid, shifted to the
// pointer column. An empty block of the same height keeps the layout still
// while the tooltip is hidden.
func (m exploreModel) writeTooltip(b *strings.Builder) {
	if !m.tip.Visible() {
		b.WriteString(strings.Repeat("\n", tooltipRows))
		return
	}
	box := exploreTooltipStyle.Render(m.tip.Text())
	left := int(m.tip.State().X)
	if w := lipgloss.Width(box); left+w > m.width {
		left = max(m.width-w, 0)
	}
	b.WriteString(lipgloss.NewStyle().MarginLeft(left).Render(box))
	b.WriteString("\n")
}

// fitLabel truncates or pads s to exactly width cells.
func fitLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		if width == 1 {
			return "…"
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

// textColor picks black or white text for a tile background.
func textColor(hex string) string {
	bg, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	return colors.TextColor(bg).Hex()
}
