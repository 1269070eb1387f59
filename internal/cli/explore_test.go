package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/layout"
)

func exploreDoc(t *testing.T) *treemap.Document {
	t.Helper()
	raw, err := dataset.ReadJSON(strings.NewReader(sales))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := hierarchy.Build(raw)
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Compute(tree, 960, 560)
	if err != nil {
		t.Fatal(err)
	}
	return treemap.Build(tree, l, treemap.WithRenderID("test"))
}

func sized(t *testing.T, w, h int) exploreModel {
	t.Helper()
	m, _ := newExploreModel(exploreDoc(t)).Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m.(exploreModel)
}

func motion(m exploreModel, x, y int) exploreModel {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	return next.(exploreModel)
}

func TestExploreRasterize(t *testing.T) {
	m := sized(t, 60, 30)

	if got, want := len(m.cells), m.gridRows(); got != want {
		t.Fatalf("grid rows = %d, want %d", got, want)
	}
	for r, row := range m.cells {
		if len(row) != 60 {
			t.Fatalf("row %d width = %d, want 60", r, len(row))
		}
		for c, i := range row {
			if i < 0 {
				t.Fatalf("cell (%d,%d) maps to no tile; the plot is fully tiled", c, r)
			}
		}
	}
	// Largest leaf is tile-0 and starts at the plot origin.
	if m.cells[0][0] != 0 {
		t.Errorf("top-left cell = tile %d, want tile 0", m.cells[0][0])
	}
}

func TestExploreHoverLifecycle(t *testing.T) {
	m := sized(t, 60, 30)
	if m.tip.Visible() {
		t.Fatal("tooltip visible before any pointer event")
	}

	// Enter tile-0.
	m = motion(m, 0, headerRows)
	if !m.tip.Visible() || m.hovered != 0 {
		t.Fatalf("after enter: visible=%v hovered=%d", m.tip.Visible(), m.hovered)
	}
	want := "Name: Wii Sports\nCategoty: Wii\nValue: 82.53"
	if got := m.tip.Text(); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got := m.tip.DataValue(); got != "82.53" {
		t.Errorf("data value = %q, want 82.53", got)
	}

	// Move within the same tile repositions without changing content.
	m = motion(m, 1, headerRows)
	if st := m.tip.State(); st.X != 2 || st.Y != float64(headerRows+1) || st.Name != "Wii Sports" {
		t.Errorf("after move: %+v", st)
	}

	// Leaving the grid hides and clears.
	m = motion(m, 1, 0)
	if m.tip.Visible() || m.tip.Text() != "" || m.hovered != -1 {
		t.Errorf("after leave: visible=%v text=%q hovered=%d", m.tip.Visible(), m.tip.Text(), m.hovered)
	}
}

func TestExploreHoverSwitchesTiles(t *testing.T) {
	m := sized(t, 60, 30)
	last := len(m.cells) - 1

	m = motion(m, 0, headerRows)
	first := m.tip.State().Content
	m = motion(m, 59, headerRows+last)
	second := m.tip.State().Content

	if !m.tip.Visible() {
		t.Fatal("tooltip should stay visible when moving between tiles")
	}
	if first.ID == second.ID {
		t.Errorf("opposite corners hit the same tile %s", first.ID)
	}
	if second.ID != m.doc.Tiles[m.hovered].ID {
		t.Errorf("content %s does not match hovered tile %s", second.ID, m.doc.Tiles[m.hovered].ID)
	}
}

func TestExploreResizeHidesTooltip(t *testing.T) {
	m := sized(t, 60, 30)
	m = motion(m, 0, headerRows)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = next.(exploreModel)
	if m.tip.Visible() {
		t.Error("resize should hide the tooltip")
	}
	if len(m.cells[0]) != 40 {
		t.Errorf("width after resize = %d, want 40", len(m.cells[0]))
	}
}

func TestExploreView(t *testing.T) {
	m := sized(t, 60, 30)
	view := m.View()
	for _, want := range []string{"Video Game Sales", "Top 100", "Wii", "NES", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Categoty") {
		t.Error("tooltip drawn while hidden")
	}

	m = motion(m, 0, headerRows)
	if !strings.Contains(m.View(), "Categoty: Wii") {
		t.Error("tooltip not drawn while hovering")
	}
}

func TestExploreQuit(t *testing.T) {
	m := sized(t, 60, 30)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Errorf("%s: no command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not quit", key)
		}
	}
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"Wii", 5, "Wii  "},
		{"Wii Sports", 5, "Wii …"},
		{"Wii", 1, "…"},
		{"Wii", 0, ""},
		{"Pokémon", 7, "Pokémon"},
	}
	for _, tt := range tests {
		if got := fitLabel(tt.s, tt.width); got != tt.want {
			t.Errorf("fitLabel(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
