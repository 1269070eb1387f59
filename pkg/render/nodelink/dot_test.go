package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/treemap/colors"
)

func testTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	raw, err := dataset.ReadJSON(strings.NewReader(`{"name": "root", "children": [
	  {"name": "A", "children": [{"name": "x", "category": "A", "value": 10}]},
	  {"name": "B", "children": [{"name": "y", "category": "B", "value": "30"}]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := hierarchy.Build(raw)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestToDOT_Basic(t *testing.T) {
	tree := testTree(t)
	dot := ToDOT(tree, colors.NewRegistry(nil), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, label := range []string{`label="root"`, `label="A"`, `label="B"`, `label="x"`, `label="y"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("ToDOT() output missing %s", label)
		}
	}
	if n := strings.Count(dot, "->"); n != tree.Len()-1 {
		t.Errorf("edge count = %d, want %d", n, tree.Len()-1)
	}
	if !strings.Contains(dot, "n0 -> ") {
		t.Error("ToDOT() output missing root edges")
	}
}

func TestToDOT_Colors(t *testing.T) {
	tree := testTree(t)
	reg := colors.NewRegistry(nil)
	dot := ToDOT(tree, reg, Options{})

	// B has the larger value, so it is visited first and binds slot 0.
	if got := reg.Hex("B"); got != colors.Category10[0] {
		t.Errorf("B = %s, want %s", got, colors.Category10[0])
	}
	if !strings.Contains(dot, `fillcolor="`+colors.Category10[0]+`"`) {
		t.Error("group fill missing from DOT")
	}
	if !strings.Contains(dot, "shape=ellipse") {
		t.Error("root should be an ellipse")
	}
}

func TestToDOT_DetailedAndDepth(t *testing.T) {
	tree := testTree(t)

	dot := ToDOT(tree, colors.NewRegistry(nil), Options{Detailed: true})
	if !strings.Contains(dot, `label="y\n30 (75.0%)"`) {
		t.Errorf("detailed label for y missing:\n%s", dot)
	}

	dot = ToDOT(tree, colors.NewRegistry(nil), Options{MaxDepth: 1})
	if strings.Contains(dot, `label="x"`) {
		t.Error("MaxDepth 1 kept a leaf")
	}
	if n := strings.Count(dot, "->"); n != 2 {
		t.Errorf("edge count = %d, want 2", n)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}
	if got := string(normalizeViewBox([]byte("<svg/>"))); got != "<svg/>" {
		t.Errorf("normalizeViewBox(no viewBox) = %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(testTree(t), colors.NewRegistry(nil), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Error("RenderSVG() output missing normalized root element")
	}
	if !strings.Contains(string(svg), ">root<") {
		t.Error("RenderSVG() output missing root label")
	}
}
