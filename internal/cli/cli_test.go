package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
)

const sales = `{"name": "Video Game Sales Data Top 100", "children": [
  {"name": "Wii", "children": [
    {"name": "Wii Sports", "category": "Wii", "value": "82.53"},
    {"name": "Mario Kart Wii", "category": "Wii", "value": "35.52"}
  ]},
  {"name": "NES", "children": [
    {"name": "Super Mario Bros.", "category": "NES", "value": "40.24"}
  ]},
  {"name": "GB", "children": [
    {"name": "Pokemon Red/Pokemon Blue", "category": "GB", "value": "31.37"},
    {"name": "Tetris", "category": "GB", "value": "30.26"}
  ]}
]}`

// runCLI executes the root command with stdin as the "-" source and
// returns what it wrote to stdout and to the log.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var out, logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	c.Loader = dataset.NewLoader(nil)
	c.Loader.Stdin = strings.NewReader(stdin)

	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderWritesFormatsNextToSource(t *testing.T) {
	path := writeDataset(t, sales)
	out, _, err := runCLI(t, "", "render", path, "-f", "svg,json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if string(src) != sales {
		t.Errorf("source dataset was overwritten:\n%s", src)
	}

	base := strings.TrimSuffix(path, ".json")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte(`id="tree-map"`)) {
		t.Error("svg missing tree-map group")
	}
	if _, err := os.Stat(base + ".layout.json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
	if !strings.Contains(out, "5 leaves") || !strings.Contains(out, "3 categories") {
		t.Errorf("stats line missing from output:\n%s", out)
	}
}

func TestRenderStdinToStdout(t *testing.T) {
	out, _, err := runCLI(t, sales, "render", "-", "-f", "json", "-o", "-", "--width", "500", "--height", "300", "--title", "Sales")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		Title      string  `json:"title"`
		PlotWidth  float64 `json:"plot_width"`
		PlotHeight float64 `json:"plot_height"`
		Tiles      []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"tiles"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not the JSON document: %v\n%s", err, out)
	}
	if doc.Title != "Sales" {
		t.Errorf("title = %q, want Sales", doc.Title)
	}
	if doc.PlotWidth != 460 || doc.PlotHeight != 260 {
		t.Errorf("plot = %vx%v, want 460x260", doc.PlotWidth, doc.PlotHeight)
	}
	if len(doc.Tiles) != 5 || doc.Tiles[0].Name != "Wii Sports" || doc.Tiles[0].ID != "tile-0" {
		t.Errorf("tiles = %+v", doc.Tiles)
	}
}

func TestRenderFatalErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		code  errors.Code
	}{
		{"malformed", `{"name": "root", "children": [{"name": "x", "value": "1", "children": []}]}`, errors.ErrCodeMalformedTree},
		{"empty", `{"name": "root", "children": []}`, errors.ErrCodeEmptyDataset},
		{"not json", `<html>`, errors.ErrCodeLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.stdin, "render", "-", "-f", "json", "-o", "-")
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if out != "" {
				t.Errorf("nothing should be written, got %q", out)
			}
		})
	}
}

func TestRenderInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"format", []string{"render", "-", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"tiling", []string{"render", "-", "--tiling", "spiral"}, errors.ErrCodeInvalidConfig},
		{"width", []string{"render", "-", "--width", "30"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, sales, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestRenderNodelinkSkipsPageFormats(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, sales, "render", "-", "-t", "nodelink", "-f", "json", "-o", filepath.Join(dir, "tree"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "json output is not available for nodelink") {
		t.Errorf("missing skip warning:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "tree.json")); !os.IsNotExist(err) {
		t.Error("skipped format should not be written")
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		source  string
		formats []string
		want    []outputTarget
	}{
		{"single explicit", "page.html", "data.json", []string{"html"}, []outputTarget{{"html", "page.html"}}},
		{"single stdout", "-", "data.json", []string{"json"}, []outputTarget{{"json", ""}}},
		{"from file source", "", "dir/data.json", []string{"svg", "png"}, []outputTarget{{"svg", "dir/data.svg"}, {"png", "dir/data.png"}}},
		{"json beside json source", "", "dir/data.json", []string{"svg", "json"}, []outputTarget{{"svg", "dir/data.svg"}, {"json", "dir/data.layout.json"}}},
		{"single json from json source", "", "./dir/data.json", []string{"json"}, []outputTarget{{"json", "./dir/data.layout.json"}}},
		{"explicit base matching source", "dir/data.json", "dir/data.json", []string{"svg", "json"}, []outputTarget{{"svg", "dir/data.svg"}, {"json", "dir/data.layout.json"}}},
		{"from url", "", dataset.DefaultURL, []string{"html"}, []outputTarget{{"html", "treemap.html"}}},
		{"from stdin", "", "-", []string{"svg"}, []outputTarget{{"svg", "treemap.svg"}}},
		{"strips format ext", "out/page.svg", "data.json", []string{"svg", "json"}, []outputTarget{{"svg", "out/page.svg"}, {"json", "out/page.json"}}},
		{"keeps other ext", "out/page.v2", "data.json", []string{"svg", "json"}, []outputTarget{{"svg", "out/page.v2.svg"}, {"json", "out/page.v2.json"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.source, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "config", "--width", "1200", "--tiling", "dice")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{`tiling = "dice"`, "width = 1200", "[legend]", "columns = 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treemap.toml")
	if err := os.WriteFile(path, []byte("title = \"From File\"\n[legend]\ncolumns = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "", "config", "--config", path, "--columns", "2")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, `title = "From File"`) {
		t.Errorf("file value lost:\n%s", out)
	}
	if !strings.Contains(out, "columns = 2") {
		t.Errorf("flag should override file:\n%s", out)
	}

	if err := os.WriteFile(path, []byte("colour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, "", "config", "--config", path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown key: err = %v, want INVALID_CONFIG", err)
	}
}

func TestStatsCommand(t *testing.T) {
	out, _, err := runCLI(t, sales, "stats", "-")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Category", "Wii", "NES", "GB", "40.24", "%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	// Legend order follows the input, not the sorted tiles.
	if strings.Index(out, "NES") > strings.Index(out, "GB") {
		t.Errorf("categories out of input order:\n%s", out)
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)

	c.ReportError(errors.Wrap(errors.ErrCodeLoad, os.ErrNotExist, "missing.json"))
	got := buf.String()
	if strings.Count(got, "\n") != 1 || !strings.Contains(got, "ERRO") {
		t.Errorf("want exactly one error line, got:\n%s", got)
	}
	for _, want := range []string{"missing.json", "code=LOAD_ERROR", "fatal=true"} {
		if !strings.Contains(got, want) {
			t.Errorf("log missing %q:\n%s", want, got)
		}
	}

	buf.Reset()
	c.ReportError(os.ErrPermission)
	if !strings.Contains(buf.String(), "permission denied") || strings.Contains(buf.String(), "code=") {
		t.Errorf("plain error logged as %q", buf.String())
	}
}

func TestVerboseHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnLoadStart(ctx, "sales.json")
	h.OnLoadComplete(ctx, "sales.json", 5, 0, nil)
	h.OnLayoutStart(ctx, "squarify", 5)
	h.OnRequest(ctx, "GET", "cdn.example", "/data.json")

	got := buf.String()
	for _, want := range []string{"loading dataset", "leaves=5", "tiling=squarify", "host=cdn.example"} {
		if !strings.Contains(got, want) {
			t.Errorf("debug log missing %q:\n%s", want, got)
		}
	}

	buf.Reset()
	quiet := logHooks{newLogger(&buf, log.InfoLevel)}
	quiet.OnLoadStart(ctx, "sales.json")
	if buf.Len() != 0 {
		t.Errorf("hooks should be silent at info level, got %q", buf.String())
	}
}
