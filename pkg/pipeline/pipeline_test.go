package pipeline

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/config"
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

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"html", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"treemap", false},
		{"nodelink", false},
		{"sunburst", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"html", []string{"html"}},
		{"svg, JSON ,svg", []string{"svg", "json"}},
		{" , ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if o.Source != dataset.DefaultURL {
		t.Errorf("Source = %q, want default URL", o.Source)
	}
	if o.VizType != VizTypeTreemap || !o.IsTreemap() || o.IsNodelink() {
		t.Errorf("VizType = %q", o.VizType)
	}
	if !reflect.DeepEqual(o.Formats, []string{FormatHTML}) {
		t.Errorf("Formats = %v, want [html]", o.Formats)
	}
	if o.Scale != DefaultScale || o.Logger == nil || o.Config == nil {
		t.Errorf("defaults missing: %+v", o)
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif format error = %v, want INVALID_FORMAT", err)
	}

	cfg := config.Default()
	cfg.Treemap.Tiling = "spiral"
	bad = Options{Config: cfg}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad tiling error = %v, want INVALID_CONFIG", err)
	}
}

func TestSupports(t *testing.T) {
	tm := Options{VizType: VizTypeTreemap}
	nl := Options{VizType: VizTypeNodelink}
	for _, f := range []string{"html", "svg", "json", "pdf", "png"} {
		if !tm.Supports(f) {
			t.Errorf("treemap should support %s", f)
		}
	}
	if nl.Supports("html") || nl.Supports("json") || !nl.Supports("svg") {
		t.Error("nodelink supports svg, pdf and png only")
	}
}

// recorder captures pipeline hook calls.
type recorder struct {
	observability.NoopPipelineHooks
	events  []string
	loadErr error
	leaves  int
}

func (r *recorder) OnLoadStart(context.Context, string) { r.events = append(r.events, "load") }
func (r *recorder) OnLoadComplete(_ context.Context, _ string, leaves int, _ time.Duration, err error) {
	r.events = append(r.events, "loaded")
	r.leaves, r.loadErr = leaves, err
}
func (r *recorder) OnLayoutStart(context.Context, string, int) { r.events = append(r.events, "layout") }
func (r *recorder) OnRenderStart(context.Context, []string)    { r.events = append(r.events, "render") }

func withRecorder(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)
	return rec
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRunner(stdin string) *Runner {
	loader := dataset.NewLoader(nil)
	loader.Stdin = strings.NewReader(stdin)
	return NewRunner(loader, log.New(io.Discard))
}

func TestExecute(t *testing.T) {
	rec := withRecorder(t)
	srv := serve(t, http.StatusOK, sales)

	result, err := newTestRunner("").Execute(context.Background(), Options{
		Source:   srv.URL,
		Formats:  []string{FormatHTML, FormatSVG, FormatJSON},
		RenderID: "run-1",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.LeafCount != 5 || result.Stats.CategoryCount != 3 {
		t.Errorf("stats = %+v, want 5 leaves / 3 categories", result.Stats)
	}
	for _, f := range []string{FormatHTML, FormatSVG, FormatJSON} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatHTML]), `data-render-id="run-1"`) {
		t.Error("HTML missing render id")
	}
	if got := result.Document.Tiles[0].Name; got != "Wii Sports" {
		t.Errorf("tile-0 = %q, want Wii Sports", got)
	}
	if got := strings.Join(result.Document.Categories(), ","); got != "Wii,NES,GB" {
		t.Errorf("legend = %s, want input order Wii,NES,GB", got)
	}
	if want := []string{"load", "loaded", "layout", "render"}; !reflect.DeepEqual(rec.events, want) {
		t.Errorf("hook events = %v, want %v", rec.events, want)
	}
	if rec.leaves != 5 || rec.loadErr != nil {
		t.Errorf("OnLoadComplete(leaves=%d, err=%v)", rec.leaves, rec.loadErr)
	}
}

func TestExecuteFatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   errors.Code
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`, errors.ErrCodeLoad},
		{"not json", http.StatusOK, `<html>`, errors.ErrCodeLoad},
		{"mixed node", http.StatusOK, `{"name": "r", "children": [{"name": "x", "category": "c", "value": 1, "children": []}]}`, errors.ErrCodeMalformedTree},
		{"missing category", http.StatusOK, `{"name": "r", "children": [{"name": "x", "value": 1}]}`, errors.ErrCodeMalformedTree},
		{"zero total", http.StatusOK, `{"name": "r", "children": [{"name": "x", "category": "c", "value": 0}]}`, errors.ErrCodeEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := withRecorder(t)
			srv := serve(t, tt.status, tt.body)

			result, err := newTestRunner("").Execute(context.Background(), Options{Source: srv.URL})
			if !errors.Is(err, tt.code) {
				t.Fatalf("Execute() error = %v, want %s", err, tt.code)
			}
			if !errors.IsFatal(err) {
				t.Errorf("IsFatal(%v) = false", err)
			}
			if result != nil {
				t.Error("Execute() returned a result on failure")
			}
			for _, e := range rec.events {
				if e == "render" {
					t.Error("render started after a fatal error")
				}
			}
		})
	}
}

func TestExecuteResponseErrorBody(t *testing.T) {
	srv := serve(t, http.StatusNotFound, `{"message": "no such dataset"}`)

	_, err := newTestRunner("").Execute(context.Background(), Options{Source: srv.URL})
	var re *dataset.ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("Execute() error = %v, want a ResponseError", err)
	}
	if re.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", re.StatusCode)
	}
	body, ok := re.Body.(map[string]any)
	if !ok || body["message"] != "no such dataset" {
		t.Errorf("Body = %#v", re.Body)
	}
}

func TestExecuteFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.json")
	if err := os.WriteFile(path, []byte(sales), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, source := range []string{path, "-"} {
		result, err := newTestRunner(sales).Execute(context.Background(), Options{
			Source:  source,
			Formats: []string{FormatJSON},
		})
		if err != nil {
			t.Fatalf("Execute(%s) error: %v", source, err)
		}
		if result.Stats.LeafCount != 5 {
			t.Errorf("Execute(%s) leaves = %d, want 5", source, result.Stats.LeafCount)
		}
	}
}

func TestExecuteConfig(t *testing.T) {
	srv := serve(t, http.StatusOK, sales)
	cfg := config.Default()
	cfg.Title = "Best Sellers"
	cfg.Treemap.Tiling = "slice-dice"
	cfg.Treemap.Width, cfg.Treemap.Height = 500, 300

	result, err := newTestRunner("").Execute(context.Background(), Options{
		Source:  srv.URL,
		Config:  cfg,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	d := result.Document
	if d.Title != "Best Sellers" || d.Tiling != "slice-dice" {
		t.Errorf("document = %q/%q", d.Title, d.Tiling)
	}
	if d.Width != 500 || d.Height != 300 || d.PlotWidth != 460 || d.PlotHeight != 260 {
		t.Errorf("sizes = %gx%g plot %gx%g", d.Width, d.Height, d.PlotWidth, d.PlotHeight)
	}
}

func TestExecuteNodelinkSkipsFormats(t *testing.T) {
	srv := serve(t, http.StatusOK, sales)

	result, err := newTestRunner("").Execute(context.Background(), Options{
		Source:  srv.URL,
		VizType: VizTypeNodelink,
		Formats: []string{FormatSVG, FormatJSON, FormatHTML},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !reflect.DeepEqual(result.Skipped, []string{FormatJSON, FormatHTML}) {
		t.Errorf("Skipped = %v, want [json html]", result.Skipped)
	}
	if result.Document != nil {
		t.Error("nodelink pass built a treemap document")
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("nodelink SVG missing")
	}
}
