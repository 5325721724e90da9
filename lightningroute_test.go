package lightningroute

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/brunobiangulo/lightningroute/graph"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
	user    string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.user = userPrompt
	return f.content, f.err
}

const topicResponse = `[{"id":"root","title":"Topic","children":[{"id":"c1","title":"Sub A","children":[]},{"id":"c2","title":"Sub B","children":[]}]}]`

func newTestEngine(t *testing.T, fc *fakeCompleter) Engine {
	t.Helper()
	eng, err := New(DefaultConfig(), WithCompleter(fc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func TestGenerateMap(t *testing.T) {
	fc := &fakeCompleter{content: topicResponse}
	g, err := newTestEngine(t, fc).GenerateMap(context.Background(), "Topic with two parts.")
	if err != nil {
		t.Fatalf("GenerateMap: %v", err)
	}
	want := &graph.Graph{
		Nodes: []graph.Node{{ID: "root", Label: "Topic"}, {ID: "c1", Label: "Sub A"}, {ID: "c2", Label: "Sub B"}},
		Edges: []graph.Edge{{From: "root", To: "c1"}, {From: "root", To: "c2"}},
	}
	if !reflect.DeepEqual(g, want) {
		t.Errorf("graph = %+v, want %+v", g, want)
	}
}

func TestGenerateMapErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		fc   *fakeCompleter
		want error
	}{
		{"blank", "  ", &fakeCompleter{content: topicResponse}, ErrInvalidInput},
		{"upstream", "text", &fakeCompleter{err: errors.New("timeout")}, ErrUpstreamRequest},
		{"malformed", "text", &fakeCompleter{content: "no json here"}, ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := newTestEngine(t, tt.fc).GenerateMap(context.Background(), tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if g != nil {
				t.Errorf("partial graph returned: %+v", g)
			}
		})
	}
}

func TestGenerateMapMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := eng.GenerateMap(context.Background(), "text"); !errors.Is(err, ErrUpstreamAuth) {
		t.Fatalf("err = %v, want ErrUpstreamAuth", err)
	}
}

func TestGenerateMapFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# Topic\nSub A and Sub B.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc := &fakeCompleter{content: topicResponse}
	g, err := newTestEngine(t, fc).GenerateMapFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("GenerateMapFromFile: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %+v", g.Nodes)
	}
	if !strings.Contains(fc.user, "Sub A and Sub B.") {
		t.Errorf("document text not sent to the model: %q", fc.user)
	}
}

func TestGenerateMapFromFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slides.pptx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc := &fakeCompleter{content: topicResponse}
	if _, err := newTestEngine(t, fc).GenerateMapFromFile(context.Background(), path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if fc.calls != 0 {
		t.Errorf("model called %d times", fc.calls)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chat.Provider = ""
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Chat.Provider = "nope"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFormatsWithVision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vision = cfg.Chat
	eng, err := New(cfg, WithCompleter(&fakeCompleter{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	formats := strings.Join(eng.Formats(), ",")
	if !strings.Contains(formats, "png") || !strings.Contains(formats, "pdf") {
		t.Errorf("Formats = %s", formats)
	}
}

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("  Sub A and Sub B.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc := &fakeCompleter{}
	text, err := newTestEngine(t, fc).ExtractText(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Sub A and Sub B.") {
		t.Errorf("text = %q", text)
	}
	if fc.calls != 0 {
		t.Errorf("model called %d times", fc.calls)
	}
}
