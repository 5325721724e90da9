package dirtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brunobiangulo/lightningroute/graph"
)

func isDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func TestMaterialize(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "root", Label: "Topic"},
			{ID: "c1", Label: "Sub A"},
			{ID: "c2", Label: "Sub B"},
			{ID: "c3", Label: "Deeper"},
		},
		Edges: []graph.Edge{
			{From: "root", To: "c1"},
			{From: "root", To: "c2"},
			{From: "c1", To: "c3"},
		},
	}
	base := t.TempDir()

	roots, err := Materialize(g, base)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(roots) != 1 || roots[0] != filepath.Join(base, "Topic") {
		t.Fatalf("roots = %v", roots)
	}
	isDir(t, filepath.Join(base, "Topic", "Sub A", "Deeper"))
	isDir(t, filepath.Join(base, "Topic", "Sub B"))
}

func TestMaterializeStaysInsideBase(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "r", Label: "../../escape"},
			{ID: "a", Label: ".."},
			{ID: "b", Label: "a/b\\c"},
		},
		Edges: []graph.Edge{{From: "r", To: "a"}, {From: "r", To: "b"}},
	}
	base := t.TempDir()

	roots, err := Materialize(g, base)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	root := filepath.Join(base, "_.._escape")
	if roots[0] != root {
		t.Fatalf("root = %q, want %q", roots[0], root)
	}
	isDir(t, filepath.Join(root, "a"))
	isDir(t, filepath.Join(root, "a_b_c"))
}

func TestMaterializeSiblingClash(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "r", Label: "Root"},
			{ID: "x1", Label: "Notes"},
			{ID: "x2", Label: "notes"},
		},
		Edges: []graph.Edge{{From: "r", To: "x1"}, {From: "r", To: "x2"}},
	}
	base := t.TempDir()

	if _, err := Materialize(g, base); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	isDir(t, filepath.Join(base, "Root", "Notes"))
	isDir(t, filepath.Join(base, "Root", "notes-x2"))
}

func TestMaterializeCycle(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "r", Label: "R"}, {ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
		Edges: []graph.Edge{{From: "r", To: "a"}, {From: "a", To: "b"}, {From: "b", To: "a"}},
	}
	base := t.TempDir()

	if _, err := Materialize(g, base); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	isDir(t, filepath.Join(base, "R", "A", "B"))
	if _, err := os.Stat(filepath.Join(base, "R", "A", "B", "A")); !os.IsNotExist(err) {
		t.Errorf("cycle was followed: %v", err)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cell Biology", "Cell Biology"},
		{"  padded  ", "padded"},
		{"a:b*c?", "a_b_c_"},
		{".", ""},
		{"..", ""},
		{"...hidden", "hidden"},
		{"tab\there", "tabhere"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
