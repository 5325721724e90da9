// Package dirtree mirrors a mind map on disk as nested directories, one per
// node, so a study outline can become a folder skeleton.
package dirtree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brunobiangulo/lightningroute/graph"
)

// maxNameLen keeps generated names well under common filesystem limits.
const maxNameLen = 120

// reserved characters are replaced with '_' in directory names.
const reserved = `/\:*?"<>|`

// Materialize creates the directory tree of g under base and returns the
// paths of the root directories. Cycles in malformed graphs are cut at the
// first revisit.
func Materialize(g *graph.Graph, base string) ([]string, error) {
	labels := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}
	if err := os.MkdirAll(absBase, 0o755); err != nil {
		return nil, fmt.Errorf("creating base directory: %w", err)
	}

	m := &materializer{g: g, labels: labels, visited: make(map[string]bool)}
	rootNames := newNamer()

	var roots []string
	for _, id := range g.Roots() {
		path := filepath.Join(absBase, rootNames.name(id, labels[id]))
		if err := m.create(id, path); err != nil {
			return roots, err
		}
		roots = append(roots, path)
	}
	return roots, nil
}

type materializer struct {
	g       *graph.Graph
	labels  map[string]string
	visited map[string]bool
}

func (m *materializer) create(id, path string) error {
	if m.visited[id] {
		return nil
	}
	m.visited[id] = true

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	names := newNamer()
	for _, child := range m.g.Children(id) {
		if m.visited[child] {
			continue
		}
		if err := m.create(child, filepath.Join(path, names.name(child, m.labels[child]))); err != nil {
			return err
		}
	}
	return nil
}

// namer hands out unique directory names among siblings.
type namer struct {
	used map[string]bool
}

func newNamer() *namer {
	return &namer{used: make(map[string]bool)}
}

func (n *namer) name(id, label string) string {
	name := SanitizeName(label)
	if name == "" {
		name = SanitizeName(id)
	}
	if name == "" {
		name = "node"
	}
	if n.used[strings.ToLower(name)] {
		suffix := SanitizeName(id)
		if suffix == "" {
			suffix = "node"
		}
		base := name + "-" + suffix
		name = base
		for i := 2; n.used[strings.ToLower(name)]; i++ {
			name = fmt.Sprintf("%s-%d", base, i)
		}
	}
	n.used[strings.ToLower(name)] = true
	return name
}

// SanitizeName turns a label into a single safe path element. It returns
// "" when nothing usable is left.
func SanitizeName(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r < 0x20 || r == 0x7f:
			continue
		case strings.ContainsRune(reserved, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	name := strings.Trim(strings.TrimSpace(b.String()), ". ")
	if rs := []rune(name); len(rs) > maxNameLen {
		name = strings.TrimSpace(string(rs[:maxNameLen]))
	}
	return name
}
