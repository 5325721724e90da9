package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brunobiangulo/lightningroute/llm"
)

// Registry maps lowercase file extensions (without the dot) to parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns a registry with the built-in text, PDF, DOCX and XLSX parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	for _, p := range []Parser{&TextParser{}, &PDFParser{}, &DOCXParser{}, &XLSXParser{}} {
		for _, f := range p.SupportedFormats() {
			r.parsers[f] = p
		}
	}
	return r
}

// SetVision enables image uploads, transcribed by the given vision model.
func (r *Registry) SetVision(provider llm.VisionProvider, model string) {
	ip := NewImageParser(provider, model)
	for _, f := range ip.SupportedFormats() {
		r.parsers[f] = ip
	}
}

func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return p, nil
}

func (r *Registry) Register(format string, p Parser) {
	r.parsers[strings.ToLower(format)] = p
}

// Formats lists the registered formats in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for f := range r.parsers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ParseFile picks a parser from the file extension and returns the
// document's text. A document without text fails with ErrNoText.
func (r *Registry) ParseFile(ctx context.Context, path string) (string, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	p, err := r.Get(format)
	if err != nil {
		return "", err
	}
	res, err := p.Parse(ctx, path)
	if err != nil {
		return "", err
	}
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, filepath.Base(path))
	}
	return text, nil
}
