// Package lightningroute turns free-form text into mind maps: a language
// model decomposes the text into knowledge points and the resulting forest is
// flattened into nodes and edges.
package lightningroute

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brunobiangulo/lightningroute/graph"
	"github.com/brunobiangulo/lightningroute/knowledge"
	"github.com/brunobiangulo/lightningroute/llm"
	"github.com/brunobiangulo/lightningroute/parser"
)

// Engine is the main entry point of the text-to-graph pipeline.
type Engine interface {
	// GenerateMap extracts the knowledge hierarchy of text and flattens it.
	GenerateMap(ctx context.Context, text string) (*graph.Graph, error)

	// GenerateMapFromFile extracts the text of a document first.
	GenerateMapFromFile(ctx context.Context, path string) (*graph.Graph, error)

	// ExtractText returns the text of a document without calling the model.
	ExtractText(ctx context.Context, path string) (string, error)

	// Formats lists the document formats accepted by the file entry points.
	Formats() []string
}

// Option configures New.
type Option func(*options)

type options struct {
	completer knowledge.Completer
	logger    *slog.Logger
}

// WithCompleter replaces the configured language model client.
func WithCompleter(c knowledge.Completer) Option {
	return func(o *options) { o.completer = c }
}

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// engine is the concrete implementation of Engine.
type engine struct {
	extractor *knowledge.Extractor
	builder   *graph.Builder
	parsers   *parser.Registry
	log       *slog.Logger
}

// New wires an Engine from configuration.
func New(cfg Config, opts ...Option) (Engine, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := parser.NewRegistry()

	completer := o.completer
	if completer == nil {
		chat, err := llm.NewProvider(cfg.Chat)
		if err != nil {
			return nil, fmt.Errorf("creating chat provider: %w", err)
		}
		completer = llm.NewCompleter(chat, cfg.Chat.Model, cfg.Temperature)
	}

	if cfg.Vision.Provider != "" {
		vision, err := llm.NewProvider(cfg.Vision)
		if err != nil {
			return nil, fmt.Errorf("creating vision provider: %w", err)
		}
		reg.SetVision(vision, cfg.Vision.Model)
	}

	return &engine{
		extractor: knowledge.NewExtractor(completer,
			knowledge.WithAudience(cfg.Audience),
			knowledge.WithLogger(o.logger)),
		builder: graph.NewBuilder(),
		parsers: reg,
		log:     o.logger,
	}, nil
}

func (e *engine) GenerateMap(ctx context.Context, text string) (*graph.Graph, error) {
	points, err := e.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	return e.builder.Build(points), nil
}

func (e *engine) GenerateMapFromFile(ctx context.Context, path string) (*graph.Graph, error) {
	text, err := e.ExtractText(ctx, path)
	if err != nil {
		return nil, err
	}
	return e.GenerateMap(ctx, text)
}

func (e *engine) ExtractText(ctx context.Context, path string) (string, error) {
	text, err := e.parsers.ParseFile(ctx, path)
	if err != nil {
		return "", err
	}
	e.log.Debug("lightningroute: document parsed", "path", path, "text_bytes", len(text))
	return text, nil
}

func (e *engine) Formats() []string {
	return e.parsers.Formats()
}
