package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brunobiangulo/lightningroute/llm"
)

// SystemPrompt is the fixed instruction sent with every extraction.
const SystemPrompt = "You are a knowledgeable assistant that helps extract and organize " +
	"information into hierarchical structures."

// userPromptTemplate embeds the raw text verbatim. The audience hint slot is
// empty unless an audience was configured.
const userPromptTemplate = `Extract key knowledge points from the following text and organize them into a hierarchical structure.
Format the output as a JSON array with nodes having 'id', 'title', and 'children' fields.
Every id must be a string that is unique across the whole output. 'children' is an array of nodes of the same shape.
Return only the JSON array.
%s
Text: %s`

// Audience levels accepted by WithAudience.
const (
	AudienceBeginner    = "beginner"
	AudienceExperienced = "experienced"
)

var audienceHints = map[string]string{
	AudienceBeginner:    "The reader is new to the subject: prefer a shallow hierarchy with plain-language titles.\n",
	AudienceExperienced: "The reader already knows the basics: go deeper and keep technical terms.\n",
}

// Completer is the narrow view of a language model the extractor needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithAudience adds a reader-level hint to the prompt. Unknown levels are ignored.
func WithAudience(level string) Option {
	return func(e *Extractor) { e.audience = level }
}

// WithLogger sets the logger used for extraction events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// Extractor turns text into a validated forest of knowledge points through
// one completion call. It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	llm      Completer
	audience string
	log      *slog.Logger
}

// NewExtractor creates an extractor backed by c.
func NewExtractor(c Completer, opts ...Option) *Extractor {
	e := &Extractor{llm: c, log: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// UserPrompt renders the user message for text.
func (e *Extractor) UserPrompt(text string) string {
	return fmt.Sprintf(userPromptTemplate, audienceHints[e.audience], text)
}

// Extract asks the model for the hierarchy of text. Errors wrap one of
// ErrInvalidInput, ErrUpstreamAuth, ErrUpstreamRequest or ErrMalformedResponse.
func (e *Extractor) Extract(ctx context.Context, text string) ([]Point, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	start := time.Now()
	content, err := e.llm.Complete(ctx, SystemPrompt, e.UserPrompt(text))
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamAuth, err)
		}
		e.log.Warn("knowledge: completion failed",
			"error", err, "elapsed", time.Since(start).Round(time.Millisecond))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamRequest, err)
	}

	points, err := Parse(content)
	if err != nil {
		e.log.Warn("knowledge: rejected model output",
			"error", err, "content_bytes", len(content))
		return nil, err
	}

	e.log.Info("knowledge: extracted",
		"roots", len(points),
		"points", Count(points),
		"text_bytes", len(text),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return points, nil
}
