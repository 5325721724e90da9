package llm

import (
	"context"
	"errors"
	"fmt"
)

// DefaultModel is used when neither the Config nor the request names a model.
const DefaultModel = "gpt-4o"

var (
	// ErrMissingAPIKey is returned before any network I/O when a hosted
	// provider is configured without an API key.
	ErrMissingAPIKey = errors.New("llm: api key not configured")

	// ErrEmptyResponse is returned when the completion carries no choices.
	ErrEmptyResponse = errors.New("llm: no choices in response")
)

// StatusError reports a non-200 answer from the completion endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: API error %d: %s", e.Code, e.Body)
}

// Provider is the interface for LLM interactions.
type Provider interface {
	// Chat sends a chat completion request.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// VisionProvider extends Provider with image understanding.
type VisionProvider interface {
	Provider
	// ChatWithImages sends a chat request that includes images.
	ChatWithImages(ctx context.Context, req VisionChatRequest) (*ChatResponse, error)
}

// ChatRequest is a chat completion request.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// VisionChatRequest is a chat request with image content.
type VisionChatRequest struct {
	Model     string          `json:"model"`
	Messages  []VisionMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// VisionMessage represents a chat message that may contain images.
type VisionMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart is either text or an image in a vision message.
type ContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL contains a base64 data URL or a remote URL of an image.
type ImageURL struct {
	URL string `json:"url"`
}

// ChatResponse is the response from a chat completion.
type ChatResponse struct {
	Content          string `json:"content"`
	Model            string `json:"model"`
	FinishReason     string `json:"finish_reason"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
}

// Config configures an LLM provider.
type Config struct {
	Provider string `json:"provider" yaml:"provider"` // openai, openrouter, groq, xai, gemini, ollama, lmstudio, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`

	// TimeoutSeconds bounds a single HTTP round trip; 0 means 120s.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// endpoint describes the defaults of one OpenAI-compatible service.
type endpoint struct {
	baseURL    string
	pathPrefix string
	model      string
	requireKey bool
}

var endpoints = map[string]endpoint{
	"openai":     {baseURL: "https://api.openai.com", pathPrefix: "/v1", model: DefaultModel, requireKey: true},
	"openrouter": {baseURL: "https://openrouter.ai/api", pathPrefix: "/v1", model: "openai/gpt-4o", requireKey: true},
	"groq":       {baseURL: "https://api.groq.com/openai", pathPrefix: "/v1", model: "llama-3.3-70b-versatile", requireKey: true},
	"xai":        {baseURL: "https://api.x.ai", pathPrefix: "/v1", model: "grok-3-mini", requireKey: true},
	// Gemini's OpenAI-compatible surface has no /v1 segment.
	"gemini":   {baseURL: "https://generativelanguage.googleapis.com/v1beta/openai", model: "gemini-2.5-flash", requireKey: true},
	"ollama":   {baseURL: "http://localhost:11434", pathPrefix: "/v1", model: "llama3.1:8b"},
	"lmstudio": {baseURL: "http://localhost:1234", pathPrefix: "/v1"},
	"custom":   {pathPrefix: "/v1"},
}

// NewProvider creates an LLM provider from configuration. Every supported
// service speaks the OpenAI chat-completions protocol; they differ only in
// defaults and in whether an API key is mandatory.
func NewProvider(cfg Config) (VisionProvider, error) {
	if cfg.Provider == "" {
		return nil, fmt.Errorf("llm provider not specified")
	}
	ep, ok := endpoints[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = ep.baseURL
	}
	if cfg.Model == "" {
		cfg.Model = ep.model
	}
	return &compatProvider{
		name: cfg.Provider,
		base: newOpenAICompatClient(cfg, ep.pathPrefix, ep.requireKey),
	}, nil
}

// compatProvider is the single Provider implementation; name is kept for logs.
type compatProvider struct {
	name string
	base openAICompatClient
}

func (p *compatProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return p.base.chat(ctx, req)
}

func (p *compatProvider) ChatWithImages(ctx context.Context, req VisionChatRequest) (*ChatResponse, error) {
	return p.base.chatWithImages(ctx, req)
}
