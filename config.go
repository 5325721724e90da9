package lightningroute

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brunobiangulo/lightningroute/knowledge"
	"github.com/brunobiangulo/lightningroute/llm"
)

// Config holds all configuration for the LightningRoute engine and server.
type Config struct {
	// LLM providers. Vision is optional and enables image uploads.
	Chat   llm.Config `json:"chat" yaml:"chat"`
	Vision llm.Config `json:"vision" yaml:"vision"`

	// Temperature of the extraction call.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Audience tunes the decomposition depth: "", "beginner" or "experienced".
	Audience string `json:"audience" yaml:"audience"`

	// HTTP server
	Addr                  string `json:"addr" yaml:"addr"`
	RequestTimeoutSeconds int    `json:"request_timeout" yaml:"request_timeout"`
	MaxUploadBytes        int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	CORSOrigins           string `json:"cors_origins" yaml:"cors_origins"` // comma separated, "*" when empty
	APIKey                string `json:"api_key" yaml:"api_key"`           // optional bearer token protecting /api
}

// DefaultConfig returns a Config targeting the hosted OpenAI endpoint.
func DefaultConfig() Config {
	return Config{
		Chat: llm.Config{
			Provider: "openai",
			Model:    llm.DefaultModel,
		},
		Temperature:           0.2,
		Addr:                  ":8000",
		RequestTimeoutSeconds: 120,
		MaxUploadBytes:        20 << 20,
	}
}

// RequestTimeout returns the per-request deadline of the HTTP layer.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Chat.Provider == "":
		return fmt.Errorf("%w: chat.provider is required", ErrInvalidConfig)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("%w: temperature %v out of range [0, 2]", ErrInvalidConfig, c.Temperature)
	case c.RequestTimeoutSeconds < 0:
		return fmt.Errorf("%w: request_timeout must not be negative", ErrInvalidConfig)
	case c.MaxUploadBytes < 0:
		return fmt.Errorf("%w: max_upload_bytes must not be negative", ErrInvalidConfig)
	}
	switch c.Audience {
	case "", knowledge.AudienceBeginner, knowledge.AudienceExperienced:
	default:
		return fmt.Errorf("%w: unknown audience %q", ErrInvalidConfig, c.Audience)
	}
	return nil
}

// LoadConfig reads a JSON or YAML file on top of DefaultConfig. The format is
// chosen by extension.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: unsupported config file %s", ErrInvalidConfig, filepath.Base(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}
	return cfg, nil
}

// hostedKeyVars lists the conventional API key variables per provider.
var hostedKeyVars = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"groq":       "GROQ_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"xai":        "XAI_API_KEY",
	"gemini":     "GEMINI_API_KEY",
}

// ApplyEnv overrides fields from LIGHTNINGROUTE_* variables, resolved through
// lookup (os.LookupEnv in the binaries). Provider keys fall back to the
// vendor's conventional variable when no explicit key is set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("LIGHTNINGROUTE_CHAT_PROVIDER", &c.Chat.Provider)
	str("LIGHTNINGROUTE_CHAT_MODEL", &c.Chat.Model)
	str("LIGHTNINGROUTE_CHAT_BASE_URL", &c.Chat.BaseURL)
	str("LIGHTNINGROUTE_CHAT_API_KEY", &c.Chat.APIKey)
	str("LIGHTNINGROUTE_VISION_PROVIDER", &c.Vision.Provider)
	str("LIGHTNINGROUTE_VISION_MODEL", &c.Vision.Model)
	str("LIGHTNINGROUTE_VISION_BASE_URL", &c.Vision.BaseURL)
	str("LIGHTNINGROUTE_VISION_API_KEY", &c.Vision.APIKey)
	str("LIGHTNINGROUTE_AUDIENCE", &c.Audience)
	str("LIGHTNINGROUTE_ADDR", &c.Addr)
	str("LIGHTNINGROUTE_CORS_ORIGINS", &c.CORSOrigins)
	str("LIGHTNINGROUTE_API_KEY", &c.APIKey)

	if v, ok := lookup("LIGHTNINGROUTE_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: LIGHTNINGROUTE_REQUEST_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		c.RequestTimeoutSeconds = int(d / time.Second)
	}
	if v, ok := lookup("LIGHTNINGROUTE_TEMPERATURE"); ok && v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: LIGHTNINGROUTE_TEMPERATURE: %v", ErrInvalidConfig, err)
		}
		c.Temperature = t
	}

	for _, lc := range []*llm.Config{&c.Chat, &c.Vision} {
		if lc.APIKey != "" {
			continue
		}
		if name, ok := hostedKeyVars[lc.Provider]; ok {
			str(name, &lc.APIKey)
		}
	}
	return nil
}
