package llm

import "context"

// Completer turns a Provider into a two-prompt completion function.
type Completer struct {
	provider    Provider
	model       string
	temperature float64
}

// NewCompleter wraps p. An empty model defers to the provider's configured one.
func NewCompleter(p Provider, model string, temperature float64) *Completer {
	return &Completer{provider: p, model: model, temperature: temperature}
}

// Complete sends a system and a user message and returns the content of the
// first choice.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.provider.Chat(ctx, ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
