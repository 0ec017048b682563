package rephrase

import (
	"context"
	"fmt"
	"strings"

	"markestedt/polishclip/config"
)

// systemPrompt steers every rewrite request, regardless of provider
const systemPrompt = `You rephrase text to be clearer, simpler, and more polite while preserving meaning.
Rules:
- Keep original intent; do not add commitments or change facts.
- Prefer concise, plain language.
- Default tone: polite, professional. If asked, adapt tone: formal/friendly/concise.
- Return ONLY the rewritten text with no preamble, quotes, or bullet points.
`

// Provider defines the interface for text rephrasing backends. Rephrase
// returns at least one alternative on success; implementations fall back to
// the input text itself when the backend produces nothing usable.
type Provider interface {
	Name() string
	Rephrase(ctx context.Context, text string, n int, tone string, temperature float64) ([]string, error)
}

// NewProvider creates a rephrasing provider based on configuration
func NewProvider(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Name {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai_api_key is required for OpenAI provider (or set OPENAI_API_KEY)")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model), nil
	case "ollama":
		return NewOllamaProvider(cfg.OllamaURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (use \"openai\" or \"ollama\")", cfg.Name)
	}
}

// userMessage builds the user turn embedding the requested tone and the text
func userMessage(text, tone string) string {
	return fmt.Sprintf("Tone: %s\n\nText:\n%s", tone, strings.TrimSpace(text))
}
