package rephrase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"markestedt/polishclip/config"
)

// OllamaProvider implements rephrasing against a local Ollama daemon.
// The /api/chat endpoint has no notion of multiple choices per request, so n
// alternatives cost n sequential calls with the same prompt.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider creates a new Ollama rephrasing provider
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = config.DefaultOllamaModel
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message chatMessage `json:"message"`
}

// Rephrase issues n independent chat requests and collects the non-empty
// results. If nothing usable comes back, the input text is returned as the
// single alternative.
func (p *OllamaProvider) Rephrase(ctx context.Context, text string, n int, tone string, temperature float64) ([]string, error) {
	if n < 1 {
		n = 1
	}

	var outputs []string
	for i := 0; i < n; i++ {
		content, err := p.chat(ctx, text, tone, temperature)
		if err != nil {
			return nil, err
		}
		if content != "" {
			outputs = append(outputs, content)
		}
	}

	if len(outputs) == 0 {
		return []string{text}, nil
	}
	return outputs, nil
}

func (p *OllamaProvider) chat(ctx context.Context, text, tone string, temperature float64) (string, error) {
	reqBody := ollamaChatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage(text, tone)},
		},
		Stream:  false,
		Options: ollamaOptions{Temperature: temperature},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(p.baseURL, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama request failed with status %d", resp.StatusCode)
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return strings.TrimSpace(result.Message.Content), nil
}
