package rephrase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"markestedt/polishclip/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIProvider implements rephrasing using OpenAI's chat completions API.
// A single request asks for n choices, so one hotkey press costs one call.
type OpenAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIProvider creates a new OpenAI rephrasing provider
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultOpenAIBaseURL,
		client:  &http.Client{},
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	N           int           `json:"n"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Rephrase requests n completions in one call and returns their texts.
// Empty completions are discarded; if nothing usable comes back, the input
// text is returned as the single alternative.
func (p *OpenAIProvider) Rephrase(ctx context.Context, text string, n int, tone string, temperature float64) ([]string, error) {
	if n < 1 {
		n = 1
	}

	reqBody := chatCompletionsRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage(text, tone)},
		},
		N:           n,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(p.baseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var outputs []string
	for _, choice := range result.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			outputs = append(outputs, content)
		}
	}

	if len(outputs) == 0 {
		return []string{text}, nil
	}
	return outputs, nil
}
