package rephrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/polishclip/config"
)

func TestNewProviderOpenAI(t *testing.T) {
	p, err := NewProvider(config.ProviderConfig{
		Name:         "openai",
		OpenAIAPIKey: "sk-test",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestNewProviderOpenAIMissingKey(t *testing.T) {
	_, err := NewProvider(config.ProviderConfig{Name: "openai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai_api_key")
}

func TestNewProviderOllama(t *testing.T) {
	// No credential required for the local daemon
	p, err := NewProvider(config.ProviderConfig{Name: "ollama"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(config.ProviderConfig{Name: "claude"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
