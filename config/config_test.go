package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks all recognized variables so ambient settings can't leak
// into assertions
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POLISH_PROVIDER", "POLISH_MODEL", "POLISH_ALTS", "POLISH_TONE",
		"POLISH_TEMP", "POLISH_MAX_CHARS", "OPENAI_API_KEY", "POLISH_OLLAMA_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, "", cfg.Provider.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Provider.OllamaURL)
	assert.Equal(t, 3, cfg.Polish.Alternatives)
	assert.Equal(t, "polite", cfg.Polish.Tone)
	assert.Equal(t, 0.4, cfg.Polish.Temperature)
	assert.Equal(t, 4000, cfg.Polish.MaxChars)
	assert.False(t, cfg.Polish.AutoPaste)
	assert.True(t, cfg.Web.Enabled)
	assert.Equal(t, 8765, cfg.Web.Port)
}

func TestLoadFileCreatesDefaultConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider.Name)

	// The file should now exist and load back identically
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFileParsesTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[provider]
name = "ollama"
model = "llama3.1:8b"
ollama_url = "http://localhost:9999"

[polish]
alternatives = 5
tone = "Formal"
temperature = 0.9
max_chars = 2000
auto_paste = true

[web]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider.Name)
	assert.Equal(t, "llama3.1:8b", cfg.Provider.Model)
	assert.Equal(t, "http://localhost:9999", cfg.Provider.OllamaURL)
	assert.Equal(t, 5, cfg.Polish.Alternatives)
	assert.Equal(t, "formal", cfg.Polish.Tone) // lowercased
	assert.Equal(t, 0.9, cfg.Polish.Temperature)
	assert.Equal(t, 2000, cfg.Polish.MaxChars)
	assert.True(t, cfg.Polish.AutoPaste)
	assert.False(t, cfg.Web.Enabled)
}

func TestLoadFileResolvesDefaultModel(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, cfg.Provider.Model)

	t.Setenv("POLISH_PROVIDER", "ollama")
	cfg, err = LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOllamaModel, cfg.Provider.Model)

	// An explicit model is never overwritten
	t.Setenv("POLISH_MODEL", "mistral")
	cfg, err = LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "mistral", cfg.Provider.Model)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLISH_PROVIDER", "Ollama")
	t.Setenv("POLISH_MODEL", "mistral")
	t.Setenv("POLISH_ALTS", "4")
	t.Setenv("POLISH_TONE", "CONCISE")
	t.Setenv("POLISH_TEMP", "1.2")
	t.Setenv("POLISH_MAX_CHARS", "100")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("POLISH_OLLAMA_URL", "http://127.0.0.1:11434")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider.Name)
	assert.Equal(t, "mistral", cfg.Provider.Model)
	assert.Equal(t, "sk-test", cfg.Provider.OpenAIAPIKey)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Provider.OllamaURL)
	assert.Equal(t, 4, cfg.Polish.Alternatives)
	assert.Equal(t, "concise", cfg.Polish.Tone)
	assert.Equal(t, 1.2, cfg.Polish.Temperature)
	assert.Equal(t, 100, cfg.Polish.MaxChars)
}

func TestInvalidEnvValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad alts", "POLISH_ALTS", "lots"},
		{"bad temp", "POLISH_TEMP", "warm"},
		{"bad max chars", "POLISH_MAX_CHARS", "4k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero alternatives", func(c *Config) { c.Polish.Alternatives = 0 }, true},
		{"negative temperature", func(c *Config) { c.Polish.Temperature = -0.1 }, true},
		{"temperature above 2", func(c *Config) { c.Polish.Temperature = 2.5 }, true},
		{"temperature 2 is valid", func(c *Config) { c.Polish.Temperature = 2 }, false},
		{"zero max chars", func(c *Config) { c.Polish.MaxChars = 0 }, true},
		{"bad web port", func(c *Config) { c.Web.Port = 0 }, true},
		{"bad port ignored when web disabled", func(c *Config) { c.Web.Enabled = false; c.Web.Port = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseHotkey(t *testing.T) {
	kc, err := ParseHotkey("ctrl+shift+p")
	require.NoError(t, err)
	assert.True(t, kc.Ctrl)
	assert.True(t, kc.Shift)
	assert.False(t, kc.Alt)
	assert.Equal(t, "p", kc.Key)

	kc, err = ParseHotkey("ctrl+shift+]")
	require.NoError(t, err)
	assert.Equal(t, "]", kc.Key)

	_, err = ParseHotkey("p")
	assert.Error(t, err, "key without modifiers")

	_, err = ParseHotkey("ctrl+shift")
	assert.Error(t, err, "modifiers without key")

	_, err = ParseHotkey("ctrl+bogus+p")
	assert.Error(t, err)
}
