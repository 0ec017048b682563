package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Polish   PolishConfig   `toml:"polish"`
	Web      WebConfig      `toml:"web"`
}

type ProviderConfig struct {
	Name         string `toml:"name"`
	Model        string `toml:"model"`
	OpenAIAPIKey string `toml:"openai_api_key"`
	OllamaURL    string `toml:"ollama_url"`
}

type PolishConfig struct {
	Alternatives int     `toml:"alternatives"`
	Tone         string  `toml:"tone"`
	Temperature  float64 `toml:"temperature"`
	MaxChars     int     `toml:"max_chars"`
	AutoPaste    bool    `toml:"auto_paste"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// Model defaults per provider, applied when the config leaves the model empty
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultOllamaModel = "llama3.1:8b"
)

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:      "openai",
			OllamaURL: "http://localhost:11434",
		},
		Polish: PolishConfig{
			Alternatives: 3,
			Tone:         "polite",
			Temperature:  0.4,
			MaxChars:     4000,
			AutoPaste:    false,
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8765,
		},
	}
}

// ConfigDir returns the directory holding the config file and database
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}

	dir := filepath.Join(base, "polishclip")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file and applies POLISH_*
// environment variable overrides on top. If the file doesn't exist, it is
// created with default values first.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from the given path, creating it with
// defaults when absent
func LoadFile(configPath string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Provider.Name = strings.ToLower(cfg.Provider.Name)
	cfg.Polish.Tone = strings.ToLower(cfg.Polish.Tone)

	// Resolve the per-provider model default here so everything downstream
	// (metrics rows, the dashboard) sees the model actually in use
	if cfg.Provider.Model == "" {
		switch cfg.Provider.Name {
		case "openai":
			cfg.Provider.Model = DefaultOpenAIModel
		case "ollama":
			cfg.Provider.Model = DefaultOllamaModel
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv applies environment variable overrides on top of the file values
func applyEnv(cfg *Config) error {
	if v := os.Getenv("POLISH_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("POLISH_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Provider.OpenAIAPIKey = v
	}
	if v := os.Getenv("POLISH_OLLAMA_URL"); v != "" {
		cfg.Provider.OllamaURL = v
	}
	if v := os.Getenv("POLISH_ALTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POLISH_ALTS %q: %w", v, err)
		}
		cfg.Polish.Alternatives = n
	}
	if v := os.Getenv("POLISH_TONE"); v != "" {
		cfg.Polish.Tone = v
	}
	if v := os.Getenv("POLISH_TEMP"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid POLISH_TEMP %q: %w", v, err)
		}
		cfg.Polish.Temperature = t
	}
	if v := os.Getenv("POLISH_MAX_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POLISH_MAX_CHARS %q: %w", v, err)
		}
		cfg.Polish.MaxChars = n
	}
	return nil
}

// Validate checks value ranges. Provider-specific requirements (API key,
// known provider name) are checked at provider construction instead.
func (c *Config) Validate() error {
	if c.Polish.Alternatives < 1 {
		return fmt.Errorf("alternatives must be at least 1, got %d", c.Polish.Alternatives)
	}
	if c.Polish.Temperature < 0 || c.Polish.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g", c.Polish.Temperature)
	}
	if c.Polish.MaxChars < 1 {
		return fmt.Errorf("max_chars must be positive, got %d", c.Polish.MaxChars)
	}
	if c.Web.Enabled && (c.Web.Port < 1 || c.Web.Port > 65535) {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// KeyCombo represents a parsed keyboard combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// ParseHotkey parses a hotkey combo string like "ctrl+shift+p"
func ParseHotkey(combo string) (KeyCombo, error) {
	var kc KeyCombo
	parts := strings.Split(strings.ToLower(combo), "+")

	if len(parts) == 0 {
		return kc, fmt.Errorf("empty hotkey combo")
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)

		// Check if this part is a modifier
		isModifier := false
		switch part {
		case "ctrl", "control":
			kc.Ctrl = true
			isModifier = true
		case "shift":
			kc.Shift = true
			isModifier = true
		case "alt":
			kc.Alt = true
			isModifier = true
		case "win", "windows":
			kc.Win = true
			isModifier = true
		}

		// If it's not a modifier and it's the last part, it's the key
		if !isModifier {
			if i == len(parts)-1 {
				kc.Key = part
			} else {
				return kc, fmt.Errorf("unknown modifier: %s", part)
			}
		}
	}

	if kc.Key == "" {
		return kc, fmt.Errorf("no key specified in combo %q", combo)
	}
	if !kc.Ctrl && !kc.Shift && !kc.Alt && !kc.Win {
		return kc, fmt.Errorf("no modifiers specified in combo %q", combo)
	}

	return kc, nil
}
