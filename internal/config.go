package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultRegex is used when neither the CLI nor the config file supplies
// a pattern.
const DefaultRegex = `\b(?:\d{6}-){7}\d{6}\b`

// Config is the external JSON configuration. The core never reads it
// directly: the CLI loads it once and hands the scanner a compiled
// pattern and an explicit exec policy.
type Config struct {
	DefaultRegex   string   `json:"default_regex"`
	ExecutableExts []string `json:"executable_extensions"`
}

// LoadConfig reads and decodes the JSON config file. Callers treat a
// failure as non-fatal and fall back to built-in defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Regex returns the configured default pattern source, or the built-in
// fallback when the config carries none.
func (c Config) Regex() string {
	if c.DefaultRegex != "" {
		return c.DefaultRegex
	}
	return DefaultRegex
}
