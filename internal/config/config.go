package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the config directory.
const FileName = "config.yaml"

// Config represents the deckforge configuration.
type Config struct {
	Player       string `yaml:"player"`        // default player ID for CLI sessions
	DatabasePath string `yaml:"database_path"` // empty means ~/.deckforge/deckforge.db
	HTTPAddr     string `yaml:"http_addr"`
	LogLevel     string `yaml:"log_level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: ":8080",
		LogLevel: "info",
	}
}

// DefaultDir returns ~/.deckforge.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".deckforge"), nil
}

// LoadConfig reads config.yaml from dir. A missing file yields the defaults.
// Environment variables override file values.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.yaml to dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DECKFORGE_PLAYER"); v != "" {
		c.Player = v
	}
	if v := os.Getenv("DECKFORGE_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("DECKFORGE_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("DECKFORGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// ValidLogLevels lists the accepted log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	for _, l := range ValidLogLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %q (valid: %v)", c.LogLevel, ValidLogLevels)
}

// ResolveDatabasePath returns the configured database path or the default.
func (c *Config) ResolveDatabasePath(dir string) string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(dir, "deckforge.db")
}
