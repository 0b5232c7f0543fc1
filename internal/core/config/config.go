// Package config handles configuration loading and validation for modalkit.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Window classes understood by the built-in template.
const (
	StyleDefault = "modal-default"
	StyleDanger  = "modal-danger"
	StylePrimary = "modal-primary"
	StyleWarning = "modal-warning"
	StyleSuccess = "modal-success"
	StyleInfo    = "modal-info"
)

// markdownStyles are the glamour standard styles accepted for bodies.
var markdownStyles = []string{"ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}

// Config holds the application configuration.
type Config struct {
	Template           string `yaml:"template"`       // custom window template path (empty = built-in)
	MarkdownStyle      string `yaml:"markdown_style"` // glamour style for dialog bodies
	DismissOnEscape    bool   `yaml:"dismiss_on_escape"`
	AckInvokesCallback bool   `yaml:"ack_invokes_callback"`
	Styles             Styles `yaml:"styles"`
}

// Styles maps each dialog to the window class it opens with.
type Styles struct {
	Default string `yaml:"default"`
	Delete  string `yaml:"delete"`
	Login   string `yaml:"login"`
	Error   string `yaml:"error"`
	Success string `yaml:"success"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MarkdownStyle:   "dark",
		DismissOnEscape: true,
		Styles: Styles{
			Default: StyleDefault,
			Delete:  StyleDanger,
			Login:   StylePrimary,
			Error:   StylePrimary,
			Success: StylePrimary,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = defaults.MarkdownStyle
	}
	if c.Styles.Default == "" {
		c.Styles.Default = defaults.Styles.Default
	}
	if c.Styles.Delete == "" {
		c.Styles.Delete = defaults.Styles.Delete
	}
	if c.Styles.Login == "" {
		c.Styles.Login = defaults.Styles.Login
	}
	if c.Styles.Error == "" {
		c.Styles.Error = defaults.Styles.Error
	}
	if c.Styles.Success == "" {
		c.Styles.Success = defaults.Styles.Success
	}
}

// IsValidStyle reports whether style is a window class the built-in
// template knows how to draw.
func IsValidStyle(style string) bool {
	switch style {
	case StyleDefault, StyleDanger, StylePrimary, StyleWarning, StyleSuccess, StyleInfo:
		return true
	default:
		return false
	}
}
