package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName is the application name used for the config directory
const AppName = "chitbook"

// Config holds CLI configuration
type Config struct {
	Book         string `yaml:"book,omitempty"`          // default book file
	Render       string `yaml:"render,omitempty"`        // pdf, text
	PageSize     string `yaml:"page_size,omitempty"`     // a4, letter, ...
	Orientation  string `yaml:"orientation,omitempty"`   // portrait, landscape
	FontFamily   string `yaml:"font_family,omitempty"`   // Helvetica, Times, Courier
	OutputFormat string `yaml:"output_format,omitempty"` // text, json, yaml, table
	LogLevel     string `yaml:"log_level,omitempty"`     // debug, info, warn, error
}

// setters maps every supported key to the field it sets.
var setters = map[string]func(*Config) *string{
	"book":          func(c *Config) *string { return &c.Book },
	"render":        func(c *Config) *string { return &c.Render },
	"page_size":     func(c *Config) *string { return &c.PageSize },
	"orientation":   func(c *Config) *string { return &c.Orientation },
	"font_family":   func(c *Config) *string { return &c.FontFamily },
	"output_format": func(c *Config) *string { return &c.OutputFormat },
	"log_level":     func(c *Config) *string { return &c.LogLevel },
}

// Keys lists the supported config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to key.
func (c *Config) Set(key, value string) error {
	field, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	*field(c) = strings.TrimSpace(value)
	return nil
}

// Unset clears key.
func (c *Config) Unset(key string) error {
	return c.Set(key, "")
}

// Values returns every key with its current value.
func (c *Config) Values() map[string]string {
	out := make(map[string]string, len(setters))
	for k, field := range setters {
		out[k] = *field(c)
	}
	return out
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ReadConfig reads the config file from the default location
func ReadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load loads config from the given path. A missing file is an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save saves config to the given path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
