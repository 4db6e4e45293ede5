// Package config provides persistent configuration for salat-clock.
//
// Configuration is stored as JSON at ~/.config/salat-clock/config.json
// (XDG-compliant). Values may also come from SALAT_CLOCK_* environment
// variables, optionally loaded from a .env file. The merge priority is:
// CLI flags > environment > config file > defaults.
//
// The selected city is deliberately not a config key: every run starts on
// the default city unless --city is given.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salat-clock/internal/api"
)

const (
	configDirName  = "salat-clock"
	configFileName = "config.json"

	// EnvPrefix prefixes every environment override, e.g. SALAT_CLOCK_LOCALE.
	EnvPrefix = "SALAT_CLOCK_"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"locale",
	"time_format",
	"base_url",
	"log_level",
	"log_file",
	"timeout",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Locale     string `json:"locale,omitempty"`      // "en" or "ar"; empty means $LANG
	TimeFormat string `json:"time_format,omitempty"` // "12h" or "24h"
	BaseURL    string `json:"base_url,omitempty"`
	LogLevel   string `json:"log_level,omitempty"`
	LogFile    string `json:"log_file,omitempty"`
	Timeout    string `json:"timeout,omitempty"` // Go duration, e.g. "10s"
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		TimeFormat: "24h",
		BaseURL:    api.DefaultBaseURL,
		LogLevel:   "info",
		Timeout:    "10s",
	}
}

// Merge returns c with every empty field taken from fallback.
func (c Config) Merge(fallback Config) Config {
	if c.Locale == "" {
		c.Locale = fallback.Locale
	}
	if c.TimeFormat == "" {
		c.TimeFormat = fallback.TimeFormat
	}
	if c.BaseURL == "" {
		c.BaseURL = fallback.BaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = fallback.LogLevel
	}
	if c.LogFile == "" {
		c.LogFile = fallback.LogFile
	}
	if c.Timeout == "" {
		c.Timeout = fallback.Timeout
	}
	return c
}

// TimeoutOrDefault parses Timeout, falling back to def when unset or invalid.
func (c *Config) TimeoutOrDefault(def time.Duration) time.Duration {
	if c.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// into the process environment. Variables already set are kept, and missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from SALAT_CLOCK_* variables found via lookup
// (usually os.LookupEnv). Values are validated like `config set`.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range ValidKeys {
		v, ok := lookup(EnvName(key))
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", EnvName(key), err)
		}
	}
	return nil
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and the value.
func (c *Config) Set(key, value string) error {
	switch key {
	case "locale":
		v := strings.ToLower(strings.TrimSpace(value))
		if v != "en" && v != "ar" {
			return fmt.Errorf("invalid locale %q: must be \"en\" or \"ar\"", value)
		}
		c.Locale = v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "base_url":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid base_url %q: must be an http(s) URL", value)
		}
		c.BaseURL = strings.TrimRight(value, "/")
	case "log_level":
		if _, err := zerolog.ParseLevel(strings.ToLower(value)); err != nil || value == "" {
			return fmt.Errorf("invalid log_level %q: must be one of trace, debug, info, warn, error, fatal, panic, disabled", value)
		}
		c.LogLevel = strings.ToLower(value)
	case "log_file":
		c.LogFile = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout %q: must be a positive duration like \"10s\"", value)
		}
		c.Timeout = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "locale":
		return c.Locale, nil
	case "time_format":
		return c.TimeFormat, nil
	case "base_url":
		return c.BaseURL, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_file":
		return c.LogFile, nil
	case "timeout":
		return c.Timeout, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}
