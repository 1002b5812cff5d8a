// Package config provides CLI configuration management for the spaces command-line tool.
// It supports loading configuration from YAML files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// IsValid reports whether the output format is one of the supported values.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	}
	return false
}

// Default configuration values.
const (
	DefaultServiceURL   = "http://127.0.0.1:8001"
	DefaultTimeout      = 60 * time.Second
	DefaultOutputFormat = OutputFormatText
	DefaultConfigDir    = ".spaces"
	DefaultConfigFile   = "config.yaml"
)

// CLIConfig holds the complete configuration for the spaces CLI.
type CLIConfig struct {
	// ServiceURL is the base URL of the knowledge service.
	ServiceURL string `yaml:"service_url"`

	// Timeout is the per-request timeout for service calls.
	Timeout time.Duration `yaml:"timeout"`

	// OutputFormat is the default output format (text, json, yaml).
	OutputFormat OutputFormat `yaml:"output_format"`

	// Debug enables verbose logging.
	Debug bool `yaml:"debug"`

	// PlayerCommand is the external command used for audio playback.
	// Empty means auto-detect (afplay, mpv, ffplay in PATH order).
	PlayerCommand string `yaml:"player_command,omitempty"`
}

// DefaultConfig returns a CLIConfig populated with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		ServiceURL:   DefaultServiceURL,
		Timeout:      DefaultTimeout,
		OutputFormat: DefaultOutputFormat,
	}
}

// ConfigPath returns the path to the config file, honoring SPACES_CONFIG.
func ConfigPath() (string, error) {
	if path := os.Getenv("SPACES_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// LoadConfig loads configuration with the standard precedence:
// defaults, then the YAML config file (if present), then environment variables.
// Command-line flag overrides are applied by the caller.
func LoadConfig() (*CLIConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFromPath(path)
}

// LoadConfigFromPath loads configuration from the given file path.
// A missing file is not an error; defaults and environment apply.
func LoadConfigFromPath(path string) (*CLIConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironment overrides config values from SPACES_* environment variables.
func (c *CLIConfig) applyEnvironment() {
	if v := os.Getenv("SPACES_SERVER_URL"); v != "" {
		c.ServiceURL = v
	}
	if v := os.Getenv("SPACES_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("SPACES_OUTPUT"); v != "" {
		c.OutputFormat = OutputFormat(v)
	}
	if v := os.Getenv("SPACES_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv("SPACES_PLAYER"); v != "" {
		c.PlayerCommand = v
	}
}

// Validate checks the configuration for invalid values.
func (c *CLIConfig) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service_url must not be empty")
	}
	u, err := url.Parse(c.ServiceURL)
	if err != nil {
		return fmt.Errorf("invalid service_url %q: %w", c.ServiceURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service_url must be http or https, got %q", c.ServiceURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output format %q (want text, json, or yaml)", c.OutputFormat)
	}
	return nil
}

// Save writes the configuration to the standard config path, creating the
// directory if needed.
func (c *CLIConfig) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// ServiceOrigin returns the service URL without a trailing slash, suitable for
// joining origin-relative resource paths such as podcast audio URLs.
func (c *CLIConfig) ServiceOrigin() string {
	return strings.TrimRight(c.ServiceURL, "/")
}
