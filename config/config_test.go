package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultServiceURL, cfg.ServiceURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
	assert.False(t, cfg.Debug)
}

func TestOutputFormat_IsValid(t *testing.T) {
	assert.True(t, OutputFormatText.IsValid())
	assert.True(t, OutputFormatJSON.IsValid())
	assert.True(t, OutputFormatYAML.IsValid())
	assert.False(t, OutputFormat("xml").IsValid())
	assert.False(t, OutputFormat("").IsValid())
}

func TestLoadConfigFromPath_MissingFile(t *testing.T) {
	cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServiceURL, cfg.ServiceURL)
}

func TestLoadConfigFromPath_YAMLValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "service_url: https://knowledge.example.com\ntimeout: 30s\noutput_format: json\ndebug: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://knowledge.example.com", cfg.ServiceURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, OutputFormatJSON, cfg.OutputFormat)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigFromPath_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_url: [broken"), 0o600))

	_, err := LoadConfigFromPath(path)
	assert.Error(t, err)
}

func TestLoadConfigFromPath_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SPACES_SERVER_URL", "http://envhost:9000")
	t.Setenv("SPACES_TIMEOUT", "5s")
	t.Setenv("SPACES_OUTPUT", "yaml")

	cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://envhost:9000", cfg.ServiceURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *CLIConfig) {}, false},
		{"empty url", func(c *CLIConfig) { c.ServiceURL = "" }, true},
		{"non-http scheme", func(c *CLIConfig) { c.ServiceURL = "ftp://host" }, true},
		{"zero timeout", func(c *CLIConfig) { c.Timeout = 0 }, true},
		{"bad output format", func(c *CLIConfig) { c.OutputFormat = "xml" }, true},
		{"https ok", func(c *CLIConfig) { c.ServiceURL = "https://host" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
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

func TestServiceOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceURL = "http://127.0.0.1:8001/"
	assert.Equal(t, "http://127.0.0.1:8001", cfg.ServiceOrigin())
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("SPACES_CONFIG", "/tmp/custom.yaml")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}
