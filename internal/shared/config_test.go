package shared

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()
		if config.SetlistFM.BaseURL != "https://api.setlist.fm/rest/1.0" {
			t.Errorf("expected setlist.fm base URL, got %s", config.SetlistFM.BaseURL)
		}
		if config.SetlistFM.RequestsPerSecond != 16 {
			t.Errorf("expected 16 requests per second, got %v", config.SetlistFM.RequestsPerSecond)
		}
		if config.SetlistFM.Timeout() != 30*time.Second {
			t.Errorf("expected 30s timeout, got %s", config.SetlistFM.Timeout())
		}
		if config.Export.OutputDir != "outputs" {
			t.Errorf("expected output dir outputs, got %s", config.Export.OutputDir)
		}
		if config.Export.Format != "csv" {
			t.Errorf("expected csv format, got %s", config.Export.Format)
		}
		if config.SetlistFM.APIKey != "" {
			t.Errorf("expected empty api key, got %s", config.SetlistFM.APIKey)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.SetlistFM.BaseURL != defaultConfig.SetlistFM.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); !errors.Is(err, os.ErrExist) {
			t.Errorf("creating config file again should fail with os.ErrExist, got %v", err)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[setlistfm]
api_key = "test_api_key"
base_url = "http://localhost:9090"
requests_per_second = 2.5

[export]
output_dir = "/tmp/exports"
format = "json"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.SetlistFM.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.SetlistFM.APIKey)
		}
		if config.SetlistFM.RequestsPerSecond != 2.5 {
			t.Errorf("expected 2.5 requests per second, got %v", config.SetlistFM.RequestsPerSecond)
		}
		if config.Export.Format != "json" {
			t.Errorf("expected json format, got %s", config.Export.Format)
		}
		if config.SetlistFM.TimeoutSeconds != 30 {
			t.Errorf("expected missing timeout to keep default 30, got %d", config.SetlistFM.TimeoutSeconds)
		}
		if config.Log.Level != "info" {
			t.Errorf("expected missing log level to keep default info, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("LoadConfig malformed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[setlistfm\napi_key = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(c *Config)
		}{
			{"empty base url", func(c *Config) { c.SetlistFM.BaseURL = "" }},
			{"zero rate", func(c *Config) { c.SetlistFM.RequestsPerSecond = 0 }},
			{"negative timeout", func(c *Config) { c.SetlistFM.TimeoutSeconds = -1 }},
			{"unknown format", func(c *Config) { c.Export.Format = "xlsx" }},
			{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)

				err := config.Validate()
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
