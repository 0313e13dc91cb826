package shared

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// ExportFormats lists the export formats accepted in configuration and on the command line.
var ExportFormats = []string{"csv", "json", "markdown", "txt"}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	SetlistFM SetlistFMConfig `toml:"setlistfm" json:"setlistfm"`
	Export    ExportConfig    `toml:"export" json:"export"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// SetlistFMConfig contains setlist.fm API settings.
type SetlistFMConfig struct {
	APIKey            string  `toml:"api_key" json:"api_key"`
	BaseURL           string  `toml:"base_url" json:"base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds" json:"timeout_seconds"`
	UserAgent         string  `toml:"user_agent" json:"user_agent"`
}

// Timeout returns the HTTP request timeout. Zero disables it.
func (c SetlistFMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExportConfig contains export writer settings.
type ExportConfig struct {
	OutputDir string `toml:"output_dir" json:"output_dir"`
	Format    string `toml:"format" json:"format"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: refusing to overwrite config at %s", os.ErrExist, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail late, mid-export.
func (c *Config) Validate() error {
	if c.SetlistFM.BaseURL == "" {
		return fmt.Errorf("%w: setlistfm.base_url is empty", ErrInvalidConfig)
	}
	if c.SetlistFM.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: setlistfm.requests_per_second must be positive", ErrInvalidConfig)
	}
	if c.SetlistFM.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: setlistfm.timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if !IsExportFormat(c.Export.Format) {
		return fmt.Errorf("%w: export.format %q", ErrInvalidConfig, c.Export.Format)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// IsExportFormat reports whether format is one of [ExportFormats].
func IsExportFormat(format string) bool {
	return slices.Contains(ExportFormats, format)
}
