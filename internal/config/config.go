package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LogLevelEnv is read at startup; the value "verbose" turns on verbose output.
const LogLevelEnv = "gatsby_log_level"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatLive = "live"
)

// Config represents the reporter configuration
type Config struct {
	// LogLevel mirrors gatsby_log_level; "verbose" enables verbose messages
	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`

	// Output settings
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output"`

	// Metrics export settings
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" yaml:"metrics"`

	// Tracing export settings
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing" yaml:"tracing"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	// Output format: text, json or live
	Format string `mapstructure:"format" json:"format" yaml:"format"`

	// Whether verbose messages are printed
	Verbose bool `mapstructure:"verbose" json:"verbose" yaml:"verbose"`

	// Whether to colorize output
	Color bool `mapstructure:"color" json:"color" yaml:"color"`
}

// MetricsConfig controls the Prometheus textfile export
type MetricsConfig struct {
	// File receives the metrics when the command finishes; empty disables export
	File string `mapstructure:"file" json:"file" yaml:"file"`
}

// TracingConfig controls span export
type TracingConfig struct {
	// File receives one JSON document per ended activity span; empty disables export
	File string `mapstructure:"file" json:"file" yaml:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
		},
	}
}

// IsVerbose reports whether verbose output is requested by the file, a flag or the environment.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose || c.LogLevel == "verbose"
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatLive:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want %s, %s or %s)", c.Output.Format, FormatText, FormatJSON, FormatLive)
	}
}

// LoadConfig loads configuration from a file, falling back to defaults, and
// applies the gatsby_log_level environment variable.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	if err := v.BindEnv("log_level", LogLevelEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", LogLevelEnv, err)
	}

	// If no config file specified, try to find one
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		_, statErr := os.Stat(configPath)
		switch {
		case statErr == nil:
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		case !errors.Is(statErr, os.ErrNotExist):
			return nil, fmt.Errorf("failed to stat config file: %w", statErr)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("metrics.file", d.Metrics.File)
	v.SetDefault("tracing.file", d.Tracing.File)
}

// SaveConfig saves configuration to a file, as YAML for .yaml/.yml paths and JSON otherwise
func SaveConfig(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var configNames = []string{
	".reporter.json",
	".reporter.yaml",
	".reporter.yml",
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	// Current directory
	for _, candidate := range configNames {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Home directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, name := range configNames {
			candidate := filepath.Join(homeDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	found := findConfigFile()
	if found != "" {
		return found
	}

	// Default location
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(homeDir, ".reporter.yaml")
	}

	return ".reporter.yaml"
}
