// Package config loads bmpkit settings from a YAML file, the environment and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/bmpkit/internal/logging"
)

// DefaultFile is read from the working directory when no --config is given
const DefaultFile = "bmpkit.yaml"

// Config holds the application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Limits   LimitsConfig   `yaml:"limits"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultsConfig holds the parameters used by `generate` when flags are omitted
type DefaultsConfig struct {
	Mode     int `yaml:"mode"`
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	BitDepth int `yaml:"bitDepth"`
}

// LimitsConfig caps the dimensions the CLI will allocate
type LimitsConfig struct {
	MaxWidth  int `yaml:"maxWidth"`
	MaxHeight int `yaml:"maxHeight"`
}

// LoadOptions holds command-line overrides
type LoadOptions struct {
	ConfigFile string
	LogLevel   string
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging:  LoggingConfig{Level: "info"},
		Defaults: DefaultsConfig{Mode: 255, Width: 800, Height: 600, BitDepth: 24},
		Limits:   LimitsConfig{MaxWidth: 16384, MaxHeight: 16384},
	}
}

// Load builds the configuration: defaults, then the YAML file, then the
// environment, then opts. An explicitly named file must exist.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		path = DefaultFile
	}
	if err := cfg.mergeFile(path); err != nil {
		if opts.ConfigFile != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logging.Debug("no config file at %s, using defaults", path)
	}

	cfg.applyEnv()

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("failed to parse configuration file '%s': %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Logging.Level = getEnvWithDefault("BMPKIT_LOG_LEVEL", c.Logging.Level)
	c.Defaults.Mode = getIntWithDefault("BMPKIT_DEFAULT_MODE", c.Defaults.Mode)
	c.Defaults.Width = getIntWithDefault("BMPKIT_DEFAULT_WIDTH", c.Defaults.Width)
	c.Defaults.Height = getIntWithDefault("BMPKIT_DEFAULT_HEIGHT", c.Defaults.Height)
	c.Defaults.BitDepth = getIntWithDefault("BMPKIT_DEFAULT_BIT_DEPTH", c.Defaults.BitDepth)
	c.Limits.MaxWidth = getIntWithDefault("BMPKIT_MAX_WIDTH", c.Limits.MaxWidth)
	c.Limits.MaxHeight = getIntWithDefault("BMPKIT_MAX_HEIGHT", c.Limits.MaxHeight)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Limits.MaxWidth <= 0 || c.Limits.MaxHeight <= 0 {
		return fmt.Errorf("max dimensions must be positive")
	}

	if c.Defaults.Width <= 0 || c.Defaults.Height <= 0 {
		return fmt.Errorf("default dimensions must be positive")
	}

	if c.Defaults.Width > c.Limits.MaxWidth || c.Defaults.Height > c.Limits.MaxHeight {
		return fmt.Errorf("default dimensions exceed max dimensions")
	}

	if c.Defaults.BitDepth != 24 && c.Defaults.BitDepth != 32 {
		return fmt.Errorf("default bit depth must be 24 or 32, got %d", c.Defaults.BitDepth)
	}

	return nil
}

// CheckDimensions reports whether width x height fits within the configured limits
func (c *Config) CheckDimensions(width, height int) error {
	if width > c.Limits.MaxWidth || height > c.Limits.MaxHeight {
		return fmt.Errorf("%dx%d exceeds the configured limit of %dx%d",
			width, height, c.Limits.MaxWidth, c.Limits.MaxHeight)
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logging.Warn("ignoring %s=%q: not an integer", key, value)
	}
	return defaultValue
}
