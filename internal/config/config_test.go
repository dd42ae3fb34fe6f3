package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bmpkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
defaults:
  mode: 128
  width: 20
  height: 10
  bitDepth: 32
`)

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, DefaultsConfig{Mode: 128, Width: 20, Height: 10, BitDepth: 32}, cfg.Defaults)
	require.Equal(t, 16384, cfg.Limits.MaxWidth)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "defaults:\n  colour: 3\n")
	_, err := Load(LoadOptions{ConfigFile: path})
	require.Error(t, err)
}

func TestEnvAndFlagOverrides(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: warn\n")
	t.Setenv("BMPKIT_LOG_LEVEL", "error")
	t.Setenv("BMPKIT_DEFAULT_WIDTH", "64")
	t.Setenv("BMPKIT_DEFAULT_HEIGHT", "not-a-number")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Logging.Level)
	require.Equal(t, 64, cfg.Defaults.Width)
	require.Equal(t, 600, cfg.Defaults.Height)

	cfg, err = Load(LoadOptions{ConfigFile: path, LogLevel: "debug"})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"zero max width", func(c *Config) { c.Limits.MaxWidth = 0 }},
		{"negative default height", func(c *Config) { c.Defaults.Height = -1 }},
		{"default above max", func(c *Config) { c.Defaults.Width = c.Limits.MaxWidth + 1 }},
		{"palette bit depth", func(c *Config) { c.Defaults.BitDepth = 8 }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestCheckDimensions(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.CheckDimensions(16384, 1))
	require.Error(t, cfg.CheckDimensions(16385, 1))
	require.Error(t, cfg.CheckDimensions(1, 20000))
}
