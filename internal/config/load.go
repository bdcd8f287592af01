package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the tools cannot work with.
func (c *Config) Validate() error {
	m := c.Metrics
	switch {
	case m.OuterRadius <= 0:
		return fmt.Errorf("%w: metrics.outer_radius must be positive", ErrInvalid)
	case m.TerracesPerSlope < 0:
		return fmt.Errorf("%w: metrics.terraces_per_slope must not be negative", ErrInvalid)
	case m.ChunkSizeX <= 0 || m.ChunkSizeZ <= 0:
		return fmt.Errorf("%w: metrics chunk size must be positive", ErrInvalid)
	case c.Map.File == "" && (c.Map.Width%m.ChunkSizeX != 0 || c.Map.Height%m.ChunkSizeZ != 0 ||
		c.Map.Width <= 0 || c.Map.Height <= 0):
		return fmt.Errorf("%w: map size %dx%d is not a multiple of the chunk size %dx%d",
			ErrInvalid, c.Map.Width, c.Map.Height, m.ChunkSizeX, m.ChunkSizeZ)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "png", "webp":
	default:
		return fmt.Errorf("%w: output.format %q", ErrInvalid, c.Output.Format)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./hexmesh.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Hexmesh")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Hexmesh")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "hexmesh")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "hexmesh")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
