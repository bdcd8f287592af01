package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Metrics defaults
	if cfg.Metrics.OuterRadius != 10 {
		t.Errorf("expected outer radius 10, got %f", cfg.Metrics.OuterRadius)
	}
	if cfg.Metrics.TerracesPerSlope != 2 {
		t.Errorf("expected 2 terraces per slope, got %d", cfg.Metrics.TerracesPerSlope)
	}
	if cfg.Metrics.ChunkSizeX != 5 || cfg.Metrics.ChunkSizeZ != 5 {
		t.Errorf("expected 5x5 chunks, got %dx%d", cfg.Metrics.ChunkSizeX, cfg.Metrics.ChunkSizeZ)
	}

	// Map defaults
	if cfg.Map.File != "" {
		t.Errorf("expected no map file, got %s", cfg.Map.File)
	}
	if cfg.Map.Width != 20 || cfg.Map.Height != 15 {
		t.Errorf("expected 20x15 demo map, got %dx%d", cfg.Map.Width, cfg.Map.Height)
	}
	if !cfg.Map.Perturb {
		t.Error("expected perturbation to be enabled by default")
	}

	// Output defaults
	if cfg.Output.Preview != "hexmesh.png" {
		t.Errorf("expected preview hexmesh.png, got %s", cfg.Output.Preview)
	}
	if cfg.Output.Supersample != 2 {
		t.Errorf("expected supersample 2, got %d", cfg.Output.Supersample)
	}

	// Viewer defaults
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}
	if !cfg.Viewer.Panel {
		t.Error("expected the control panel to be on by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
metrics:
  outer_radius: 5
  terraces_per_slope: 3
  chunk_size_x: 4
  chunk_size_z: 4

map:
  file: "maps/island.yaml"
  seed: 99
  perturb: false

output:
  preview: "out/island.webp"
  format: "webp"
  smooth_normals: true

viewer:
  width: 1920
  height: 1080
  fov: 45

logging:
  level: "debug"
  log_file: "hexmesh.log"

workers: 4
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Metrics.OuterRadius != 5 {
		t.Errorf("expected outer radius 5, got %f", cfg.Metrics.OuterRadius)
	}
	if cfg.Metrics.TerracesPerSlope != 3 {
		t.Errorf("expected 3 terraces per slope, got %d", cfg.Metrics.TerracesPerSlope)
	}
	// Unset metrics keep their defaults
	if cfg.Metrics.ElevationStep != 3 {
		t.Errorf("expected elevation step 3, got %f", cfg.Metrics.ElevationStep)
	}

	if cfg.Map.File != "maps/island.yaml" {
		t.Errorf("expected map file maps/island.yaml, got %s", cfg.Map.File)
	}
	if cfg.Map.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Map.Seed)
	}
	if cfg.Map.Perturb {
		t.Error("expected perturb to be false")
	}

	if cfg.Output.Format != "webp" {
		t.Errorf("expected format webp, got %s", cfg.Output.Format)
	}
	if !cfg.Output.SmoothNormals {
		t.Error("expected smooth normals to be true")
	}

	if cfg.Viewer.Width != 1920 || cfg.Viewer.FOV != 45 {
		t.Errorf("expected viewer 1920 wide at fov 45, got %d at %f", cfg.Viewer.Width, cfg.Viewer.FOV)
	}

	if cfg.Logging.LogFile != "hexmesh.log" {
		t.Errorf("expected log file 'hexmesh.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
metrics:
  outer_radius: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero radius", func(c *Config) { c.Metrics.OuterRadius = 0 }, true},
		{"negative terraces", func(c *Config) { c.Metrics.TerracesPerSlope = -1 }, true},
		{"zero chunk", func(c *Config) { c.Metrics.ChunkSizeX = 0 }, true},
		{"partial chunk", func(c *Config) { c.Map.Width = 22 }, true},
		{"partial chunk with map file", func(c *Config) { c.Map.Width = 22; c.Map.File = "a.yaml" }, false},
		{"negative workers", func(c *Config) { c.Workers = -2 }, true},
		{"webp", func(c *Config) { c.Output.Format = "WEBP" }, false},
		{"unknown format", func(c *Config) { c.Output.Format = "gif" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "hexmesh.yaml")
	if err := os.WriteFile(configPath, []byte("workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find hexmesh.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Map.Seed = 7
	cfg.Output.Format = "webp"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Map.Seed != 7 {
		t.Errorf("expected seed 7, got %d", loaded.Map.Seed)
	}
	if loaded.Output.Format != "webp" {
		t.Errorf("expected format webp, got %s", loaded.Output.Format)
	}
	if loaded.Metrics != cfg.Metrics {
		t.Errorf("expected metrics to round-trip, got %+v", loaded.Metrics)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "map flag",
			setup: func() { *flagMap = "world.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Map.File != "world.yaml" {
					t.Errorf("expected map world.yaml, got %s", cfg.Map.File)
				}
			},
			teardown: func() { *flagMap = "" },
		},
		{
			name:  "seed zero",
			setup: func() { *flagSeed = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Map.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Map.Seed)
				}
			},
			teardown: func() { *flagSeed = -1 },
		},
		{
			name: "output flags",
			setup: func() {
				*flagOut = "out.webp"
				*flagFormat = "webp"
				*flagExportMap = "maps/out.yaml"
				*flagWorkers = 3
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Preview != "out.webp" || cfg.Output.Format != "webp" {
					t.Errorf("expected out.webp as webp, got %s as %s", cfg.Output.Preview, cfg.Output.Format)
				}
				if cfg.Output.MapFile != "maps/out.yaml" {
					t.Errorf("expected map export to maps/out.yaml, got %q", cfg.Output.MapFile)
				}
				if cfg.Workers != 3 {
					t.Errorf("expected 3 workers, got %d", cfg.Workers)
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagFormat = ""
				*flagExportMap = ""
				*flagWorkers = 0
			},
		},
		{
			name: "viewer flags",
			setup: func() {
				*flagFullscreen = true
				*flagWidth = 2560
				*flagHeight = 1440
				*flagPlain = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
				if cfg.Viewer.Panel {
					t.Error("expected the panel to be off with the plain flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
				*flagWidth = 0
				*flagHeight = 0
				*flagPlain = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
map:
  width: 10
  height: 10
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file
	*flagConfig = configPath
	*flagMapWidth = 30
	defer func() {
		*flagConfig = ""
		*flagMapWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Map.Width != 30 {
		t.Errorf("expected width 30 from flag, got %d", cfg.Map.Width)
	}
	if cfg.Map.Height != 10 {
		t.Errorf("expected height 10 from file, got %d", cfg.Map.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("workers: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
