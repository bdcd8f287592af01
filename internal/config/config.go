// Package config handles hexmesh configuration loading and management.
package config

import "github.com/Faultbox/hexmesh/internal/hexmetrics"

// Config holds all settings of the CLI tools.
type Config struct {
	Metrics hexmetrics.Metrics `yaml:"metrics"`
	Map     MapConfig          `yaml:"map"`
	Output  OutputConfig       `yaml:"output"`
	Viewer  ViewerConfig       `yaml:"viewer"`
	Logging LoggingConfig      `yaml:"logging"`
	Workers int                `yaml:"workers"` // 0 means one per CPU
}

// MapConfig selects the map to triangulate.
type MapConfig struct {
	File     string `yaml:"file"`     // YAML map; empty generates a demo map
	Width    int    `yaml:"width"`    // demo map size in hexes
	Height   int    `yaml:"height"`
	Wrapping bool   `yaml:"wrapping"` // demo map east-west wrapping
	Seed     uint32 `yaml:"seed"`     // hash grid, noise and demo map seed
	Perturb  bool   `yaml:"perturb"`
}

// OutputConfig holds mesh and preview image settings.
type OutputConfig struct {
	Preview       string `yaml:"preview"` // image path; empty skips the preview
	Format        string `yaml:"format"`  // png or webp; empty picks by extension
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Supersample   int    `yaml:"supersample"`
	Palette       string `yaml:"palette"` // TGA or PNG terrain palette strip
	SmoothNormals bool   `yaml:"smooth_normals"`
	Variants      int    `yaml:"feature_variants"`
	MapFile       string `yaml:"map_file"` // writes the triangulated map as YAML
}

// ViewerConfig holds interactive viewer settings.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`
	Panel      bool    `yaml:"panel"` // ImGui control panel; false opens a bare SDL window
	Font       string  `yaml:"font"`  // TTF for the panel; empty tries system fonts
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Metrics: hexmetrics.Default(),
		Map: MapConfig{
			Width:   20,
			Height:  15,
			Seed:    1234,
			Perturb: true,
		},
		Output: OutputConfig{
			Preview:     "hexmesh.png",
			Width:       1024,
			Height:      1024,
			Supersample: 2,
			Variants:    3,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    60,
			Panel:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
