package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMap        = flag.String("map", "", "Map file (YAML); empty generates a demo map")
	flagSeed       = flag.Int("seed", -1, "Seed for hashing, noise and the demo map")
	flagMapWidth   = flag.Int("map-width", 0, "Demo map width in hexes")
	flagMapHeight  = flag.Int("map-height", 0, "Demo map height in hexes")
	flagOut        = flag.String("out", "", "Preview image path")
	flagFormat     = flag.String("format", "", "Preview format: png or webp")
	flagExportMap  = flag.String("export-map", "", "Write the map description (YAML) to this path")
	flagWorkers    = flag.Int("workers", 0, "Number of triangulation workers")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
	flagPlain      = flag.Bool("plain", false, "Open the viewer without the control panel")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMap != "" {
		cfg.Map.File = *flagMap
	}
	if *flagSeed >= 0 {
		cfg.Map.Seed = uint32(*flagSeed)
	}
	if *flagMapWidth > 0 {
		cfg.Map.Width = *flagMapWidth
	}
	if *flagMapHeight > 0 {
		cfg.Map.Height = *flagMapHeight
	}
	if *flagOut != "" {
		cfg.Output.Preview = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagExportMap != "" {
		cfg.Output.MapFile = *flagExportMap
	}
	if *flagWorkers > 0 {
		cfg.Workers = *flagWorkers
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagPlain {
		cfg.Viewer.Panel = false
	}
}
