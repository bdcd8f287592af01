// Package main is the hexmesh viewer: it triangulates the configured map
// and shows it in an OpenGL window with an ImGui control panel, or in a
// bare window with -plain.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/config"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/viewer"
	"github.com/Faultbox/hexmesh/internal/engine/window"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/logger"
	"github.com/Faultbox/hexmesh/internal/pipeline"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("=== hexmesh viewer ===")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Close()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// display is the plain window or the control panel.
type display interface {
	Load(g *hexgrid.Grid, sets []*mesh.Set)
	Run(ctx context.Context) error
	Close()
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Log

	r, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		return err
	}
	opts, err := pipeline.PreviewOptions(cfg)
	if err != nil {
		return err
	}

	// A demo map is rebuilt from the requested seed; a map file is re-read.
	reload := func(seed uint32) (*hexgrid.Grid, []*mesh.Set, error) {
		if cfg.Map.File == "" {
			cfg.Map.Seed = seed
			logger.Info("new demo map", zap.Uint32("seed", seed))
		}
		next, err := pipeline.Run(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return next.Grid, next.Sets(), nil
	}

	vopts := viewer.Options{
		Window: window.Config{
			Title:      "hexmesh",
			Width:      cfg.Viewer.Width,
			Height:     cfg.Viewer.Height,
			Fullscreen: cfg.Viewer.Fullscreen,
			VSync:      cfg.Viewer.VSync,
		},
		Palette:    opts.Palette,
		Light:      opts.Light,
		Background: opts.Background,
		FOV:        cfg.Viewer.FOV,
		Font:       cfg.Viewer.Font,
		Reload:     reload,
		Seed:       cfg.Map.Seed,
		Seeded:     cfg.Map.File == "",
	}

	var d display
	if cfg.Viewer.Panel {
		d, err = viewer.NewPanel(vopts, logger.Named("viewer"))
	} else {
		d, err = viewer.New(vopts, logger.Named("viewer"))
	}
	if err != nil {
		return err
	}
	defer d.Close()

	d.Load(r.Grid, r.Sets())
	return d.Run(ctx)
}
