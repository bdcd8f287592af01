// Package main is the hexmesh command: it triangulates a hex map, logs the
// mesh statistics and writes a top-down preview image.
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

	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("hexmesh failed", zap.Error(err))
		logger.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Log

	r, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		return err
	}

	vertices, triangles, placements := r.Stats()
	fields := []zap.Field{
		zap.Int("hexes", r.Grid.Len()),
		zap.Int("chunks", len(r.Chunks)),
		zap.Int("placements", placements),
	}
	for k := mesh.Kind(0); k < mesh.KindCount; k++ {
		fields = append(fields, zap.Int(k.String()+"_triangles", triangles[k]))
		log.Debug("layer", zap.Stringer("kind", k),
			zap.Int("vertices", vertices[k]),
			zap.Int("triangles", triangles[k]))
	}
	log.Info("map triangulated", fields...)

	if _, err := pipeline.ExportMap(cfg, r, log); err != nil {
		return err
	}
	if _, err := pipeline.WritePreview(cfg, r, log); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
