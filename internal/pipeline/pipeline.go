// Package pipeline wires the configured map source, the triangulator and
// the preview renderer together for the command line tools.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/config"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/preview"
	"github.com/Faultbox/hexmesh/internal/engine/triangulate"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/internal/mapfile"
)

// Result is a triangulated map.
type Result struct {
	Grid   *hexgrid.Grid
	Chunks []triangulate.ChunkResult
}

// Sets returns the layer sets of every chunk in chunk order.
func (r *Result) Sets() []*mesh.Set {
	sets := make([]*mesh.Set, len(r.Chunks))
	for i, c := range r.Chunks {
		sets[i] = c.Layers
	}
	return sets
}

// Stats sums vertex and triangle counts per layer and the placements over
// every chunk.
func (r *Result) Stats() (vertices, triangles [mesh.KindCount]int, placements int) {
	vertices, triangles = mesh.SumStats(r.Sets())
	for _, c := range r.Chunks {
		placements += len(c.Placements)
	}
	return vertices, triangles, placements
}

// noiseFor returns the perturbation sampler for a map of the given width,
// or nil when perturbation is off. The wrap width must be known before
// the grid exists.
func noiseFor(cfg *config.Config, width int, wrapping bool) hexmetrics.Sampler {
	if !cfg.Map.Perturb {
		return nil
	}
	m := cfg.Metrics
	if wrapping {
		m.WrapSize = width
	}
	return hexmetrics.NewSimplexNoise(cfg.Map.Seed, m)
}

// LoadGrid builds the grid from the configured map file, or generates
// the demo map when there is none.
func LoadGrid(cfg *config.Config, log *zap.Logger) (*hexgrid.Grid, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gridLog := log.Named("grid")

	if cfg.Map.File == "" {
		return mapfile.Demo(mapfile.DemoOptions{
			Width:    cfg.Map.Width,
			Height:   cfg.Map.Height,
			Wrapping: cfg.Map.Wrapping,
			Seed:     cfg.Map.Seed,
		}, cfg.Metrics, noiseFor(cfg, cfg.Map.Width, cfg.Map.Wrapping), gridLog)
	}

	f, err := mapfile.Load(cfg.Map.File)
	if err != nil {
		return nil, err
	}
	g, err := f.Build(cfg.Metrics, noiseFor(cfg, f.Width, f.Wrapping), gridLog)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cfg.Map.File, err)
	}
	log.Info("map loaded",
		zap.String("file", cfg.Map.File),
		zap.Int("width", f.Width),
		zap.Int("height", f.Height))
	return g, nil
}

// Triangulate runs every chunk of g through the worker pool.
func Triangulate(ctx context.Context, cfg *config.Config, g *hexgrid.Grid, log *zap.Logger) ([]triangulate.ChunkResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return triangulate.Run(ctx, triangulate.Options{
		Grid:          g,
		Hash:          hexmetrics.NewHashGrid(cfg.Map.Seed, g.Metrics),
		Variants:      cfg.Output.Variants,
		SmoothNormals: cfg.Output.SmoothNormals,
		Logger:        log.Named("triangulate"),
	}, workers)
}

// Run loads and triangulates the configured map.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g, err := LoadGrid(cfg, log)
	if err != nil {
		return nil, err
	}
	chunks, err := Triangulate(ctx, cfg, g, log)
	if err != nil {
		return nil, err
	}
	return &Result{Grid: g, Chunks: chunks}, nil
}

// PreviewOptions turns the output config into renderer options, loading
// the palette if one is set.
func PreviewOptions(cfg *config.Config) (preview.Options, error) {
	opts := preview.DefaultOptions()
	if cfg.Output.Width > 0 {
		opts.Width = cfg.Output.Width
	}
	if cfg.Output.Height > 0 {
		opts.Height = cfg.Output.Height
	}
	opts.Supersample = cfg.Output.Supersample
	if cfg.Output.Palette != "" {
		p, err := preview.LoadPalette(cfg.Output.Palette)
		if err != nil {
			return opts, err
		}
		opts.Palette = p
	}
	return opts, nil
}

// WritePreview renders r and saves it to the configured preview path. It
// returns the path written, or "" when the preview is disabled.
func WritePreview(cfg *config.Config, r *Result, log *zap.Logger) (string, error) {
	path := cfg.Output.Preview
	if path == "" {
		return "", nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	format := preview.FormatFromPath(path)
	if cfg.Output.Format != "" {
		f, err := preview.ParseFormat(cfg.Output.Format)
		if err != nil {
			return "", err
		}
		format = f
	}

	opts, err := PreviewOptions(cfg)
	if err != nil {
		return "", err
	}

	start := time.Now()
	img := preview.New(opts, log.Named("preview")).Render(r.Grid, r.Sets())
	if err := preview.Save(path, img, format); err != nil {
		return "", err
	}
	log.Info("preview written",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Duration("elapsed", time.Since(start)))
	return path, nil
}

// ExportMap writes the map description of r to the configured map file.
// It returns the path written, or "" when no export is configured.
func ExportMap(cfg *config.Config, r *Result, log *zap.Logger) (string, error) {
	path := cfg.Output.MapFile
	if path == "" {
		return "", nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	f := mapfile.FromGrid(r.Grid, mapfile.CommonDefaults(r.Grid))
	if err := f.Save(path); err != nil {
		return "", fmt.Errorf("export map: %w", err)
	}
	log.Info("map exported",
		zap.String("path", path),
		zap.Int("hexes", len(f.Hexes)),
		zap.Int("rivers", len(f.Rivers)),
		zap.Int("roads", len(f.Roads)))
	return path, nil
}
