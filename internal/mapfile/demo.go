package mapfile

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
)

// DemoOptions configure the generated demo map.
type DemoOptions struct {
	Width    int
	Height   int
	Wrapping bool
	Seed     uint32

	// MaxElevation is the highest generated elevation. Defaults to 5.
	MaxElevation int

	// WaterLevel is applied to every hex. Defaults to 1.
	WaterLevel int
}

// Terrain type indices used by the demo map. They match the preview's
// default palette.
const (
	TerrainSand = iota
	TerrainGrass
	TerrainMud
	TerrainStone
	TerrainSnow
)

const (
	elevationScale   = 0.02
	elevationOctaves = 4
	// Summed octaves cluster around 0.5; stretch them so both the sea and
	// the peaks appear.
	elevationContrast = 2.5

	riverSourceRate = 0.15
	roadRate        = 0.12
	specialRate     = 0.03
)

// Demo generates a deterministic map from opts.Seed: simplex-noise
// elevation, terrain by height, rivers traced downhill from high sources,
// development, walls around towns, a few specials and scattered roads.
// The same options always produce the same grid.
func Demo(opts DemoOptions, m hexmetrics.Metrics, noise hexmetrics.Sampler, log *zap.Logger) (*hexgrid.Grid, error) {
	if opts.MaxElevation <= 0 {
		opts.MaxElevation = 5
	}
	if opts.WaterLevel == 0 {
		opts.WaterLevel = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	g, err := hexgrid.NewGrid(hexgrid.Options{
		CellCountX: opts.Width,
		CellCountZ: opts.Height,
		Wrapping:   opts.Wrapping,
		Metrics:    m,
		Noise:      noise,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	height := hexmetrics.NewSimplexNoise(opts.Seed, g.Metrics).WithScale(elevationScale, elevationOctaves)
	pick := hexmetrics.NewHashGrid(opts.Seed^0x5bd1e995, g.Metrics)
	develop := hexmetrics.NewHashGrid(opts.Seed^0x27d4eb2f, g.Metrics)

	for i := 0; i < g.Len(); i++ {
		p := g.Hex(i).Position.WithY(0)
		v := (height.Sample(p).A-0.5)*elevationContrast + 0.5
		e := int(v * float32(opts.MaxElevation+1))
		if e < 0 {
			e = 0
		}
		if e > opts.MaxElevation {
			e = opts.MaxElevation
		}
		if err := errors.Join(
			g.SetElevation(i, e),
			g.SetWaterLevel(i, opts.WaterLevel),
			g.SetTerrainType(i, terrainFor(e)),
		); err != nil {
			return nil, err
		}
	}

	rivers := 0
	for i := 0; i < g.Len(); i++ {
		h := g.Hex(i)
		if h.Elevation < 3 || h.IsUnderwater() || g.HasRiver(i) {
			continue
		}
		if pick.Sample(h.Position.WithY(0)).A >= riverSourceRate {
			continue
		}
		n, err := traceRiver(g, i)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			rivers++
		}
	}

	for i := 0; i < g.Len(); i++ {
		h := g.Hex(i)
		if h.IsUnderwater() {
			continue
		}
		s := develop.Sample(h.Position.WithY(0))
		urban := developmentLevel(s.A)
		if err := errors.Join(
			g.SetDevelopment(i, urban, developmentLevel(s.B), developmentLevel(s.C)),
			g.SetWalled(i, urban >= 2),
		); err != nil {
			return nil, err
		}
		if s.D < specialRate && !g.HasRiver(i) {
			if err := g.SetSpecialIndex(i, 1+int(s.E*3)); err != nil {
				return nil, err
			}
		}
	}

	roads := 0
	for i := 0; i < g.Len(); i++ {
		h := g.Hex(i)
		if h.IsUnderwater() {
			continue
		}
		s := pick.Sample(h.Position.WithY(0))
		for k, d := range [...]hexmetrics.Direction{hexmetrics.NE, hexmetrics.E, hexmetrics.SE} {
			if [...]float32{s.B, s.C, s.D}[k] >= roadRate {
				continue
			}
			if n, ok := g.Neighbor(i, d); !ok || n.IsUnderwater() {
				continue
			}
			err := g.AddRoad(i, d)
			switch {
			case err == nil:
				roads++
			case errors.Is(err, hexgrid.ErrInvalidRoad):
			default:
				return nil, err
			}
		}
	}

	log.Info("demo map generated",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Uint32("seed", opts.Seed),
		zap.Int("rivers", rivers),
		zap.Int("roads", roads))
	return g, nil
}

// traceRiver runs a river from source down to water or a dead end and
// returns the number of segments it laid. At every step it flows to the
// lowest neighbor that is not higher, not already on this river and not
// already fed by another river.
func traceRiver(g *hexgrid.Grid, source int) (int, error) {
	visited := map[int]bool{source: true}
	cur := source
	segments := 0
	for segments < g.Len() {
		h := g.Hex(cur)
		if h.IsUnderwater() || g.HasOutgoingRiver(cur) {
			break
		}
		best, bestDir := -1, hexmetrics.NE
		for _, d := range hexmetrics.Directions {
			n, ok := g.Neighbor(cur, d)
			if !ok || visited[n.Index] || g.HasIncomingRiver(n.Index) || n.Elevation > h.Elevation {
				continue
			}
			if best < 0 || n.Elevation < g.Hex(best).Elevation {
				best, bestDir = n.Index, d
			}
		}
		if best < 0 {
			break
		}
		if err := g.SetOutgoingRiver(cur, bestDir); err != nil {
			return segments, err
		}
		segments++
		visited[best] = true
		cur = best
	}
	return segments, nil
}

func terrainFor(elevation int) int {
	switch {
	case elevation <= 0:
		return TerrainSand
	case elevation <= 2:
		return TerrainGrass
	case elevation == 3:
		return TerrainMud
	case elevation == 4:
		return TerrainStone
	default:
		return TerrainSnow
	}
}

// developmentLevel maps a hash value to a level so that about half of the
// hexes stay undeveloped.
func developmentLevel(v float32) int {
	l := int(v*6) - 2
	if l < 0 {
		return 0
	}
	if l > hexmetrics.MaxDevelopmentLevel {
		return hexmetrics.MaxDevelopmentLevel
	}
	return l
}
