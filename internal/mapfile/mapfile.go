// Package mapfile reads and writes YAML map descriptions and turns them
// into hex grids.
//
// A map lists only what differs from its defaults:
//
//	width: 10
//	height: 10
//	defaults: {elevation: 1, terrain: 1}
//	hexes:
//	  - {x: 2, z: 3, elevation: 2, urban: 1, walled: true}
//	rivers:
//	  - {x: 2, z: 3, direction: E}
//	roads:
//	  - {x: 4, z: 4, direction: NE}
package mapfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
)

// ErrUnknownDirection is returned for river or road directions that are
// not one of NE, E, SE, SW, W, NW.
var ErrUnknownDirection = errors.New("unknown direction")

// File is a map description.
type File struct {
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
	Wrapping bool `yaml:"wrapping,omitempty"`

	Defaults Defaults `yaml:"defaults,omitempty"`
	Hexes    []Hex    `yaml:"hexes,omitempty"`
	Rivers   []Edge   `yaml:"rivers,omitempty"`
	Roads    []Edge   `yaml:"roads,omitempty"`
}

// Defaults apply to every hex before the hex list.
type Defaults struct {
	Elevation  int `yaml:"elevation,omitempty"`
	WaterLevel int `yaml:"water_level,omitempty"`
	Terrain    int `yaml:"terrain,omitempty"`
}

// Hex overrides the attributes of one hex. Absent fields keep the
// defaults.
type Hex struct {
	X          int  `yaml:"x"`
	Z          int  `yaml:"z"`
	Elevation  *int `yaml:"elevation,omitempty"`
	WaterLevel *int `yaml:"water_level,omitempty"`
	Terrain    *int `yaml:"terrain,omitempty"`
	Urban      int  `yaml:"urban,omitempty"`
	Farm       int  `yaml:"farm,omitempty"`
	Plant      int  `yaml:"plant,omitempty"`
	Special    int  `yaml:"special,omitempty"`
	Walled     bool `yaml:"walled,omitempty"`
}

// Edge names one side of a hex: a river leaving it or a road through it.
type Edge struct {
	X         int    `yaml:"x"`
	Z         int    `yaml:"z"`
	Direction string `yaml:"direction"`
}

// Parse decodes a map description. Unknown keys are errors.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the map file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Save writes f as YAML to path, creating its directory.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (e Edge) direction() (hexmetrics.Direction, error) {
	d, ok := hexmetrics.ParseDirection(e.Direction)
	if !ok {
		return 0, fmt.Errorf("(%d,%d) %q: %w", e.X, e.Z, e.Direction, ErrUnknownDirection)
	}
	return d, nil
}

// Build creates a grid and applies the description to it. Hex attributes
// come first, then rivers, special features and finally roads, so the
// grid's edit rules decide conflicts the same way they would for an
// editor. Any rejected edit fails the build.
func (f *File) Build(m hexmetrics.Metrics, noise hexmetrics.Sampler, log *zap.Logger) (*hexgrid.Grid, error) {
	g, err := hexgrid.NewGrid(hexgrid.Options{
		CellCountX: f.Width,
		CellCountZ: f.Height,
		Wrapping:   f.Wrapping,
		Metrics:    m,
		Noise:      noise,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	for i := 0; i < g.Len(); i++ {
		if err := errors.Join(
			g.SetElevation(i, f.Defaults.Elevation),
			g.SetWaterLevel(i, f.Defaults.WaterLevel),
			g.SetTerrainType(i, f.Defaults.Terrain),
		); err != nil {
			return nil, err
		}
	}

	index := func(x, z int) (int, error) {
		h, ok := g.HexAt(x, z)
		if !ok {
			return 0, fmt.Errorf("hex (%d,%d): %w", x, z, hexgrid.ErrIndexOutOfRange)
		}
		return h.Index, nil
	}

	for _, h := range f.Hexes {
		i, err := index(h.X, h.Z)
		if err != nil {
			return nil, err
		}
		if h.Elevation != nil {
			err = errors.Join(err, g.SetElevation(i, *h.Elevation))
		}
		if h.WaterLevel != nil {
			err = errors.Join(err, g.SetWaterLevel(i, *h.WaterLevel))
		}
		if h.Terrain != nil {
			err = errors.Join(err, g.SetTerrainType(i, *h.Terrain))
		}
		err = errors.Join(err,
			g.SetDevelopment(i, h.Urban, h.Farm, h.Plant),
			g.SetWalled(i, h.Walled),
		)
		if err != nil {
			return nil, fmt.Errorf("hex (%d,%d): %w", h.X, h.Z, err)
		}
	}

	for _, r := range f.Rivers {
		i, err := index(r.X, r.Z)
		if err != nil {
			return nil, err
		}
		d, err := r.direction()
		if err != nil {
			return nil, fmt.Errorf("river: %w", err)
		}
		if err := g.SetOutgoingRiver(i, d); err != nil {
			return nil, fmt.Errorf("river at (%d,%d): %w", r.X, r.Z, err)
		}
	}

	for _, h := range f.Hexes {
		if h.Special == 0 {
			continue
		}
		i, _ := index(h.X, h.Z)
		if err := g.SetSpecialIndex(i, h.Special); err != nil {
			return nil, fmt.Errorf("hex (%d,%d): %w", h.X, h.Z, err)
		}
	}

	for _, r := range f.Roads {
		i, err := index(r.X, r.Z)
		if err != nil {
			return nil, err
		}
		d, err := r.direction()
		if err != nil {
			return nil, fmt.Errorf("road: %w", err)
		}
		if err := g.AddRoad(i, d); err != nil {
			return nil, fmt.Errorf("road at (%d,%d): %w", r.X, r.Z, err)
		}
	}
	return g, nil
}

// FromGrid describes g relative to the given defaults. Each road is listed
// once, from the hex with the lower index.
func FromGrid(g *hexgrid.Grid, defaults Defaults) *File {
	f := &File{
		Width:    g.CellCountX,
		Height:   g.CellCountZ,
		Wrapping: g.Metrics.Wrapping(),
		Defaults: defaults,
	}
	for i := 0; i < g.Len(); i++ {
		h := g.Hex(i)
		entry := Hex{
			X:       h.X,
			Z:       h.Z,
			Urban:   h.UrbanLevel,
			Farm:    h.FarmLevel,
			Plant:   h.PlantLevel,
			Special: h.SpecialIndex,
			Walled:  h.Walled,
		}
		changed := entry != Hex{X: h.X, Z: h.Z}
		if h.Elevation != defaults.Elevation {
			entry.Elevation = intPtr(h.Elevation)
			changed = true
		}
		if h.WaterLevel != defaults.WaterLevel {
			entry.WaterLevel = intPtr(h.WaterLevel)
			changed = true
		}
		if h.TerrainTypeIndex != defaults.Terrain {
			entry.Terrain = intPtr(h.TerrainTypeIndex)
			changed = true
		}
		if changed {
			f.Hexes = append(f.Hexes, entry)
		}

		if d, ok := g.OutgoingRiver(i); ok {
			f.Rivers = append(f.Rivers, Edge{X: h.X, Z: h.Z, Direction: d.String()})
		}
		for _, d := range hexmetrics.Directions {
			if !g.HasRoadThroughEdge(i, d) {
				continue
			}
			if n, ok := g.Neighbor(i, d); ok && n.Index > i {
				f.Roads = append(f.Roads, Edge{X: h.X, Z: h.Z, Direction: d.String()})
			}
		}
	}
	return f
}

// CommonDefaults picks the most frequent elevation, water level and
// terrain of g, which keeps the hex list of FromGrid short. Ties go to
// the lower value.
func CommonDefaults(g *hexgrid.Grid) Defaults {
	elevation := map[int]int{}
	water := map[int]int{}
	terrain := map[int]int{}
	for i := 0; i < g.Len(); i++ {
		h := g.Hex(i)
		elevation[h.Elevation]++
		water[h.WaterLevel]++
		terrain[h.TerrainTypeIndex]++
	}
	return Defaults{
		Elevation:  mostFrequent(elevation),
		WaterLevel: mostFrequent(water),
		Terrain:    mostFrequent(terrain),
	}
}

func mostFrequent(counts map[int]int) int {
	best, bestCount := 0, 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best
}

func intPtr(v int) *int {
	return &v
}
