// Package triangulate turns the hexes of a chunk into geometry: terrain
// fans, strips and terraces, rivers, roads, open water, shores, estuaries,
// walls and feature placements.
//
// A Triangulator owns the buffers of one chunk and is not safe for
// concurrent use. Separate chunks can be triangulated in parallel with
// separate Triangulators as long as nobody edits the grid meanwhile.
package triangulate

import (
	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/engine/feature"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Options configure a Triangulator.
type Options struct {
	Grid *hexgrid.Grid

	// Hash picks feature prefabs, rotations and wall towers.
	Hash hexmetrics.Sampler

	// Variants is the number of prefabs per feature collection.
	Variants int

	// SmoothNormals averages normals of coincident vertices after a pass.
	SmoothNormals bool

	Logger *zap.Logger
}

// Triangulator builds the layers of one chunk at a time.
type Triangulator struct {
	grid     *hexgrid.Grid
	metrics  hexmetrics.Metrics
	layers   *mesh.Set
	features *feature.Manager
	smooth   bool
	log      *zap.Logger

	terrain    *mesh.Layer
	rivers     *mesh.Layer
	roads      *mesh.Layer
	water      *mesh.Layer
	waterShore *mesh.Layer
	estuaries  *mesh.Layer

	edge edgeContext
}

// New creates a Triangulator for hexes of opts.Grid.
func New(opts Options) *Triangulator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g := opts.Grid
	m := g.Metrics
	noise := g.Noise()
	layers := mesh.NewSet(func(p math.Vec3) math.Vec3 {
		return m.Perturb(noise, p)
	})

	t := &Triangulator{
		grid:       g,
		metrics:    m,
		layers:     layers,
		smooth:     opts.SmoothNormals,
		log:        log,
		terrain:    layers.Layer(mesh.Terrain),
		rivers:     layers.Layer(mesh.Rivers),
		roads:      layers.Layer(mesh.Roads),
		water:      layers.Layer(mesh.Water),
		waterShore: layers.Layer(mesh.WaterShore),
		estuaries:  layers.Layer(mesh.Estuaries),
	}
	t.features = feature.NewManager(feature.Options{
		Grid:     g,
		Hash:     opts.Hash,
		Walls:    layers.Layer(mesh.Walls),
		Variants: opts.Variants,
	})
	return t
}

// Layers returns the buffers of the last pass.
func (t *Triangulator) Layers() *mesh.Set {
	return t.layers
}

// Placements returns the feature placements of the last pass.
func (t *Triangulator) Placements() []feature.Placement {
	return t.features.Placements
}

// Triangulate rebuilds every layer from the hexes of c.
func (t *Triangulator) Triangulate(c *hexgrid.Chunk) {
	t.TriangulateHexes(c.Hexes())

	vertices, triangles := t.layers.Stats()
	t.log.Debug("chunk triangulated",
		zap.Int("chunk", c.Index),
		zap.Ints("vertices", vertices[:]),
		zap.Ints("triangles", triangles[:]),
		zap.Int("placements", len(t.features.Placements)))
}

// TriangulateHexes clears the layers and rebuilds them from the given
// hexes.
func (t *Triangulator) TriangulateHexes(hexes []int) {
	t.layers.Clear()
	t.features.Clear()
	for _, i := range hexes {
		t.triangulateHex(t.grid.Hex(i))
	}
	t.layers.Apply(t.smooth)
}

func (t *Triangulator) triangulateHex(h *hexgrid.Hex) {
	for _, d := range hexmetrics.Directions {
		t.triangulateDirection(h, d)
	}
	if h.IsUnderwater() {
		return
	}
	if !t.grid.HasRiver(h.Index) && !t.grid.HasRoads(h.Index) {
		t.features.AddFeature(h, h.Position)
	}
	if h.IsSpecial() {
		t.features.AddSpecialFeature(h, h.Position)
	}
}

func (t *Triangulator) triangulateDirection(h *hexgrid.Hex, d hexmetrics.Direction) {
	e := t.edge.reset(t.metrics, t.grid, h, d)
	i := h.Index

	switch {
	case !t.grid.HasRiver(i):
		t.triangulateWithoutRiver(e)
	case t.grid.HasRiverThroughEdge(i, d):
		e.edge.V3.Y = h.StreamBedY
		if t.grid.HasRiverBeginOrEnd(i) {
			t.triangulateWithRiverBeginOrEnd(e)
		} else {
			t.triangulateWithRiver(e)
		}
	default:
		t.triangulateAdjacentToRiver(e)
	}

	if d <= hexmetrics.SE {
		t.triangulateConnection(e)
	}
	if h.IsUnderwater() {
		t.triangulateWater(e)
	}
}
