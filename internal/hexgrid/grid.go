package hexgrid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Options configure a new Grid.
type Options struct {
	CellCountX int
	CellCountZ int

	// Wrapping joins the east and west borders of the map.
	Wrapping bool

	Metrics hexmetrics.Metrics

	// Noise drives the vertical jitter of hex centers. Nil disables it.
	Noise hexmetrics.Sampler

	Logger *zap.Logger
}

// Grid owns every hex of a map and the graphs relating them. Hex
// attributes must be changed through the Grid so derived heights and the
// graphs stay consistent.
type Grid struct {
	Metrics hexmetrics.Metrics

	CellCountX, CellCountZ   int
	ChunkCountX, ChunkCountZ int

	hexes     []Hex
	chunks    []*Chunk
	adjacency *AdjacencyGraph
	rivers    *RiverGraph
	roads     *RoadGraph
	elevation *ElevationGraph

	noise hexmetrics.Sampler
	log   *zap.Logger
}

// NewGrid lays out CellCountX*CellCountZ hexes in offset coordinates,
// links their neighbors and distributes them over chunks.
func NewGrid(opts Options) (*Grid, error) {
	m := opts.Metrics
	if m.ChunkSizeX <= 0 || m.ChunkSizeZ <= 0 ||
		opts.CellCountX <= 0 || opts.CellCountZ <= 0 ||
		opts.CellCountX%m.ChunkSizeX != 0 || opts.CellCountZ%m.ChunkSizeZ != 0 {
		return nil, fmt.Errorf("%dx%d cells, %dx%d chunks: %w",
			opts.CellCountX, opts.CellCountZ, m.ChunkSizeX, m.ChunkSizeZ, ErrInvalidSize)
	}
	m.WrapSize = 0
	if opts.Wrapping {
		m.WrapSize = opts.CellCountX
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	g := &Grid{
		Metrics:     m,
		CellCountX:  opts.CellCountX,
		CellCountZ:  opts.CellCountZ,
		ChunkCountX: opts.CellCountX / m.ChunkSizeX,
		ChunkCountZ: opts.CellCountZ / m.ChunkSizeZ,
		noise:       opts.Noise,
		log:         log,
	}

	g.chunks = make([]*Chunk, 0, g.ChunkCountX*g.ChunkCountZ)
	for z, i := 0, 0; z < g.ChunkCountZ; z++ {
		for x := 0; x < g.ChunkCountX; x, i = x+1, i+1 {
			g.chunks = append(g.chunks, NewChunk(i, x, z, m.ChunkSizeX, m.ChunkSizeZ, log))
		}
	}

	n := g.CellCountX * g.CellCountZ
	g.hexes = make([]Hex, n)
	for z, i := 0, 0; z < g.CellCountZ; z++ {
		for x := 0; x < g.CellCountX; x, i = x+1, i+1 {
			g.createHex(x, z, i)
		}
	}

	adj, err := NewAdjacencyGraphFromNeighbors(g.offsetNeighbors(opts.Wrapping))
	if err != nil {
		return nil, fmt.Errorf("link hexes: %w", err)
	}
	g.adjacency = adj
	g.rivers = NewRiverGraph(n)
	g.roads = NewRoadGraph(n)
	g.elevation = NewElevationGraph(adj, g.elevationOf)

	log.Debug("grid created",
		zap.Int("cells_x", g.CellCountX),
		zap.Int("cells_z", g.CellCountZ),
		zap.Int("chunks", len(g.chunks)),
		zap.Bool("wrapping", opts.Wrapping))
	return g, nil
}

func (g *Grid) createHex(x, z, i int) {
	m := g.Metrics
	h := &g.hexes[i]
	h.Index = i
	h.X, h.Z = x, z
	h.ColumnIndex = x / m.ChunkSizeX
	h.Position = math.Vec3{
		X: (float32(x) + float32(z)*0.5 - float32(z/2)) * m.InnerDiameter(),
		Z: float32(z) * m.OuterRadius * 1.5,
	}
	g.refreshHeights(h)

	chunkX, chunkZ := x/m.ChunkSizeX, z/m.ChunkSizeZ
	chunk := g.chunks[chunkX+chunkZ*g.ChunkCountX]
	local := (x - chunkX*m.ChunkSizeX) + (z-chunkZ*m.ChunkSizeZ)*m.ChunkSizeX
	_ = chunk.AddHex(local, i)
}

// offsetNeighbors computes the raw neighbor lists of the offset layout.
// Even rows are shifted half a hex to the west of odd rows.
func (g *Grid) offsetNeighbors(wrapping bool) [][hexmetrics.DirectionCount]int {
	w := g.CellCountX
	out := make([][hexmetrics.DirectionCount]int, len(g.hexes))
	for i := range out {
		for d := range out[i] {
			out[i][d] = none
		}
	}
	link := func(a int, d hexmetrics.Direction, b int) {
		out[a][d] = b
		out[b][d.Opposite()] = a
	}
	for i := range g.hexes {
		x, z := g.hexes[i].X, g.hexes[i].Z
		if x > 0 {
			link(i, hexmetrics.W, i-1)
			if wrapping && x == w-1 {
				link(i, hexmetrics.E, i-x)
			}
		}
		if z == 0 {
			continue
		}
		if z&1 == 0 {
			link(i, hexmetrics.SE, i-w)
			if x > 0 {
				link(i, hexmetrics.SW, i-w-1)
			} else if wrapping {
				link(i, hexmetrics.SW, i-1)
			}
		} else {
			link(i, hexmetrics.SW, i-w)
			if x < w-1 {
				link(i, hexmetrics.SE, i-w+1)
			} else if wrapping {
				link(i, hexmetrics.SE, i-w*2+1)
			}
		}
	}
	return out
}

func (g *Grid) refreshHeights(h *Hex) {
	m := g.Metrics
	step := m.ElevationStep
	h.Position.Y = float32(h.Elevation)*step + m.ElevationPerturbation(g.noise, h.Position)
	h.StreamBedY = (float32(h.Elevation) + m.StreamBedElevationOffset) * step
	h.RiverSurfaceY = (float32(h.Elevation) + m.WaterElevationOffset) * step
	h.WaterSurfaceY = (float32(h.WaterLevel) + m.WaterElevationOffset) * step
}

func (g *Grid) elevationOf(i int) int {
	return g.hexes[i].Elevation
}

// Len returns the number of hexes.
func (g *Grid) Len() int {
	return len(g.hexes)
}

// Hex returns the hex with the given index.
func (g *Grid) Hex(i int) *Hex {
	return &g.hexes[i]
}

// HexAt returns the hex at offset coordinates x, z.
func (g *Grid) HexAt(x, z int) (*Hex, bool) {
	if z < 0 || z >= g.CellCountZ {
		return nil, false
	}
	if g.Metrics.Wrapping() {
		x = ((x % g.CellCountX) + g.CellCountX) % g.CellCountX
	}
	if x < 0 || x >= g.CellCountX {
		return nil, false
	}
	return &g.hexes[x+z*g.CellCountX], true
}

// Chunks returns the chunks in row-major order.
func (g *Grid) Chunks() []*Chunk {
	return g.chunks
}

// Noise returns the sampler used for hex center jitter.
func (g *Grid) Noise() hexmetrics.Sampler {
	return g.noise
}

// Adjacency exposes the adjacency graph.
func (g *Grid) Adjacency() *AdjacencyGraph { return g.adjacency }

// Rivers exposes the river graph.
func (g *Grid) Rivers() *RiverGraph { return g.rivers }

// Roads exposes the road graph.
func (g *Grid) Roads() *RoadGraph { return g.roads }

// Neighbor returns the hex next to i in direction d.
func (g *Grid) Neighbor(i int, d hexmetrics.Direction) (*Hex, bool) {
	n, ok := g.adjacency.Neighbor(i, d)
	if !ok {
		return nil, false
	}
	return &g.hexes[n], true
}

// EdgeType classifies the edge leaving i in direction d.
func (g *Grid) EdgeType(i int, d hexmetrics.Direction) hexmetrics.EdgeType {
	return g.elevation.EdgeType(i, d)
}

// EdgeTypeBetween classifies the edge between two hexes. Hexes that are not
// adjacent are compared by elevation alone.
func (g *Grid) EdgeTypeBetween(a, b int) hexmetrics.EdgeType {
	if d, ok := g.adjacency.DirectionTo(a, b); ok {
		return g.elevation.EdgeType(a, d)
	}
	return hexmetrics.GetEdgeType(g.hexes[a].Elevation, g.hexes[b].Elevation)
}

// ElevationDifference returns |elevation(i) - elevation(neighbor)|, or 0
// without a neighbor.
func (g *Grid) ElevationDifference(i int, d hexmetrics.Direction) int {
	n, ok := g.Neighbor(i, d)
	if !ok {
		return 0
	}
	diff := g.hexes[i].Elevation - n.Elevation
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// HasIncomingRiver reports whether a river flows into i.
func (g *Grid) HasIncomingRiver(i int) bool {
	_, ok := g.rivers.Incoming(i)
	return ok
}

// HasOutgoingRiver reports whether a river flows out of i.
func (g *Grid) HasOutgoingRiver(i int) bool {
	_, ok := g.rivers.Outgoing(i)
	return ok
}

// IncomingRiver returns the direction a river enters i from.
func (g *Grid) IncomingRiver(i int) (hexmetrics.Direction, bool) {
	return g.rivers.Incoming(i)
}

// OutgoingRiver returns the direction a river leaves i.
func (g *Grid) OutgoingRiver(i int) (hexmetrics.Direction, bool) {
	return g.rivers.Outgoing(i)
}

// HasRiver reports whether any river touches i.
func (g *Grid) HasRiver(i int) bool {
	if g.rivers.Empty() {
		return false
	}
	return g.HasIncomingRiver(i) || g.HasOutgoingRiver(i)
}

// HasRiverBeginOrEnd reports whether a river starts or ends in i.
func (g *Grid) HasRiverBeginOrEnd(i int) bool {
	if g.rivers.Empty() {
		return false
	}
	return g.HasIncomingRiver(i) != g.HasOutgoingRiver(i)
}

// RiverBeginOrEndDirection returns the only river edge of a hex where a
// river starts or ends.
func (g *Grid) RiverBeginOrEndDirection(i int) hexmetrics.Direction {
	if d, ok := g.rivers.Incoming(i); ok {
		return d
	}
	d, _ := g.rivers.Outgoing(i)
	return d
}

// HasStraightRiver reports whether the river passes straight through i.
func (g *Grid) HasStraightRiver(i int) bool {
	in, okIn := g.rivers.Incoming(i)
	out, okOut := g.rivers.Outgoing(i)
	return okIn && okOut && in == out.Opposite()
}

// HasRiverThroughEdge reports whether a river crosses edge d of i.
func (g *Grid) HasRiverThroughEdge(i int, d hexmetrics.Direction) bool {
	if g.rivers.Empty() {
		return false
	}
	if in, ok := g.rivers.Incoming(i); ok && in == d {
		return true
	}
	out, ok := g.rivers.Outgoing(i)
	return ok && out == d
}

// HasRoads reports whether i has any road.
func (g *Grid) HasRoads(i int) bool {
	return g.roads.Any(i)
}

// HasRoadThroughEdge reports whether a road crosses edge d of i.
func (g *Grid) HasRoadThroughEdge(i int, d hexmetrics.Direction) bool {
	return g.roads.Has(i, d)
}

func (g *Grid) check(i int) error {
	if i < 0 || i >= len(g.hexes) {
		return fmt.Errorf("hex %d: %w", i, ErrIndexOutOfRange)
	}
	return nil
}

// isValidRiverDestination reports whether water can flow from one hex to
// another: downhill, level, or out of a lake onto its shore.
func isValidRiverDestination(from, to *Hex) bool {
	return from.Elevation >= to.Elevation || from.WaterLevel == to.Elevation
}

// SetElevation changes the elevation of i. Rivers that would now flow
// uphill and roads that would climb a cliff are removed.
func (g *Grid) SetElevation(i, elevation int) error {
	if err := g.check(i); err != nil {
		return err
	}
	h := &g.hexes[i]
	if h.Elevation == elevation {
		return nil
	}
	h.Elevation = elevation
	g.refreshHeights(h)
	g.elevation.Refresh(g.adjacency, i, g.elevationOf)
	g.validateRivers(i)
	for _, d := range hexmetrics.Directions {
		if g.roads.Has(i, d) && g.ElevationDifference(i, d) > 1 {
			n, _ := g.adjacency.Neighbor(i, d)
			g.roads.Set(i, d, n, false)
			g.log.Debug("road removed by elevation change",
				zap.Int("hex", i), zap.Stringer("direction", d))
		}
	}
	return nil
}

// SetWaterLevel changes the water level of i.
func (g *Grid) SetWaterLevel(i, level int) error {
	if err := g.check(i); err != nil {
		return err
	}
	h := &g.hexes[i]
	if h.WaterLevel == level {
		return nil
	}
	h.WaterLevel = level
	g.refreshHeights(h)
	g.validateRivers(i)
	return nil
}

func (g *Grid) validateRivers(i int) {
	h := &g.hexes[i]
	if d, ok := g.rivers.Outgoing(i); ok {
		n, _ := g.Neighbor(i, d)
		if !isValidRiverDestination(h, n) {
			g.rivers.UnlinkOutgoing(i)
			g.log.Debug("outgoing river removed", zap.Int("hex", i), zap.Stringer("direction", d))
		}
	}
	if d, ok := g.rivers.Incoming(i); ok {
		n, _ := g.Neighbor(i, d)
		if !isValidRiverDestination(n, h) {
			g.rivers.UnlinkIncoming(i)
			g.log.Debug("incoming river removed", zap.Int("hex", i), zap.Stringer("direction", d))
		}
	}
}

// SetOutgoingRiver makes a river flow from i into its neighbor in
// direction d, replacing earlier rivers that would conflict. Specials on
// both hexes and a road on the edge are removed.
func (g *Grid) SetOutgoingRiver(i int, d hexmetrics.Direction) error {
	if err := g.check(i); err != nil {
		return err
	}
	if out, ok := g.rivers.Outgoing(i); ok && out == d {
		return nil
	}
	n, ok := g.adjacency.Neighbor(i, d)
	if !ok {
		return fmt.Errorf("river from hex %d %v: %w", i, d, ErrNoNeighbor)
	}
	if !isValidRiverDestination(&g.hexes[i], &g.hexes[n]) {
		g.log.Debug("uphill river rejected", zap.Int("hex", i), zap.Stringer("direction", d))
		return fmt.Errorf("river from hex %d %v: %w", i, d, ErrUphillRiver)
	}
	if in, ok := g.rivers.Incoming(i); ok && in == d {
		g.rivers.UnlinkIncoming(i)
	}
	g.rivers.Link(i, d, n)
	g.hexes[i].SpecialIndex = 0
	g.hexes[n].SpecialIndex = 0
	g.roads.Set(i, d, n, false)
	return nil
}

// RemoveOutgoingRiver removes the river leaving i.
func (g *Grid) RemoveOutgoingRiver(i int) {
	g.rivers.UnlinkOutgoing(i)
}

// RemoveIncomingRiver removes the river entering i.
func (g *Grid) RemoveIncomingRiver(i int) {
	g.rivers.UnlinkIncoming(i)
}

// RemoveRiver removes both river segments of i.
func (g *Grid) RemoveRiver(i int) {
	g.rivers.UnlinkOutgoing(i)
	g.rivers.UnlinkIncoming(i)
}

// AddRoad adds a road from i to its neighbor in direction d. Roads cannot
// cross rivers, touch special hexes or climb cliffs.
func (g *Grid) AddRoad(i int, d hexmetrics.Direction) error {
	if err := g.check(i); err != nil {
		return err
	}
	if g.roads.Has(i, d) {
		return nil
	}
	n, ok := g.adjacency.Neighbor(i, d)
	if !ok {
		return fmt.Errorf("road from hex %d %v: %w", i, d, ErrNoNeighbor)
	}
	if g.HasRiverThroughEdge(i, d) || g.hexes[i].IsSpecial() || g.hexes[n].IsSpecial() ||
		g.ElevationDifference(i, d) > 1 {
		g.log.Debug("road rejected", zap.Int("hex", i), zap.Stringer("direction", d))
		return fmt.Errorf("road from hex %d %v: %w", i, d, ErrInvalidRoad)
	}
	g.roads.Set(i, d, n, true)
	return nil
}

// RemoveRoads removes every road of i.
func (g *Grid) RemoveRoads(i int) {
	for _, d := range hexmetrics.Directions {
		if g.roads.Has(i, d) {
			n, _ := g.adjacency.Neighbor(i, d)
			g.roads.Set(i, d, n, false)
		}
	}
}

// SetSpecialIndex places special feature s on i, or clears it with 0.
// Specials remove roads and are not allowed on rivers.
func (g *Grid) SetSpecialIndex(i, s int) error {
	if err := g.check(i); err != nil {
		return err
	}
	h := &g.hexes[i]
	if h.SpecialIndex == s {
		return nil
	}
	if s > 0 && g.HasRiver(i) {
		return fmt.Errorf("special %d on hex %d: %w", s, i, ErrSpecialOnRiver)
	}
	h.SpecialIndex = s
	if s > 0 {
		g.RemoveRoads(i)
	}
	return nil
}

// SetWalled sets the fortification flag of i.
func (g *Grid) SetWalled(i int, walled bool) error {
	if err := g.check(i); err != nil {
		return err
	}
	g.hexes[i].Walled = walled
	return nil
}

// SetTerrainType sets the terrain type index of i.
func (g *Grid) SetTerrainType(i, t int) error {
	if err := g.check(i); err != nil {
		return err
	}
	g.hexes[i].TerrainTypeIndex = t
	return nil
}

// SetDevelopment sets the urban, farm and plant levels of i.
func (g *Grid) SetDevelopment(i, urban, farm, plant int) error {
	if err := g.check(i); err != nil {
		return err
	}
	for _, l := range [...]int{urban, farm, plant} {
		if l < 0 || l > hexmetrics.MaxDevelopmentLevel {
			return fmt.Errorf("hex %d level %d: %w", i, l, ErrInvalidLevel)
		}
	}
	h := &g.hexes[i]
	h.UrbanLevel, h.FarmLevel, h.PlantLevel = urban, farm, plant
	return nil
}
