package hexgrid

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/hexmesh/internal/hexmetrics"
)

func newTestGrid(t *testing.T, countX, countZ int, wrapping bool) *Grid {
	t.Helper()
	g, err := NewGrid(Options{
		CellCountX: countX,
		CellCountZ: countZ,
		Wrapping:   wrapping,
		Metrics:    hexmetrics.Default(),
	})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return g
}

func index(g *Grid, x, z int) int {
	h, ok := g.HexAt(x, z)
	if !ok {
		panic("hex outside test grid")
	}
	return h.Index
}

func TestNewGridRejectsPartialChunks(t *testing.T) {
	_, err := NewGrid(Options{CellCountX: 7, CellCountZ: 5, Metrics: hexmetrics.Default()})
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewGrid() error = %v, want %v", err, ErrInvalidSize)
	}
}

func TestNeighborLayout(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)

	tests := []struct {
		x, z   int
		d      hexmetrics.Direction
		nx, nz int
		ok     bool
	}{
		{1, 1, hexmetrics.E, 2, 1, true},
		{1, 1, hexmetrics.W, 0, 1, true},
		{1, 1, hexmetrics.NE, 2, 2, true},
		{1, 1, hexmetrics.NW, 1, 2, true},
		{1, 1, hexmetrics.SE, 2, 0, true},
		{1, 1, hexmetrics.SW, 1, 0, true},
		{2, 2, hexmetrics.SW, 1, 1, true},
		{2, 2, hexmetrics.SE, 2, 1, true},
		{0, 0, hexmetrics.W, 0, 0, false},
		{0, 0, hexmetrics.SW, 0, 0, false},
		{4, 1, hexmetrics.E, 0, 0, false},
	}
	for _, tt := range tests {
		i := index(g, tt.x, tt.z)
		n, ok := g.Neighbor(i, tt.d)
		if ok != tt.ok {
			t.Errorf("Neighbor((%d,%d), %v) ok = %v, want %v", tt.x, tt.z, tt.d, ok, tt.ok)
			continue
		}
		if ok && (n.X != tt.nx || n.Z != tt.nz) {
			t.Errorf("Neighbor((%d,%d), %v) = (%d,%d), want (%d,%d)", tt.x, tt.z, tt.d, n.X, n.Z, tt.nx, tt.nz)
		}
	}
}

func TestWrappingNeighbors(t *testing.T) {
	g := newTestGrid(t, 5, 5, true)
	if g.Metrics.WrapSize != 5 {
		t.Fatalf("WrapSize = %d, want 5", g.Metrics.WrapSize)
	}

	tests := []struct {
		x, z   int
		d      hexmetrics.Direction
		nx, nz int
	}{
		{4, 0, hexmetrics.E, 0, 0},
		{0, 0, hexmetrics.W, 4, 0},
		{0, 2, hexmetrics.SW, 4, 1},
		{4, 1, hexmetrics.SE, 0, 0},
		{4, 1, hexmetrics.NE, 0, 2},
	}
	for _, tt := range tests {
		n, ok := g.Neighbor(index(g, tt.x, tt.z), tt.d)
		if !ok || n.X != tt.nx || n.Z != tt.nz {
			t.Errorf("Neighbor((%d,%d), %v) = %v, %v, want (%d,%d)", tt.x, tt.z, tt.d, n, ok, tt.nx, tt.nz)
		}
	}

	if h, ok := g.HexAt(-1, 0); !ok || h.X != 4 {
		t.Errorf("HexAt(-1, 0) = %v, %v, want x=4", h, ok)
	}
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	for _, wrapping := range []bool{false, true} {
		g := newTestGrid(t, 10, 5, wrapping)
		for i := 0; i < g.Len(); i++ {
			for _, d := range hexmetrics.Directions {
				n, ok := g.Neighbor(i, d)
				if !ok {
					continue
				}
				back, ok := g.Neighbor(n.Index, d.Opposite())
				if !ok || back.Index != i {
					t.Errorf("wrapping=%v: hex %d %v -> %d has no mirrored edge", wrapping, i, d, n.Index)
				}
			}
		}
	}
}

func TestChunkAssignment(t *testing.T) {
	g := newTestGrid(t, 10, 10, false)
	chunks := g.Chunks()
	if len(chunks) != 4 {
		t.Fatalf("len(Chunks()) = %d, want 4", len(chunks))
	}
	for _, c := range chunks {
		if got := len(c.Hexes()); got != 25 {
			t.Errorf("chunk %d holds %d hexes, want 25", c.Index, got)
		}
	}
	target := index(g, 7, 3)
	found := false
	for _, h := range chunks[1].Hexes() {
		if h == target {
			found = true
		}
	}
	if !found {
		t.Error("hex (7,3) is not in chunk 1")
	}
	if c := g.Hex(target).ColumnIndex; c != 1 {
		t.Errorf("ColumnIndex = %d, want 1", c)
	}
}

func TestSurfaceHeights(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	i := index(g, 2, 2)
	if err := g.SetElevation(i, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.SetWaterLevel(i, 3); err != nil {
		t.Fatal(err)
	}

	h := g.Hex(i)
	checks := []struct {
		name      string
		got, want float32
	}{
		{"Position.Y", h.Position.Y, 6},
		{"StreamBedY", h.StreamBedY, 0.75},
		{"RiverSurfaceY", h.RiverSurfaceY, 4.5},
		{"WaterSurfaceY", h.WaterSurfaceY, 7.5},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !h.IsUnderwater() {
		t.Error("hex below its water level should be underwater")
	}
}

func TestElevationGraphSymmetry(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	for i := 0; i < g.Len(); i++ {
		h := g.Hex(i)
		if err := g.SetElevation(i, (h.X*7+h.Z*3)%5); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < g.Len(); i++ {
		for _, d := range hexmetrics.Directions {
			n, ok := g.Neighbor(i, d)
			if !ok {
				continue
			}
			ab := g.EdgeType(i, d)
			ba := g.EdgeType(n.Index, d.Opposite())
			if ab != ba {
				t.Errorf("EdgeType(%d,%d) = %v, reverse = %v", i, n.Index, ab, ba)
			}
			want := hexmetrics.GetEdgeType(g.Hex(i).Elevation, n.Elevation)
			if ab != want {
				t.Errorf("EdgeType(%d,%d) = %v, want %v", i, n.Index, ab, want)
			}
			if got := g.EdgeTypeBetween(i, n.Index); got != want {
				t.Errorf("EdgeTypeBetween(%d,%d) = %v, want %v", i, n.Index, got, want)
			}
		}
	}
}

func TestEmptyGraphs(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	for i := 0; i < g.Len(); i++ {
		if g.HasRiver(i) || g.HasRoads(i) || g.HasRiverBeginOrEnd(i) {
			t.Fatalf("hex %d reports rivers or roads on an empty map", i)
		}
	}
	if !g.Rivers().Empty() || !g.Roads().Empty() {
		t.Error("graphs of a fresh grid should be empty")
	}
}

func TestStraightRiverThroughTwoHexes(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	a := index(g, 1, 1)
	b := index(g, 2, 1)
	if err := g.SetOutgoingRiver(a, hexmetrics.E); err != nil {
		t.Fatal(err)
	}

	if g.HasStraightRiver(a) {
		t.Error("HasStraightRiver(a) = true, want false")
	}
	if !g.HasRiverBeginOrEnd(a) || !g.HasRiverBeginOrEnd(b) {
		t.Error("both ends of a single segment should be begin or end hexes")
	}
	if d := g.RiverBeginOrEndDirection(b); d != hexmetrics.W {
		t.Errorf("RiverBeginOrEndDirection(b) = %v, want W", d)
	}

	if err := g.SetOutgoingRiver(b, hexmetrics.E); err != nil {
		t.Fatal(err)
	}
	if !g.HasStraightRiver(b) {
		t.Error("HasStraightRiver(b) = false, want true")
	}
	if !g.HasRiverThroughEdge(b, hexmetrics.W) || !g.HasRiverThroughEdge(b, hexmetrics.E) {
		t.Error("river should cross both edges of b")
	}
}

func TestRiverTopologyInvariant(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	center := index(g, 2, 2)

	// Point every neighbor into the center, then redirect the center.
	for _, d := range hexmetrics.Directions {
		n, _ := g.Neighbor(center, d)
		if err := g.SetOutgoingRiver(n.Index, d.Opposite()); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.SetOutgoingRiver(center, hexmetrics.W); err != nil {
		t.Fatal(err)
	}

	in, out := 0, 0
	for _, d := range hexmetrics.Directions {
		n, _ := g.Neighbor(center, d)
		if g.HasRiverThroughEdge(center, d) {
			if dir, ok := g.IncomingRiver(center); ok && dir == d {
				in++
			}
			if dir, ok := g.OutgoingRiver(center); ok && dir == d {
				out++
			}
		}
		if g.HasIncomingRiver(n.Index) && g.HasOutgoingRiver(n.Index) {
			t.Errorf("neighbor %v has both river ends", d)
		}
	}
	if in > 1 || out > 1 {
		t.Errorf("center has %d incoming and %d outgoing rivers", in, out)
	}
	if g.Rivers().EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.Rivers().EdgeCount())
	}
}

func TestRiverReversalDropsIncoming(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	a := index(g, 1, 1)
	b := index(g, 2, 1)
	if err := g.SetOutgoingRiver(b, hexmetrics.W); err != nil {
		t.Fatal(err)
	}
	if err := g.SetOutgoingRiver(a, hexmetrics.E); err != nil {
		t.Fatal(err)
	}
	if g.HasIncomingRiver(a) || g.HasOutgoingRiver(b) {
		t.Error("reversing a river should remove the opposite segment")
	}
	if g.Rivers().EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.Rivers().EdgeCount())
	}
}

func TestUphillRivers(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	a := index(g, 1, 1)
	b := index(g, 2, 1)
	if err := g.SetElevation(b, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.SetOutgoingRiver(a, hexmetrics.E); !errors.Is(err, ErrUphillRiver) {
		t.Errorf("SetOutgoingRiver() error = %v, want %v", err, ErrUphillRiver)
	}

	// A lake at the neighbor's elevation may drain onto it.
	if err := g.SetWaterLevel(a, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.SetOutgoingRiver(a, hexmetrics.E); err != nil {
		t.Errorf("SetOutgoingRiver() from lake error = %v", err)
	}

	// Raising the destination above the lake drops the river.
	if err := g.SetElevation(b, 2); err != nil {
		t.Fatal(err)
	}
	if g.HasRiver(a) || g.HasRiver(b) {
		t.Error("river survived becoming uphill")
	}

	if err := g.SetOutgoingRiver(index(g, 0, 0), hexmetrics.W); !errors.Is(err, ErrNoNeighbor) {
		t.Errorf("SetOutgoingRiver() off map error = %v, want %v", err, ErrNoNeighbor)
	}
}

func TestRoadRules(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	a := index(g, 1, 1)
	b := index(g, 2, 1)
	c := index(g, 1, 2)

	if err := g.AddRoad(a, hexmetrics.E); err != nil {
		t.Fatalf("AddRoad() error = %v", err)
	}
	if !g.HasRoadThroughEdge(b, hexmetrics.W) {
		t.Error("road missing on neighbor side")
	}

	// A river on the edge replaces the road and blocks new ones.
	if err := g.SetOutgoingRiver(a, hexmetrics.E); err != nil {
		t.Fatal(err)
	}
	if g.HasRoadThroughEdge(a, hexmetrics.E) {
		t.Error("river did not remove the road")
	}
	if err := g.AddRoad(a, hexmetrics.E); !errors.Is(err, ErrInvalidRoad) {
		t.Errorf("AddRoad() over river error = %v, want %v", err, ErrInvalidRoad)
	}

	// Cliffs block roads and raising a hex drops roads that became cliffs.
	if err := g.AddRoad(a, hexmetrics.NW); err != nil {
		t.Fatal(err)
	}
	if err := g.SetElevation(c, 2); err != nil {
		t.Fatal(err)
	}
	if g.HasRoadThroughEdge(a, hexmetrics.NW) {
		t.Error("road survived a cliff")
	}
	if err := g.AddRoad(a, hexmetrics.NW); !errors.Is(err, ErrInvalidRoad) {
		t.Errorf("AddRoad() up a cliff error = %v, want %v", err, ErrInvalidRoad)
	}
}

func TestSpecialFeatures(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	a := index(g, 1, 1)
	b := index(g, 2, 1)
	if err := g.AddRoad(a, hexmetrics.W); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSpecialIndex(a, 2); err != nil {
		t.Fatal(err)
	}
	if g.HasRoads(a) {
		t.Error("special feature did not remove roads")
	}
	if err := g.AddRoad(a, hexmetrics.E); !errors.Is(err, ErrInvalidRoad) {
		t.Errorf("AddRoad() on special error = %v, want %v", err, ErrInvalidRoad)
	}

	// Rivers clear specials on both hexes and reject new ones.
	if err := g.SetOutgoingRiver(a, hexmetrics.E); err != nil {
		t.Fatal(err)
	}
	if g.Hex(a).IsSpecial() {
		t.Error("river did not clear the special feature")
	}
	if err := g.SetSpecialIndex(b, 1); !errors.Is(err, ErrSpecialOnRiver) {
		t.Errorf("SetSpecialIndex() on river error = %v, want %v", err, ErrSpecialOnRiver)
	}
}

func TestSetDevelopment(t *testing.T) {
	g := newTestGrid(t, 5, 5, false)
	if err := g.SetDevelopment(0, 1, 2, 3); err != nil {
		t.Fatal(err)
	}
	h := g.Hex(0)
	if h.UrbanLevel != 1 || h.FarmLevel != 2 || h.PlantLevel != 3 {
		t.Errorf("levels = %d,%d,%d, want 1,2,3", h.UrbanLevel, h.FarmLevel, h.PlantLevel)
	}
	if err := g.SetDevelopment(0, 4, 0, 0); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("SetDevelopment() error = %v, want %v", err, ErrInvalidLevel)
	}
	if err := g.SetElevation(g.Len(), 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetElevation() error = %v, want %v", err, ErrIndexOutOfRange)
	}
}

func TestChunkOverflowIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewChunk(3, 0, 0, 2, 2, zap.New(core))

	if err := c.AddHex(1, 10); err != nil {
		t.Fatalf("AddHex() error = %v", err)
	}
	err := c.AddHex(4, 11)
	if !errors.Is(err, ErrChunkIndexOutOfRange) {
		t.Fatalf("AddHex() error = %v, want %v", err, ErrChunkIndexOutOfRange)
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d warnings, want 1", logs.Len())
	}
	hexes := c.Hexes()
	if len(hexes) != 1 || hexes[0] != 10 {
		t.Errorf("Hexes() = %v, want [10]", hexes)
	}
}
