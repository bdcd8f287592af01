package mapfile

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
)

const sampleMap = `
width: 5
height: 5
defaults: {elevation: 1, terrain: 1}
hexes:
  - {x: 2, z: 2, elevation: 2, urban: 1, walled: true}
  - {x: 0, z: 0, special: 2}
rivers:
  - {x: 2, z: 2, direction: E}
roads:
  - {x: 1, z: 1, direction: E}
`

func mustParse(t *testing.T, doc string) *File {
	t.Helper()
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

func at(t *testing.T, g *hexgrid.Grid, x, z int) *hexgrid.Hex {
	t.Helper()
	h, ok := g.HexAt(x, z)
	if !ok {
		t.Fatalf("no hex at (%d,%d)", x, z)
	}
	return h
}

func TestParse(t *testing.T) {
	f := mustParse(t, sampleMap)

	if f.Width != 5 || f.Height != 5 {
		t.Errorf("size = %dx%d, want 5x5", f.Width, f.Height)
	}
	if f.Defaults.Elevation != 1 || f.Defaults.Terrain != 1 {
		t.Errorf("defaults = %+v", f.Defaults)
	}
	if len(f.Hexes) != 2 {
		t.Fatalf("len(Hexes) = %d, want 2", len(f.Hexes))
	}
	h := f.Hexes[0]
	if h.Elevation == nil || *h.Elevation != 2 {
		t.Errorf("hex elevation = %v, want 2", h.Elevation)
	}
	if h.WaterLevel != nil {
		t.Errorf("hex water level = %v, want unset", *h.WaterLevel)
	}
	if !h.Walled || h.Urban != 1 {
		t.Errorf("hex = %+v, want walled urban 1", h)
	}
	if len(f.Rivers) != 1 || f.Rivers[0].Direction != "E" {
		t.Errorf("rivers = %+v", f.Rivers)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("width: 5\nheight: 5\ncolour: red\n")); err == nil {
		t.Error("Parse() accepted an unknown key")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file returned no error")
	}
}

func TestBuild(t *testing.T) {
	g, err := mustParse(t, sampleMap).Build(hexmetrics.Default(), nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if h := at(t, g, 4, 4); h.Elevation != 1 || h.TerrainTypeIndex != 1 {
		t.Errorf("default hex elevation %d terrain %d, want 1 and 1", h.Elevation, h.TerrainTypeIndex)
	}

	town := at(t, g, 2, 2)
	if town.Elevation != 2 || town.UrbanLevel != 1 || !town.Walled {
		t.Errorf("town = %+v", town)
	}
	if d, ok := g.OutgoingRiver(town.Index); !ok || d != hexmetrics.E {
		t.Errorf("OutgoingRiver(town) = %v, %v, want E", d, ok)
	}
	if d, ok := g.IncomingRiver(at(t, g, 3, 2).Index); !ok || d != hexmetrics.W {
		t.Errorf("IncomingRiver(3,2) = %v, %v, want W", d, ok)
	}

	if !at(t, g, 0, 0).IsSpecial() || at(t, g, 0, 0).SpecialIndex != 2 {
		t.Errorf("special index = %d, want 2", at(t, g, 0, 0).SpecialIndex)
	}

	a, b := at(t, g, 1, 1), at(t, g, 2, 1)
	if !g.HasRoadThroughEdge(a.Index, hexmetrics.E) || !g.HasRoadThroughEdge(b.Index, hexmetrics.W) {
		t.Error("road (1,1)-(2,1) missing on one side")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "size not a chunk multiple",
			doc:  "width: 7\nheight: 5\n",
			want: hexgrid.ErrInvalidSize,
		},
		{
			name: "hex outside map",
			doc:  "width: 5\nheight: 5\nhexes: [{x: 9, z: 0, urban: 1}]\n",
			want: hexgrid.ErrIndexOutOfRange,
		},
		{
			name: "unknown direction",
			doc:  "width: 5\nheight: 5\nrivers: [{x: 2, z: 2, direction: north}]\n",
			want: ErrUnknownDirection,
		},
		{
			name: "development level",
			doc:  "width: 5\nheight: 5\nhexes: [{x: 1, z: 1, urban: 4}]\n",
			want: hexgrid.ErrInvalidLevel,
		},
		{
			name: "uphill river",
			doc:  "width: 5\nheight: 5\ndefaults: {elevation: 1}\nhexes: [{x: 2, z: 2, elevation: 0}]\nrivers: [{x: 2, z: 2, direction: E}]\n",
			want: hexgrid.ErrUphillRiver,
		},
		{
			name: "river leaves the map",
			doc:  "width: 5\nheight: 5\nrivers: [{x: 4, z: 2, direction: E}]\n",
			want: hexgrid.ErrNoNeighbor,
		},
		{
			name: "special on river",
			doc:  "width: 5\nheight: 5\nhexes: [{x: 2, z: 2, special: 1}]\nrivers: [{x: 2, z: 2, direction: E}]\n",
			want: hexgrid.ErrSpecialOnRiver,
		},
		{
			name: "road across river",
			doc:  "width: 5\nheight: 5\nrivers: [{x: 2, z: 2, direction: E}]\nroads: [{x: 2, z: 2, direction: E}]\n",
			want: hexgrid.ErrInvalidRoad,
		},
		{
			name: "road up a cliff",
			doc:  "width: 5\nheight: 5\nhexes: [{x: 2, z: 1, elevation: 3}]\nroads: [{x: 1, z: 1, direction: E}]\n",
			want: hexgrid.ErrInvalidRoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustParse(t, tt.doc).Build(hexmetrics.Default(), nil, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromGridListsRoadsOnce(t *testing.T) {
	g, err := mustParse(t, sampleMap).Build(hexmetrics.Default(), nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	f := FromGrid(g, Defaults{Elevation: 1, Terrain: 1})

	want := []Edge{{X: 1, Z: 1, Direction: "E"}}
	if !reflect.DeepEqual(f.Roads, want) {
		t.Errorf("Roads = %+v, want %+v", f.Roads, want)
	}
	if len(f.Hexes) != 2 {
		t.Errorf("len(Hexes) = %d, want only the two changed hexes", len(f.Hexes))
	}
}

// sameGrid compares every attribute and edge of two grids of equal size.
func sameGrid(t *testing.T, a, b *hexgrid.Grid) {
	t.Helper()
	if a.Len() != b.Len() {
		t.Fatalf("Len() = %d and %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		ha, hb := a.Hex(i), b.Hex(i)
		if ha.Elevation != hb.Elevation || ha.WaterLevel != hb.WaterLevel ||
			ha.TerrainTypeIndex != hb.TerrainTypeIndex || ha.UrbanLevel != hb.UrbanLevel ||
			ha.FarmLevel != hb.FarmLevel || ha.PlantLevel != hb.PlantLevel ||
			ha.SpecialIndex != hb.SpecialIndex || ha.Walled != hb.Walled {
			t.Errorf("hex %d differs: %+v vs %+v", i, ha, hb)
		}
		da, oka := a.OutgoingRiver(i)
		db, okb := b.OutgoingRiver(i)
		if oka != okb || (oka && da != db) {
			t.Errorf("hex %d outgoing river %v,%v vs %v,%v", i, da, oka, db, okb)
		}
		for _, d := range hexmetrics.Directions {
			if a.HasRoadThroughEdge(i, d) != b.HasRoadThroughEdge(i, d) {
				t.Errorf("hex %d road %v differs", i, d)
			}
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := hexmetrics.Default()
	g, err := Demo(DemoOptions{Width: 10, Height: 10, Seed: 7}, m, nil, nil)
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "maps", "demo.yaml")
	if err := FromGrid(g, Defaults{WaterLevel: 1}).Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rebuilt, err := f.Build(m, nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	sameGrid(t, g, rebuilt)
}

func TestDemoIsDeterministic(t *testing.T) {
	m := hexmetrics.Default()
	opts := DemoOptions{Width: 10, Height: 10, Seed: 42}

	a, err := Demo(opts, m, nil, nil)
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}
	b, err := Demo(opts, m, nil, nil)
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}
	sameGrid(t, a, b)
}

func TestDemoRespectsEditRules(t *testing.T) {
	for _, wrapping := range []bool{false, true} {
		g, err := Demo(DemoOptions{Width: 20, Height: 15, Wrapping: wrapping, Seed: 1234}, hexmetrics.Default(), nil, nil)
		if err != nil {
			t.Fatalf("Demo(wrapping=%v) error = %v", wrapping, err)
		}

		for i := 0; i < g.Len(); i++ {
			h := g.Hex(i)
			if h.Elevation < 0 || h.Elevation > 5 {
				t.Errorf("hex %d elevation %d outside 0..5", i, h.Elevation)
			}
			if h.TerrainTypeIndex != terrainFor(h.Elevation) {
				t.Errorf("hex %d terrain %d, want %d", i, h.TerrainTypeIndex, terrainFor(h.Elevation))
			}
			if h.IsSpecial() && g.HasRiver(i) {
				t.Errorf("hex %d has a special on a river", i)
			}
			if !h.IsUnderwater() && h.Walled != (h.UrbanLevel >= 2) {
				t.Errorf("hex %d walled %v with urban %d", i, h.Walled, h.UrbanLevel)
			}

			if d, ok := g.OutgoingRiver(i); ok {
				n, _ := g.Neighbor(i, d)
				if h.Elevation < n.Elevation && h.WaterLevel != n.Elevation {
					t.Errorf("river %d -> %d flows uphill", i, n.Index)
				}
				if in, ok := g.IncomingRiver(n.Index); !ok || in != d.Opposite() {
					t.Errorf("river %d -> %d not mirrored as incoming", i, n.Index)
				}
			}
			for _, d := range hexmetrics.Directions {
				if !g.HasRoadThroughEdge(i, d) {
					continue
				}
				if g.HasRiverThroughEdge(i, d) {
					t.Errorf("road %d %v crosses a river", i, d)
				}
				if g.ElevationDifference(i, d) > 1 {
					t.Errorf("road %d %v climbs a cliff", i, d)
				}
			}
		}
	}
}

func TestDemoSeedsDiffer(t *testing.T) {
	m := hexmetrics.Default()
	a, err := Demo(DemoOptions{Width: 10, Height: 10, Seed: 1}, m, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Demo(DemoOptions{Width: 10, Height: 10, Seed: 2}, m, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(FromGrid(a, Defaults{}), FromGrid(b, Defaults{})) {
		t.Error("different seeds produced the same map")
	}
}

func TestCommonDefaults(t *testing.T) {
	g, err := mustParse(t, sampleMap).Build(hexmetrics.Default(), nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := Defaults{Elevation: 1, WaterLevel: 0, Terrain: 1}
	if got := CommonDefaults(g); got != want {
		t.Errorf("CommonDefaults() = %+v, want %+v", got, want)
	}
}

func TestMostFrequent(t *testing.T) {
	tests := []struct {
		counts map[int]int
		want   int
	}{
		{map[int]int{}, 0},
		{map[int]int{3: 5, 1: 2}, 3},
		{map[int]int{4: 2, 2: 2, 7: 1}, 2},
	}
	for _, tt := range tests {
		if got := mostFrequent(tt.counts); got != tt.want {
			t.Errorf("mostFrequent(%v) = %d, want %d", tt.counts, got, tt.want)
		}
	}
}

func TestTerrainFor(t *testing.T) {
	tests := []struct {
		elevation int
		want      int
	}{
		{-1, TerrainSand},
		{0, TerrainSand},
		{1, TerrainGrass},
		{2, TerrainGrass},
		{3, TerrainMud},
		{4, TerrainStone},
		{5, TerrainSnow},
		{7, TerrainSnow},
	}
	for _, tt := range tests {
		if got := terrainFor(tt.elevation); got != tt.want {
			t.Errorf("terrainFor(%d) = %d, want %d", tt.elevation, got, tt.want)
		}
	}
}

func TestDevelopmentLevel(t *testing.T) {
	tests := []struct {
		v    float32
		want int
	}{
		{0, 0},
		{0.3, 0},
		{0.4, 0},
		{0.5, 1},
		{0.7, 2},
		{0.99, 3},
	}
	for _, tt := range tests {
		if got := developmentLevel(tt.v); got != tt.want {
			t.Errorf("developmentLevel(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestDemoElevationSpread(t *testing.T) {
	g, err := Demo(DemoOptions{Width: 20, Height: 15, Seed: 1234}, hexmetrics.Default(), nil, nil)
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}
	levels := map[int]bool{}
	for i := 0; i < g.Len(); i++ {
		levels[g.Hex(i).Elevation] = true
	}
	if len(levels) < 3 {
		t.Errorf("demo uses only elevations %v", levels)
	}
}
