package vertex

import (
	gomath "math"
	"testing"
	"unsafe"

	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/preview"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

func newGrid(t *testing.T) *hexgrid.Grid {
	t.Helper()
	g, err := hexgrid.NewGrid(hexgrid.Options{CellCountX: 5, CellCountZ: 5, Metrics: hexmetrics.Default()})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	if err := g.SetTerrainType(3, 1); err != nil {
		t.Fatal(err)
	}
	return g
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestSizeMatchesLayout(t *testing.T) {
	if got := unsafe.Sizeof(Vertex{}); got != Size {
		t.Errorf("unsafe.Sizeof(Vertex{}) = %d, want %d", got, Size)
	}
}

func TestBuildTerrainColors(t *testing.T) {
	g := newGrid(t)
	l := mesh.NewLayer(mesh.Terrain, nil)
	l.AddTriangle(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1})
	l.AddTriangleCellDataUniform(mesh.Cells(3, 3, 3), math.Vec3{X: 1})

	out := Build(g, l, preview.DefaultPalette)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}

	grass := preview.DefaultPalette[1]
	want := [4]float32{float32(grass.R) / 255, float32(grass.G) / 255, float32(grass.B) / 255, 1}
	for i, v := range out {
		for c := range want {
			if !near(v.Color[c], want[c]) {
				t.Errorf("vertex %d color = %v, want %v", i, v.Color, want)
				break
			}
		}
		if v.Normal != (math.Vec3{Y: 1}) {
			t.Errorf("vertex %d normal = %v, want up", i, v.Normal)
		}
	}
	if out[1].Position != (math.Vec3{Z: 1}) {
		t.Errorf("vertex 1 position = %v", out[1].Position)
	}
}

func TestBuildUsesLayerNormals(t *testing.T) {
	g := newGrid(t)
	l := mesh.NewLayer(mesh.Walls, nil)
	l.AddTriangleUnperturbed(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{X: 1})
	l.Apply(false)

	out := Build(g, l, preview.DefaultPalette)
	for i, v := range out {
		if v.Normal != l.Normals[i] {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, l.Normals[i])
		}
		if v.Color[3] != 1 {
			t.Errorf("wall alpha = %v, want 1", v.Color[3])
		}
	}
}

func TestBuildFlatLayerColor(t *testing.T) {
	g := newGrid(t)
	l := mesh.NewLayer(mesh.Water, nil)
	l.AddTriangle(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1})
	l.AddTriangleCellDataUniform(mesh.Cells(0, 0, 0), math.Vec3{X: 1})

	c := preview.LayerColor(mesh.Water)
	out := Build(g, l, preview.DefaultPalette)
	if !near(out[0].Color[3], float32(c.A)/255) {
		t.Errorf("water alpha = %v, want %v", out[0].Color[3], float32(c.A)/255)
	}
}

func TestTranslucent(t *testing.T) {
	tests := []struct {
		kind mesh.Kind
		want bool
	}{
		{mesh.Terrain, false},
		{mesh.Roads, false},
		{mesh.Walls, false},
		{mesh.Water, true},
		{mesh.WaterShore, true},
		{mesh.Estuaries, true},
		{mesh.Rivers, true},
	}
	for _, tt := range tests {
		if got := Translucent(tt.kind); got != tt.want {
			t.Errorf("Translucent(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
