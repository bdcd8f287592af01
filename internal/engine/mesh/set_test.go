package mesh

import (
	"testing"

	"github.com/Faultbox/hexmesh/pkg/math"
)

func TestKindSet(t *testing.T) {
	s := AllKinds
	for k := Kind(0); k < KindCount; k++ {
		if !s.Has(k) {
			t.Errorf("AllKinds lacks %v", k)
		}
	}

	s = s.With(Water, false).With(Walls, false)
	if s.Has(Water) || s.Has(Walls) {
		t.Errorf("With(false) kept %v", s)
	}
	if !s.Has(Terrain) || !s.Has(WaterShore) {
		t.Errorf("With(false) dropped neighbours: %v", s)
	}
	if s = s.With(Water, true); !s.Has(Water) {
		t.Error("With(Water, true) did not switch it back on")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSet(nil)
	l := s.Layer(Terrain)
	l.AddTriangle(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1})
	l.AddTriangleCellDataUniform(Cells(2, 2, 2), math.Vec3{X: 1})
	s.Apply(false)

	c := s.Clone()
	s.Clear()

	if got := c.Layer(Terrain).TriangleCount(); got != 1 {
		t.Fatalf("clone has %d triangles after source Clear, want 1", got)
	}
	if err := c.Check(); err != nil {
		t.Errorf("clone Check() error = %v", err)
	}
	if c.Bounds().Empty() {
		t.Error("clone lost its bounds")
	}

	s.Layer(Terrain).AddTriangle(math.Vec3{Y: 5}, math.Vec3{Y: 5, Z: 1}, math.Vec3{Y: 5, X: 1})
	if got := c.Vertex(Terrain, 0); got != (math.Vec3{}) {
		t.Errorf("source writes leaked into clone: vertex 0 = %v", got)
	}
}

func TestSumStats(t *testing.T) {
	a := NewSet(nil)
	a.Layer(Walls).AddQuadUnperturbed(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{X: 1, Y: 1})
	b := NewSet(nil)
	b.Layer(Walls).AddTriangleUnperturbed(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1})
	b.Layer(Terrain).AddTriangle(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1})

	vertices, triangles := SumStats([]*Set{a, b})
	if triangles[Walls] != 3 || vertices[Walls] != 7 {
		t.Errorf("walls = %d vertices %d triangles, want 7 and 3", vertices[Walls], triangles[Walls])
	}
	if triangles[Terrain] != 1 {
		t.Errorf("terrain triangles = %d, want 1", triangles[Terrain])
	}
	if triangles[Water] != 0 {
		t.Errorf("water triangles = %d, want 0", triangles[Water])
	}
}
