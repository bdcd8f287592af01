package hexmetrics

import (
	"testing"

	"github.com/Faultbox/hexmesh/pkg/math"
)

func inUnitRange(h Hash) bool {
	for _, v := range [5]float32{h.A, h.B, h.C, h.D, h.E} {
		if v < 0 || v >= 1 {
			return false
		}
	}
	return true
}

func TestHashGridIsDeterministic(t *testing.T) {
	g := NewHashGrid(1234, Default())
	p := math.Vec3{X: 12.5, Y: 3, Z: -40.25}
	if g.Sample(p) != g.Sample(p) {
		t.Error("same position produced different hashes")
	}
	if g.Sample(p) == NewHashGrid(99, Default()).Sample(p) {
		t.Error("different seeds produced the same hash")
	}
}

func TestHashGridRange(t *testing.T) {
	g := NewHashGrid(7, Default())
	for x := -50; x < 50; x++ {
		for z := -50; z < 50; z++ {
			h := g.Sample(math.Vec3{X: float32(x) * 3.3, Z: float32(z) * 2.7})
			if !inUnitRange(h) {
				t.Fatalf("hash out of range at (%d, %d): %+v", x, z, h)
			}
		}
	}
}

func TestHashGridIgnoresHeight(t *testing.T) {
	g := NewHashGrid(5, Default())
	a := g.Sample(math.Vec3{X: 10, Y: 0, Z: 10})
	b := g.Sample(math.Vec3{X: 10, Y: 50, Z: 10})
	if a != b {
		t.Error("hash grid should only depend on XZ")
	}
}

func TestHashGridWraps(t *testing.T) {
	m := Default()
	m.WrapSize = 20
	g := NewHashGrid(3, m)
	p := math.Vec3{X: 11.1, Z: 7.3}
	q := p.Add(math.Vec3{X: m.WrapWidth()})
	if g.Sample(p) != g.Sample(q) {
		t.Error("positions one wrap width apart should hash equally")
	}
}

func TestSimplexNoiseIsSmooth(t *testing.T) {
	n := NewSimplexNoise(42, Default())
	p := math.Vec3{X: 100, Z: 200}
	a := n.Sample(p)
	b := n.Sample(p.Add(math.Vec3{X: 0.01}))
	if d := a.A - b.A; d > 0.01 || d < -0.01 {
		t.Errorf("noise jumped by %v over a tiny step", d)
	}
}

func TestSimplexNoiseIsDeterministic(t *testing.T) {
	p := math.Vec3{X: 37.5, Y: 4, Z: -12}
	a := NewSimplexNoise(9, Default()).Sample(p)
	b := NewSimplexNoise(9, Default()).Sample(p)
	if a != b {
		t.Errorf("same seed sampled %+v and %+v", a, b)
	}
	if a == NewSimplexNoise(10, Default()).Sample(p) {
		t.Error("different seeds produced the same noise")
	}
	if a.A == a.B && a.B == a.C {
		t.Errorf("channels are not independent: %+v", a)
	}
}

func TestSimplexNoiseRange(t *testing.T) {
	n := NewSimplexNoise(7, Default()).WithScale(0.05, 4)
	for x := -40; x < 40; x++ {
		for z := -40; z < 40; z++ {
			h := n.Sample(math.Vec3{X: float32(x) * 3.3, Z: float32(z) * 2.7})
			if !inUnitRange(h) {
				t.Fatalf("noise out of range at (%d, %d): %+v", x, z, h)
			}
		}
	}
}

func TestSimplexNoiseWraps(t *testing.T) {
	m := Default()
	m.WrapSize = 20
	n := NewSimplexNoise(3, m)
	if n.WrapWidth() != m.WrapWidth() {
		t.Fatalf("WrapWidth() = %v, want %v", n.WrapWidth(), m.WrapWidth())
	}
	for _, p := range []math.Vec3{{X: 11.1, Z: 7.3}, {X: 0, Z: 50}, {X: m.WrapWidth() - 0.5, Z: -3}} {
		a := n.Sample(p)
		b := n.Sample(p.Add(math.Vec3{X: m.WrapWidth()}))
		c := n.Sample(p.Sub(math.Vec3{X: m.WrapWidth()}))
		for _, other := range []Hash{b, c} {
			if d := a.A - other.A; d > 1e-4 || d < -1e-4 {
				t.Errorf("at %v noise differs by %v one wrap width away", p, d)
			}
		}
	}

	// Both sides of the seam sample nearby values.
	left := n.Sample(math.Vec3{X: 0.01, Z: 5})
	right := n.Sample(math.Vec3{X: m.WrapWidth() - 0.01, Z: 5})
	if d := left.C - right.C; d > 0.01 || d < -0.01 {
		t.Errorf("noise jumps by %v across the wrap seam", d)
	}
}

func TestPerturb(t *testing.T) {
	m := Default()
	p := math.Vec3{X: 5, Y: 2, Z: 9}

	if got := m.Perturb(ConstantSampler{A: 0.5, C: 0.5}, p); got != p {
		t.Errorf("centered noise should not move the point, got %v", got)
	}
	got := m.Perturb(ConstantSampler{A: 1, C: 0}, p)
	want := math.Vec3{X: 5 + m.CellPerturbStrength, Y: 2, Z: 9 - m.CellPerturbStrength}
	if got != want {
		t.Errorf("Perturb() = %v, want %v", got, want)
	}
	if got := m.Perturb(nil, p); got != p {
		t.Errorf("nil sampler should not move the point, got %v", got)
	}
}
