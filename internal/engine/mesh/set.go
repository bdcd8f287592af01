package mesh

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Set holds one layer of every kind for a chunk.
type Set struct {
	layers [KindCount]*Layer
}

// NewSet creates all layers. Walls are built from pre-perturbed points and
// only ever use the unperturbed Add methods.
func NewSet(perturb PerturbFunc) *Set {
	s := &Set{}
	for k := range s.layers {
		s.layers[k] = NewLayer(Kind(k), perturb)
	}
	return s
}

// Layer returns the layer of the given kind.
func (s *Set) Layer(k Kind) *Layer {
	return s.layers[k]
}

// Layers returns all layers in Kind order.
func (s *Set) Layers() []*Layer {
	return s.layers[:]
}

// Clone returns a deep copy of every layer.
func (s *Set) Clone() *Set {
	c := &Set{}
	for k, l := range s.layers {
		c.layers[k] = l.Clone()
	}
	return c
}

// Clear empties every layer.
func (s *Set) Clear() {
	for _, l := range s.layers {
		l.Clear()
	}
}

// Apply finishes every layer.
func (s *Set) Apply(smooth bool) {
	for _, l := range s.layers {
		l.Apply(smooth)
	}
}

// Check verifies every layer.
func (s *Set) Check() error {
	for _, l := range s.layers {
		if err := l.Check(); err != nil {
			return err
		}
	}
	return nil
}

// Bounds returns the bounds of all non-empty layers.
func (s *Set) Bounds() Bounds {
	b := EmptyBounds()
	for _, l := range s.layers {
		b = b.Union(l.Bounds)
	}
	return b
}

// Stats counts vertices and triangles per layer.
func (s *Set) Stats() (vertices, triangles [KindCount]int) {
	for k, l := range s.layers {
		vertices[k] = l.VertexCount()
		triangles[k] = l.TriangleCount()
	}
	return vertices, triangles
}

// Vertex returns vertex i of layer k, convenient for seam checks.
func (s *Set) Vertex(k Kind, i int) math.Vec3 {
	return s.layers[k].Vertices[i]
}

// SumStats adds up the per-layer counts of many sets.
func SumStats(sets []*Set) (vertices, triangles [KindCount]int) {
	for _, s := range sets {
		v, t := s.Stats()
		for k := range vertices {
			vertices[k] += v[k]
			triangles[k] += t[k]
		}
	}
	return vertices, triangles
}
