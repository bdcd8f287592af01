package mesh

import (
	"fmt"

	"github.com/Faultbox/hexmesh/pkg/math"
)

// Layer is one geometry buffer. Vertices, CellWeights, Cells, UV and UV2
// are parallel arrays; the optional ones are only filled when the layer's
// Attributes ask for them. Triangles holds index triples into Vertices.
type Layer struct {
	Kind Kind

	Vertices    []math.Vec3
	Triangles   []uint32
	CellWeights []math.Vec3
	Cells       []CellIndices
	UV          []math.Vec2
	UV2         []math.Vec2

	// Filled by Apply.
	Normals []math.Vec3
	Bounds  Bounds

	attrs   Attributes
	perturb PerturbFunc
}

// NewLayer creates an empty layer. perturb is applied to every vertex
// passed to the perturbed Add methods.
func NewLayer(kind Kind, perturb PerturbFunc) *Layer {
	return &Layer{
		Kind:    kind,
		Bounds:  EmptyBounds(),
		attrs:   kind.Attributes(),
		perturb: perturb,
	}
}

// Attributes returns the optional buffers this layer carries.
func (l *Layer) Attributes() Attributes {
	return l.attrs
}

// Clear empties all buffers, keeping their capacity.
func (l *Layer) Clear() {
	l.Vertices = l.Vertices[:0]
	l.Triangles = l.Triangles[:0]
	l.CellWeights = l.CellWeights[:0]
	l.Cells = l.Cells[:0]
	l.UV = l.UV[:0]
	l.UV2 = l.UV2[:0]
	l.Normals = l.Normals[:0]
	l.Bounds = EmptyBounds()
}

// Clone returns a deep copy of the layer sharing only its perturb func.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Vertices = append([]math.Vec3(nil), l.Vertices...)
	c.Triangles = append([]uint32(nil), l.Triangles...)
	c.CellWeights = append([]math.Vec3(nil), l.CellWeights...)
	c.Cells = append([]CellIndices(nil), l.Cells...)
	c.UV = append([]math.Vec2(nil), l.UV...)
	c.UV2 = append([]math.Vec2(nil), l.UV2...)
	c.Normals = append([]math.Vec3(nil), l.Normals...)
	return &c
}

// VertexCount returns the number of vertices.
func (l *Layer) VertexCount() int {
	return len(l.Vertices)
}

// TriangleCount returns the number of triangles.
func (l *Layer) TriangleCount() int {
	return len(l.Triangles) / 3
}

// Perturb applies the layer's jitter to p.
func (l *Layer) Perturb(p math.Vec3) math.Vec3 {
	if l.perturb == nil {
		return p
	}
	return l.perturb(p)
}

// AddTriangle adds a triangle with perturbed corners.
func (l *Layer) AddTriangle(v1, v2, v3 math.Vec3) {
	l.AddTriangleUnperturbed(l.Perturb(v1), l.Perturb(v2), l.Perturb(v3))
}

// AddTriangleUnperturbed adds a triangle with the corners as given.
func (l *Layer) AddTriangleUnperturbed(v1, v2, v3 math.Vec3) {
	i := uint32(len(l.Vertices))
	l.Vertices = append(l.Vertices, v1, v2, v3)
	l.Triangles = append(l.Triangles, i, i+1, i+2)
}

// AddQuad adds a quad with perturbed corners. v1,v2 form the near edge and
// v3,v4 the far edge.
func (l *Layer) AddQuad(v1, v2, v3, v4 math.Vec3) {
	l.AddQuadUnperturbed(l.Perturb(v1), l.Perturb(v2), l.Perturb(v3), l.Perturb(v4))
}

// AddQuadUnperturbed adds a quad with the corners as given.
func (l *Layer) AddQuadUnperturbed(v1, v2, v3, v4 math.Vec3) {
	i := uint32(len(l.Vertices))
	l.Vertices = append(l.Vertices, v1, v2, v3, v4)
	l.Triangles = append(l.Triangles, i, i+2, i+1, i+1, i+2, i+3)
}

// AddTriangleUV adds texture coordinates for the last triangle.
func (l *Layer) AddTriangleUV(uv1, uv2, uv3 math.Vec2) {
	l.UV = append(l.UV, uv1, uv2, uv3)
}

// AddQuadUV adds texture coordinates for the last quad.
func (l *Layer) AddQuadUV(uv1, uv2, uv3, uv4 math.Vec2) {
	l.UV = append(l.UV, uv1, uv2, uv3, uv4)
}

// AddQuadUVRect maps the last quad onto a rectangle of texture space.
func (l *Layer) AddQuadUVRect(uMin, uMax, vMin, vMax float32) {
	l.UV = append(l.UV,
		math.Vec2{X: uMin, Y: vMin},
		math.Vec2{X: uMax, Y: vMin},
		math.Vec2{X: uMin, Y: vMax},
		math.Vec2{X: uMax, Y: vMax},
	)
}

// AddTriangleUV2 adds second texture coordinates for the last triangle.
func (l *Layer) AddTriangleUV2(uv1, uv2, uv3 math.Vec2) {
	l.UV2 = append(l.UV2, uv1, uv2, uv3)
}

// AddQuadUV2 adds second texture coordinates for the last quad.
func (l *Layer) AddQuadUV2(uv1, uv2, uv3, uv4 math.Vec2) {
	l.UV2 = append(l.UV2, uv1, uv2, uv3, uv4)
}

// AddTriangleCellData sets hexes and blend weights per corner of the last
// triangle.
func (l *Layer) AddTriangleCellData(cells CellIndices, w1, w2, w3 math.Vec3) {
	l.Cells = append(l.Cells, cells, cells, cells)
	l.CellWeights = append(l.CellWeights, w1, w2, w3)
}

// AddTriangleCellDataUniform gives every corner of the last triangle the
// same weights.
func (l *Layer) AddTriangleCellDataUniform(cells CellIndices, w math.Vec3) {
	l.AddTriangleCellData(cells, w, w, w)
}

// AddQuadCellData sets hexes and blend weights per corner of the last quad.
func (l *Layer) AddQuadCellData(cells CellIndices, w1, w2, w3, w4 math.Vec3) {
	l.Cells = append(l.Cells, cells, cells, cells, cells)
	l.CellWeights = append(l.CellWeights, w1, w2, w3, w4)
}

// AddQuadCellData2 uses w1 for the near edge and w2 for the far edge.
func (l *Layer) AddQuadCellData2(cells CellIndices, w1, w2 math.Vec3) {
	l.AddQuadCellData(cells, w1, w1, w2, w2)
}

// AddQuadCellDataUniform gives every corner of the last quad the same
// weights.
func (l *Layer) AddQuadCellDataUniform(cells CellIndices, w math.Vec3) {
	l.AddQuadCellData(cells, w, w, w, w)
}

// Check verifies that the optional buffers line up with the vertices.
func (l *Layer) Check() error {
	n := len(l.Vertices)
	if len(l.Triangles)%3 != 0 {
		return fmt.Errorf("%v: %d indices is not a multiple of 3", l.Kind, len(l.Triangles))
	}
	for _, idx := range l.Triangles {
		if int(idx) >= n {
			return fmt.Errorf("%v: index %d out of %d vertices", l.Kind, idx, n)
		}
	}
	check := func(name string, want bool, got int) error {
		if want && got != n || !want && got != 0 {
			return fmt.Errorf("%v: %s has %d entries for %d vertices", l.Kind, name, got, n)
		}
		return nil
	}
	if err := check("cell weights", l.attrs.CellData, len(l.CellWeights)); err != nil {
		return err
	}
	if err := check("cells", l.attrs.CellData, len(l.Cells)); err != nil {
		return err
	}
	if err := check("uv", l.attrs.UV, len(l.UV)); err != nil {
		return err
	}
	return check("uv2", l.attrs.UV2, len(l.UV2))
}

// Apply finishes the layer: per-vertex normals from the triangle faces,
// optionally averaged across coincident vertices, and the bounds.
func (l *Layer) Apply(smooth bool) {
	l.Normals = l.Normals[:0]
	for range l.Vertices {
		l.Normals = append(l.Normals, math.Vec3{})
	}
	for t := 0; t+2 < len(l.Triangles); t += 3 {
		a, b, c := l.Triangles[t], l.Triangles[t+1], l.Triangles[t+2]
		face := l.Vertices[b].Sub(l.Vertices[a]).Cross(l.Vertices[c].Sub(l.Vertices[a]))
		l.Normals[a] = l.Normals[a].Add(face)
		l.Normals[b] = l.Normals[b].Add(face)
		l.Normals[c] = l.Normals[c].Add(face)
	}
	for i := range l.Normals {
		l.Normals[i] = normalize(l.Normals[i])
	}
	if smooth {
		SmoothNormals(l.Vertices, l.Normals)
	}

	l.Bounds = EmptyBounds()
	for _, v := range l.Vertices {
		l.Bounds.extend(v)
	}
}
