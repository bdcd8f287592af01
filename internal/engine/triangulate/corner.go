package triangulate

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// triangulateCorner fills the triangle where three hexes meet. bottom is
// the lowest hex; left and right follow clockwise.
func (t *Triangulator) triangulateCorner(bottom math.Vec3, bottomHex *hexgrid.Hex,
	left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex) {
	leftType := t.grid.EdgeTypeBetween(bottomHex.Index, leftHex.Index)
	rightType := t.grid.EdgeTypeBetween(bottomHex.Index, rightHex.Index)

	switch {
	case leftType == hexmetrics.Slope && rightType == hexmetrics.Slope:
		t.cornerTerraces(bottom, bottomHex, left, leftHex, right, rightHex)
	case leftType == hexmetrics.Slope && rightType == hexmetrics.Flat:
		t.cornerTerraces(left, leftHex, right, rightHex, bottom, bottomHex)
	case leftType == hexmetrics.Slope:
		t.cornerTerracesCliff(bottom, bottomHex, left, leftHex, right, rightHex)
	case rightType == hexmetrics.Slope && leftType == hexmetrics.Flat:
		t.cornerTerraces(right, rightHex, bottom, bottomHex, left, leftHex)
	case rightType == hexmetrics.Slope:
		t.cornerCliffTerraces(bottom, bottomHex, left, leftHex, right, rightHex)
	case t.grid.EdgeTypeBetween(leftHex.Index, rightHex.Index) == hexmetrics.Slope:
		if leftHex.Elevation < rightHex.Elevation {
			t.cornerCliffTerraces(right, rightHex, bottom, bottomHex, left, leftHex)
		} else {
			t.cornerTerracesCliff(left, leftHex, right, rightHex, bottom, bottomHex)
		}
	default:
		t.flatCorner(bottom, bottomHex, left, leftHex, right, rightHex)
	}

	t.features.AddWallCorner(bottom, bottomHex, left, leftHex, right, rightHex)
}

// flatCorner emits a single triangle without terraces. Its corners are
// perturbed once up front so they match the strips around them exactly.
func (t *Triangulator) flatCorner(bottom math.Vec3, bottomHex *hexgrid.Hex,
	left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex) {
	t.terrain.AddTriangleUnperturbed(t.terrain.Perturb(bottom), t.terrain.Perturb(left), t.terrain.Perturb(right))
	t.terrain.AddTriangleCellData(mesh.Cells(bottomHex.Index, leftHex.Index, rightHex.Index),
		hexmetrics.Weights1(), hexmetrics.Weights2(), hexmetrics.Weights3())
}

// cornerTerraces terraces both sides of a corner from begin at once.
func (t *Triangulator) cornerTerraces(begin math.Vec3, beginHex *hexgrid.Hex,
	left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex) {
	m := t.metrics
	w1, w2, w3 := hexmetrics.Weights1(), hexmetrics.Weights2(), hexmetrics.Weights3()
	cells := mesh.Cells(beginHex.Index, leftHex.Index, rightHex.Index)

	v3 := m.TerraceLerp(begin, left, 1)
	v4 := m.TerraceLerp(begin, right, 1)
	c3 := m.TerraceLerpWeights(w1, w2, 1)
	c4 := m.TerraceLerpWeights(w1, w3, 1)

	t.terrain.AddTriangle(begin, v3, v4)
	t.terrain.AddTriangleCellData(cells, w1, c3, c4)

	for step := 2; step < m.TerraceSteps(); step++ {
		v1, v2 := v3, v4
		c1, c2 := c3, c4
		v3 = m.TerraceLerp(begin, left, step)
		v4 = m.TerraceLerp(begin, right, step)
		c3 = m.TerraceLerpWeights(w1, w2, step)
		c4 = m.TerraceLerpWeights(w1, w3, step)
		t.terrain.AddQuad(v1, v2, v3, v4)
		t.terrain.AddQuadCellData(cells, c1, c2, c3, c4)
	}

	t.terrain.AddQuad(v3, v4, left, right)
	t.terrain.AddQuadCellData(cells, c3, c4, w2, w3)
}

// boundaryFactor is the fraction of the way up a cliff at which the
// terraces of a slope collapse into one point. ok is false for equal
// elevations, where no boundary exists.
func boundaryFactor(from, to int) (float32, bool) {
	diff := to - from
	if diff == 0 {
		return 0, false
	}
	b := 1 / float32(diff)
	if b < 0 {
		b = -b
	}
	return b, true
}

// cornerTerracesCliff handles a slope on the left and a cliff on the right
// of begin.
func (t *Triangulator) cornerTerracesCliff(begin math.Vec3, beginHex *hexgrid.Hex,
	left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex) {
	b, ok := boundaryFactor(beginHex.Elevation, rightHex.Elevation)
	if !ok {
		t.flatCorner(begin, beginHex, left, leftHex, right, rightHex)
		return
	}
	cells := mesh.Cells(beginHex.Index, leftHex.Index, rightHex.Index)
	boundary := t.terrain.Perturb(begin).Lerp(t.terrain.Perturb(right), b)
	boundaryWeights := hexmetrics.Weights1().Lerp(hexmetrics.Weights3(), b)

	t.boundaryTriangle(begin, hexmetrics.Weights1(), left, hexmetrics.Weights2(), boundary, boundaryWeights, cells)
	t.closeBoundary(left, leftHex, right, rightHex, boundary, boundaryWeights, cells)
}

// cornerCliffTerraces mirrors cornerTerracesCliff: cliff on the left,
// slope on the right.
func (t *Triangulator) cornerCliffTerraces(begin math.Vec3, beginHex *hexgrid.Hex,
	left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex) {
	b, ok := boundaryFactor(beginHex.Elevation, leftHex.Elevation)
	if !ok {
		t.flatCorner(begin, beginHex, left, leftHex, right, rightHex)
		return
	}
	cells := mesh.Cells(beginHex.Index, leftHex.Index, rightHex.Index)
	boundary := t.terrain.Perturb(begin).Lerp(t.terrain.Perturb(left), b)
	boundaryWeights := hexmetrics.Weights1().Lerp(hexmetrics.Weights2(), b)

	t.boundaryTriangle(right, hexmetrics.Weights3(), begin, hexmetrics.Weights1(), boundary, boundaryWeights, cells)
	t.closeBoundary(left, leftHex, right, rightHex, boundary, boundaryWeights, cells)
}

// closeBoundary fills the top of a cliff corner: terraced when left and
// right are connected by a slope, a single triangle otherwise.
func (t *Triangulator) closeBoundary(left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex,
	boundary, boundaryWeights math.Vec3, cells mesh.CellIndices) {
	if t.grid.EdgeTypeBetween(leftHex.Index, rightHex.Index) == hexmetrics.Slope {
		t.boundaryTriangle(left, hexmetrics.Weights2(), right, hexmetrics.Weights3(), boundary, boundaryWeights, cells)
		return
	}
	t.terrain.AddTriangleUnperturbed(t.terrain.Perturb(left), t.terrain.Perturb(right), boundary)
	t.terrain.AddTriangleCellData(cells, hexmetrics.Weights2(), hexmetrics.Weights3(), boundaryWeights)
}

// boundaryTriangle fans the terrace steps between begin and left into the
// boundary point. The boundary is already perturbed, so every vertex is
// perturbed here and added as is.
func (t *Triangulator) boundaryTriangle(begin, beginWeights, left, leftWeights,
	boundary, boundaryWeights math.Vec3, cells mesh.CellIndices) {
	m := t.metrics

	v2 := t.terrain.Perturb(m.TerraceLerp(begin, left, 1))
	w2 := m.TerraceLerpWeights(beginWeights, leftWeights, 1)
	t.terrain.AddTriangleUnperturbed(t.terrain.Perturb(begin), v2, boundary)
	t.terrain.AddTriangleCellData(cells, beginWeights, w2, boundaryWeights)

	for step := 2; step < m.TerraceSteps(); step++ {
		v1, w1 := v2, w2
		v2 = t.terrain.Perturb(m.TerraceLerp(begin, left, step))
		w2 = m.TerraceLerpWeights(beginWeights, leftWeights, step)
		t.terrain.AddTriangleUnperturbed(v1, v2, boundary)
		t.terrain.AddTriangleCellData(cells, w1, w2, boundaryWeights)
	}

	t.terrain.AddTriangleUnperturbed(v2, t.terrain.Perturb(left), boundary)
	t.terrain.AddTriangleCellData(cells, w2, leftWeights, boundaryWeights)
}
