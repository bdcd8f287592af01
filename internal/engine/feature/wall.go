package feature

import (
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// AddWall builds the wall along a connection between near and far when
// exactly one of them is walled. Rivers and roads leave a gate in the
// middle of the edge.
func (m *Manager) AddWall(near hexmetrics.EdgeVertices, nearHex *hexgrid.Hex,
	far hexmetrics.EdgeVertices, farHex *hexgrid.Hex, hasRiver, hasRoad bool) {
	if nearHex.Walled == farHex.Walled ||
		nearHex.IsUnderwater() || farHex.IsUnderwater() ||
		m.grid.EdgeTypeBetween(nearHex.Index, farHex.Index) == hexmetrics.Cliff {
		return
	}

	m.addWallSegment(nearHex.Index, near.V1, far.V1, near.V2, far.V2, false)
	if hasRiver || hasRoad {
		m.addWallCap(near.V2, far.V2)
		m.addWallCap(far.V4, near.V4)
	} else {
		m.addWallSegment(nearHex.Index, near.V2, far.V2, near.V3, far.V3, false)
		m.addWallSegment(nearHex.Index, near.V3, far.V3, near.V4, far.V4, false)
	}
	m.addWallSegment(nearHex.Index, near.V4, far.V4, near.V5, far.V5, false)
}

// AddWallCorner builds the wall piece at a corner shared by three hexes.
// Corners are given clockwise.
func (m *Manager) AddWallCorner(c1 math.Vec3, h1 *hexgrid.Hex,
	c2 math.Vec3, h2 *hexgrid.Hex, c3 math.Vec3, h3 *hexgrid.Hex) {
	switch {
	case h1.Walled && h2.Walled && !h3.Walled:
		m.addCornerSegment(c3, h3, c1, h1, c2, h2)
	case h1.Walled && !h2.Walled && h3.Walled:
		m.addCornerSegment(c2, h2, c3, h3, c1, h1)
	case h1.Walled && !h2.Walled && !h3.Walled:
		m.addCornerSegment(c1, h1, c2, h2, c3, h3)
	case !h1.Walled && h2.Walled && h3.Walled:
		m.addCornerSegment(c1, h1, c2, h2, c3, h3)
	case !h1.Walled && h2.Walled && !h3.Walled:
		m.addCornerSegment(c2, h2, c3, h3, c1, h1)
	case !h1.Walled && !h2.Walled && h3.Walled:
		m.addCornerSegment(c3, h3, c1, h1, c2, h2)
	}
}

// addCornerSegment closes the wall around pivot, the hex whose walled
// flag differs from both others.
func (m *Manager) addCornerSegment(pivot math.Vec3, pivotHex *hexgrid.Hex,
	left math.Vec3, leftHex *hexgrid.Hex, right math.Vec3, rightHex *hexgrid.Hex) {
	if pivotHex.IsUnderwater() {
		return
	}

	hasLeftWall := !leftHex.IsUnderwater() &&
		m.grid.EdgeTypeBetween(pivotHex.Index, leftHex.Index) != hexmetrics.Cliff
	hasRightWall := !rightHex.IsUnderwater() &&
		m.grid.EdgeTypeBetween(pivotHex.Index, rightHex.Index) != hexmetrics.Cliff

	switch {
	case hasLeftWall && hasRightWall:
		tower := false
		if leftHex.Elevation == rightHex.Elevation {
			h := m.hash.Sample(pivot.Add(left).Add(right).Scale(1.0 / 3))
			tower = h.E < m.metrics.WallTowerThreshold
		}
		m.addWallSegment(pivotHex.Index, pivot, left, pivot, right, tower)
	case hasLeftWall && leftHex.Elevation < rightHex.Elevation:
		m.addWallWedge(pivot, left, right)
	case hasLeftWall:
		m.addWallCap(pivot, left)
	case hasRightWall && rightHex.Elevation < leftHex.Elevation:
		m.addWallWedge(right, pivot, left)
	case hasRightWall:
		m.addWallCap(right, pivot)
	}
}

// addWallSegment emits both faces and the top of a wall running from the
// left pair to the right pair of points. A tower placed on it belongs to
// hex.
func (m *Manager) addWallSegment(hex int, nearLeft, farLeft, nearRight, farRight math.Vec3, tower bool) {
	nearLeft = m.walls.Perturb(nearLeft)
	farLeft = m.walls.Perturb(farLeft)
	nearRight = m.walls.Perturb(nearRight)
	farRight = m.walls.Perturb(farRight)

	met := m.metrics
	left := met.WallLerp(nearLeft, farLeft)
	right := met.WallLerp(nearRight, farRight)
	leftOffset := met.WallThicknessOffset(nearLeft, farLeft)
	rightOffset := met.WallThicknessOffset(nearRight, farRight)
	leftTop := left.Y + met.WallHeight
	rightTop := right.Y + met.WallHeight

	v1 := left.Sub(leftOffset)
	v2 := right.Sub(rightOffset)
	v3 := v1.WithY(leftTop)
	v4 := v2.WithY(rightTop)
	m.walls.AddQuadUnperturbed(v1, v2, v3, v4)

	t1, t2 := v3, v4

	v1 = left.Add(leftOffset)
	v2 = right.Add(rightOffset)
	v3 = v1.WithY(leftTop)
	v4 = v2.WithY(rightTop)
	m.walls.AddQuadUnperturbed(v2, v1, v4, v3)

	m.walls.AddQuadUnperturbed(t1, t2, v3, v4)

	if tower {
		m.Placements = append(m.Placements, Placement{
			Kind:      Tower,
			Hex:       hex,
			Position:  left.Add(right).Scale(0.5),
			RotationY: yawRight(right.Sub(left)),
			Scale:     math.Vec3{X: 1, Y: 1, Z: 1},
		})
	}
}

// addWallCap closes a wall end with a single quad across its thickness.
func (m *Manager) addWallCap(near, far math.Vec3) {
	near = m.walls.Perturb(near)
	far = m.walls.Perturb(far)

	center := m.metrics.WallLerp(near, far)
	thickness := m.metrics.WallThicknessOffset(near, far)
	top := center.Y + m.metrics.WallHeight

	v1 := center.Sub(thickness)
	v2 := center.Add(thickness)
	m.walls.AddQuadUnperturbed(v1, v2, v1.WithY(top), v2.WithY(top))
}

// addWallWedge ends a wall in a slanted wedge pointing at point, used
// where the wall runs down towards a lower unwalled hex.
func (m *Manager) addWallWedge(near, far, point math.Vec3) {
	near = m.walls.Perturb(near)
	far = m.walls.Perturb(far)
	point = m.walls.Perturb(point)

	center := m.metrics.WallLerp(near, far)
	thickness := m.metrics.WallThicknessOffset(near, far)
	top := center.Y + m.metrics.WallHeight

	point.Y = center.Y
	pointTop := point.WithY(top)
	v1 := center.Sub(thickness)
	v2 := center.Add(thickness)
	v3 := v1.WithY(top)
	v4 := v2.WithY(top)

	m.walls.AddQuadUnperturbed(v1, point, v3, pointTop)
	m.walls.AddQuadUnperturbed(point, v2, pointTop, v4)
	m.walls.AddTriangleUnperturbed(pointTop, v3, v4)
}
