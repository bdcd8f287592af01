package triangulate

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

func (t *Triangulator) triangulateWater(e *edgeContext) {
	e.waterCenter = e.hex.Position.WithY(e.hex.WaterSurfaceY)
	if e.neighbor != nil && !e.neighbor.IsUnderwater() {
		t.triangulateWaterShore(e)
	} else {
		t.triangulateOpenWater(e)
	}
}

// triangulateOpenWater fans the water surface of the hex and connects it
// to submerged neighbors.
func (t *Triangulator) triangulateOpenWater(e *edgeContext) {
	m := t.metrics
	h, nb, d := e.hex, e.neighbor, e.dir
	center := e.waterCenter

	c1 := center.Add(m.FirstWaterCorner(d))
	c2 := center.Add(m.SecondWaterCorner(d))
	t.water.AddTriangle(center, c1, c2)
	t.water.AddTriangleCellDataUniform(e.self(), hexmetrics.Weights1())

	if d > hexmetrics.SE || nb == nil {
		return
	}
	bridge := m.WaterBridge(d)
	e1 := c1.Add(bridge)
	e2 := c2.Add(bridge)
	t.water.AddQuad(c1, c2, e1, e2)
	t.water.AddQuadCellData2(mesh.Cells(h.Index, nb.Index, h.Index), hexmetrics.Weights1(), hexmetrics.Weights2())

	if d > hexmetrics.E {
		return
	}
	next, ok := t.grid.Neighbor(h.Index, d.Next())
	if !ok || !next.IsUnderwater() {
		return
	}
	t.water.AddTriangle(c2, e2, c2.Add(m.WaterBridge(d.Next())))
	t.water.AddTriangleCellData(mesh.Cells(h.Index, nb.Index, next.Index),
		hexmetrics.Weights1(), hexmetrics.Weights2(), hexmetrics.Weights3())
}

// unwrap moves the position of other next to h on a wrapping map. Offset
// columns are compared rather than chunk columns, which cannot tell the
// seam apart on a map only two chunks wide.
func (t *Triangulator) unwrap(h, other *hexgrid.Hex) math.Vec3 {
	p := other.Position
	if !t.metrics.Wrapping() {
		return p
	}
	if other.X < h.X-1 {
		p.X += t.metrics.WrapWidth()
	} else if other.X > h.X+1 {
		p.X -= t.metrics.WrapWidth()
	}
	return p
}

// triangulateWaterShore connects the water surface to the solid edge of a
// dry neighbor, working back from the neighbor's corners.
func (t *Triangulator) triangulateWaterShore(e *edgeContext) {
	m := t.metrics
	h, nb, d := e.hex, e.neighbor, e.dir
	center := e.waterCenter
	cells := mesh.Cells(h.Index, nb.Index, h.Index)

	e1 := hexmetrics.NewEdgeVertices(center.Add(m.FirstWaterCorner(d)), center.Add(m.SecondWaterCorner(d)))
	t.water.AddTriangle(center, e1.V1, e1.V2)
	t.water.AddTriangle(center, e1.V2, e1.V3)
	t.water.AddTriangle(center, e1.V3, e1.V4)
	t.water.AddTriangle(center, e1.V4, e1.V5)
	for range 4 {
		t.water.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())
	}

	center2 := t.unwrap(h, nb).WithY(center.Y)
	e2 := hexmetrics.NewEdgeVertices(
		center2.Add(m.SecondSolidCorner(d.Opposite())),
		center2.Add(m.FirstSolidCorner(d.Opposite())),
	)

	if t.grid.HasRiverThroughEdge(h.Index, d) {
		in, ok := t.grid.IncomingRiver(h.Index)
		t.triangulateEstuary(e1, e2, ok && in == d, cells)
	} else {
		t.waterShore.AddQuad(e1.V1, e1.V2, e2.V1, e2.V2)
		t.waterShore.AddQuad(e1.V2, e1.V3, e2.V2, e2.V3)
		t.waterShore.AddQuad(e1.V3, e1.V4, e2.V3, e2.V4)
		t.waterShore.AddQuad(e1.V4, e1.V5, e2.V4, e2.V5)
		for range 4 {
			t.waterShore.AddQuadUVRect(0, 0, 0, 1)
			t.waterShore.AddQuadCellData2(cells, hexmetrics.Weights1(), hexmetrics.Weights2())
		}
	}

	next, ok := t.grid.Neighbor(h.Index, d.Next())
	if !ok {
		return
	}
	center3 := t.unwrap(h, next)
	var v3 math.Vec3
	if next.IsUnderwater() {
		v3 = center3.Add(m.FirstWaterCorner(d.Previous()))
	} else {
		v3 = center3.Add(m.FirstSolidCorner(d.Previous()))
	}
	v3.Y = center.Y

	var shoreV float32 = 1
	if next.IsUnderwater() {
		shoreV = 0
	}
	t.waterShore.AddTriangle(e1.V5, e2.V5, v3)
	t.waterShore.AddTriangleUV(math.Vec2{}, math.Vec2{Y: 1}, math.Vec2{Y: shoreV})
	t.waterShore.AddTriangleCellData(mesh.Cells(h.Index, nb.Index, next.Index),
		hexmetrics.Weights1(), hexmetrics.Weights2(), hexmetrics.Weights3())
}

// triangulateEstuary replaces the shore strip where a river meets the
// water. The second UV set drives the river flow across the estuary and
// depends on whether the river flows into or out of the water.
func (t *Triangulator) triangulateEstuary(e1, e2 hexmetrics.EdgeVertices, incomingRiver bool, cells mesh.CellIndices) {
	w1, w2 := hexmetrics.Weights1(), hexmetrics.Weights2()

	t.waterShore.AddTriangle(e2.V1, e1.V2, e1.V1)
	t.waterShore.AddTriangle(e2.V5, e1.V5, e1.V4)
	t.waterShore.AddTriangleUV(math.Vec2{Y: 1}, math.Vec2{}, math.Vec2{})
	t.waterShore.AddTriangleUV(math.Vec2{Y: 1}, math.Vec2{}, math.Vec2{})
	t.waterShore.AddTriangleCellData(cells, w2, w1, w1)
	t.waterShore.AddTriangleCellData(cells, w2, w1, w1)

	t.estuaries.AddQuad(e2.V1, e1.V2, e2.V2, e1.V3)
	t.estuaries.AddTriangle(e1.V3, e2.V2, e2.V4)
	t.estuaries.AddQuad(e1.V3, e1.V4, e2.V4, e2.V5)

	t.estuaries.AddQuadUV(math.Vec2{Y: 1}, math.Vec2{}, math.Vec2{X: 1, Y: 1}, math.Vec2{})
	t.estuaries.AddTriangleUV(math.Vec2{}, math.Vec2{X: 1, Y: 1}, math.Vec2{X: 1, Y: 1})
	t.estuaries.AddQuadUV(math.Vec2{}, math.Vec2{}, math.Vec2{X: 1, Y: 1}, math.Vec2{Y: 1})

	t.estuaries.AddQuadCellData(cells, w2, w1, w2, w1)
	t.estuaries.AddTriangleCellData(cells, w1, w2, w2)
	t.estuaries.AddQuadCellData2(cells, w1, w2)

	if incomingRiver {
		t.estuaries.AddQuadUV2(
			math.Vec2{X: 1.5, Y: 1}, math.Vec2{X: 0.7, Y: 1.15},
			math.Vec2{X: 1, Y: 0.8}, math.Vec2{X: 0.5, Y: 1.1},
		)
		t.estuaries.AddTriangleUV2(math.Vec2{X: 0.5, Y: 1.1}, math.Vec2{X: 1, Y: 0.8}, math.Vec2{Y: 0.8})
		t.estuaries.AddQuadUV2(
			math.Vec2{X: 0.5, Y: 1.1}, math.Vec2{X: 0.3, Y: 1.15},
			math.Vec2{Y: 0.8}, math.Vec2{X: -0.5, Y: 1},
		)
		return
	}
	t.estuaries.AddQuadUV2(
		math.Vec2{X: -0.5, Y: -0.2}, math.Vec2{X: 0.3, Y: -0.35},
		math.Vec2{}, math.Vec2{X: 0.5, Y: -0.3},
	)
	t.estuaries.AddTriangleUV2(math.Vec2{X: 0.5, Y: -0.3}, math.Vec2{}, math.Vec2{X: 1})
	t.estuaries.AddQuadUV2(
		math.Vec2{X: 0.5, Y: -0.3}, math.Vec2{X: 0.7, Y: -0.35},
		math.Vec2{X: 1}, math.Vec2{X: 1.5, Y: -0.2},
	)
}
