package triangulate

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// triangulateWithRiverBeginOrEnd handles the edge a river enters or leaves
// through when the hex is the river's source or mouth.
func (t *Triangulator) triangulateWithRiverBeginOrEnd(e *edgeContext) {
	h := e.hex
	center := e.center
	edge := e.edge

	middle := hexmetrics.NewEdgeVertices(center.Lerp(edge.V1, 0.5), center.Lerp(edge.V5, 0.5))
	middle.V3.Y = edge.V3.Y

	t.edgeStrip(middle, hexmetrics.Weights1(), h.Index, edge, hexmetrics.Weights1(), h.Index, false)
	t.edgeFan(center, middle, h.Index)

	if h.IsUnderwater() {
		return
	}
	reversed := t.grid.HasIncomingRiver(h.Index)
	cells := e.self()
	t.riverQuadLevel(middle.V2, middle.V4, edge.V2, edge.V4, h.RiverSurfaceY, 0.6, reversed, cells)

	y := h.RiverSurfaceY
	t.rivers.AddTriangle(center.WithY(y), middle.V2.WithY(y), middle.V4.WithY(y))
	if reversed {
		t.rivers.AddTriangleUV(math.Vec2{X: 0.5, Y: 0.4}, math.Vec2{X: 1, Y: 0.2}, math.Vec2{X: 0, Y: 0.2})
	} else {
		t.rivers.AddTriangleUV(math.Vec2{X: 0.5, Y: 0.4}, math.Vec2{X: 0, Y: 0.6}, math.Vec2{X: 1, Y: 0.6})
	}
	t.rivers.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())
}

// triangulateWithRiver handles an edge the river flows through when the
// river continues through another edge of the hex. The channel bends
// between two anchors chosen from where the river leaves.
func (t *Triangulator) triangulateWithRiver(e *edgeContext) {
	h := e.hex
	d := e.dir
	m := t.metrics
	center := e.center
	edge := e.edge

	var centerL, centerR math.Vec3
	switch {
	case t.grid.HasRiverThroughEdge(h.Index, d.Opposite()):
		centerL = center.Add(m.FirstSolidCorner(d.Previous()).Scale(0.25))
		centerR = center.Add(m.SecondSolidCorner(d.Next()).Scale(0.25))
	case t.grid.HasRiverThroughEdge(h.Index, d.Next()):
		centerL = center
		centerR = center.Lerp(edge.V5, 2.0/3)
	case t.grid.HasRiverThroughEdge(h.Index, d.Previous()):
		centerL = center.Lerp(edge.V1, 2.0/3)
		centerR = center
	case t.grid.HasRiverThroughEdge(h.Index, d.Next2()):
		centerL = center
		centerR = center.Add(m.SolidEdgeMiddle(d.Next()).Scale(0.5 * hexmetrics.InnerToOuter))
	default:
		centerL = center.Add(m.SolidEdgeMiddle(d.Previous()).Scale(0.5 * hexmetrics.InnerToOuter))
		centerR = center
	}
	e.centerL, e.centerR = centerL, centerR
	center = centerL.Lerp(centerR, 0.5)

	middle := hexmetrics.NewEdgeVerticesStep(centerL.Lerp(edge.V1, 0.5), centerR.Lerp(edge.V5, 0.5), 1.0/6)
	middle.V3.Y = edge.V3.Y
	center.Y = edge.V3.Y

	t.edgeStrip(middle, hexmetrics.Weights1(), h.Index, edge, hexmetrics.Weights1(), h.Index, false)

	cells := e.self()
	t.terrain.AddTriangle(centerL, middle.V1, middle.V2)
	t.terrain.AddQuad(centerL, center, middle.V2, middle.V3)
	t.terrain.AddQuad(center, centerR, middle.V3, middle.V4)
	t.terrain.AddTriangle(centerR, middle.V4, middle.V5)
	t.terrain.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())
	t.terrain.AddQuadCellDataUniform(cells, hexmetrics.Weights1())
	t.terrain.AddQuadCellDataUniform(cells, hexmetrics.Weights1())
	t.terrain.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())

	if h.IsUnderwater() {
		return
	}
	in, ok := t.grid.IncomingRiver(h.Index)
	reversed := ok && in == d
	t.riverQuadLevel(centerL, centerR, middle.V2, middle.V4, h.RiverSurfaceY, 0.4, reversed, cells)
	t.riverQuadLevel(middle.V2, middle.V4, edge.V2, edge.V4, h.RiverSurfaceY, 0.6, reversed, cells)
}

// triangulateAdjacentToRiver handles a dry edge of a hex with a river. The
// center is pushed away from the channel so the fan does not cover it.
func (t *Triangulator) triangulateAdjacentToRiver(e *edgeContext) {
	h := e.hex
	d := e.dir
	m := t.metrics

	if t.grid.HasRoads(h.Index) {
		t.triangulateRoadAdjacentToRiver(e)
	}

	center := e.center
	if t.grid.HasRiverThroughEdge(h.Index, d.Next()) {
		if t.grid.HasRiverThroughEdge(h.Index, d.Previous()) {
			center = center.Add(m.SolidEdgeMiddle(d).Scale(hexmetrics.InnerToOuter * 0.5))
		} else if t.grid.HasRiverThroughEdge(h.Index, d.Previous2()) {
			center = center.Add(m.FirstSolidCorner(d).Scale(0.25))
		}
	} else if t.grid.HasRiverThroughEdge(h.Index, d.Previous()) &&
		t.grid.HasRiverThroughEdge(h.Index, d.Next2()) {
		center = center.Add(m.SecondSolidCorner(d).Scale(0.25))
	}

	middle := hexmetrics.NewEdgeVertices(center.Lerp(e.edge.V1, 0.5), center.Lerp(e.edge.V5, 0.5))
	t.edgeStrip(middle, hexmetrics.Weights1(), h.Index, e.edge, hexmetrics.Weights1(), h.Index, false)
	t.edgeFan(center, middle, h.Index)
}

// triangulateRiverConnection bridges the river across a connection, or
// drops it down a waterfall into lower open water.
func (t *Triangulator) triangulateRiverConnection(e *edgeContext, far hexmetrics.EdgeVertices) {
	h, nb := e.hex, e.neighbor
	near := e.edge
	cells := mesh.Cells(h.Index, nb.Index, h.Index)

	switch {
	case !h.IsUnderwater() && !nb.IsUnderwater():
		in, ok := t.grid.IncomingRiver(h.Index)
		t.riverQuad(near.V2, near.V4, far.V2, far.V4,
			h.RiverSurfaceY, nb.RiverSurfaceY, 0.8, ok && in == e.dir, cells)
	case !h.IsUnderwater() && h.Elevation > nb.WaterLevel:
		t.waterfall(near.V2, near.V4, far.V2, far.V4,
			h.RiverSurfaceY, nb.RiverSurfaceY, nb.WaterSurfaceY, cells)
	case h.IsUnderwater() && !nb.IsUnderwater() && nb.Elevation > h.WaterLevel:
		t.waterfall(far.V4, far.V2, near.V4, near.V2,
			nb.RiverSurfaceY, h.RiverSurfaceY, h.WaterSurfaceY, cells)
	}
}

// riverQuadLevel is riverQuad with one height for both edges.
func (t *Triangulator) riverQuadLevel(v1, v2, v3, v4 math.Vec3, y, v float32, reversed bool, cells mesh.CellIndices) {
	t.riverQuad(v1, v2, v3, v4, y, y, v, reversed, cells)
}

// riverQuad adds a river surface quad. v is the texture row the quad
// starts at; reversed flips the flow for incoming rivers.
func (t *Triangulator) riverQuad(v1, v2, v3, v4 math.Vec3, y1, y2, v float32, reversed bool, cells mesh.CellIndices) {
	t.rivers.AddQuad(v1.WithY(y1), v2.WithY(y1), v3.WithY(y2), v4.WithY(y2))
	if reversed {
		t.rivers.AddQuadUVRect(1, 0, 0.8-v, 0.6-v)
	} else {
		t.rivers.AddQuadUVRect(0, 1, v, v+0.2)
	}
	t.rivers.AddQuadCellData2(cells, hexmetrics.Weights1(), hexmetrics.Weights2())
}

// waterfall adds a river quad falling from y1 to y2, cut off where it
// meets the water surface at waterY.
func (t *Triangulator) waterfall(v1, v2, v3, v4 math.Vec3, y1, y2, waterY float32, cells mesh.CellIndices) {
	v1 = t.rivers.Perturb(v1.WithY(y1))
	v2 = t.rivers.Perturb(v2.WithY(y1))
	v3 = t.rivers.Perturb(v3.WithY(y2))
	v4 = t.rivers.Perturb(v4.WithY(y2))

	if y1 != y2 {
		f := (waterY - y2) / (y1 - y2)
		v3 = v3.Lerp(v1, f)
		v4 = v4.Lerp(v2, f)
	}
	t.rivers.AddQuadUnperturbed(v1, v2, v3, v4)
	t.rivers.AddQuadUVRect(0, 1, 0.8, 1)
	t.rivers.AddQuadCellData2(cells, hexmetrics.Weights1(), hexmetrics.Weights2())
}
