package triangulate

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// roadInterpolators returns how far towards the left and right corners the
// road reaches at the hex center. Roads through the edge, or next to a
// road on the neighboring edge, are wider.
func (t *Triangulator) roadInterpolators(e *edgeContext) math.Vec2 {
	i, d := e.hex.Index, e.dir
	if t.grid.HasRoadThroughEdge(i, d) {
		return math.Vec2{X: 0.5, Y: 0.5}
	}
	var interp math.Vec2
	interp.X = 0.25
	if t.grid.HasRoadThroughEdge(i, d.Previous()) {
		interp.X = 0.5
	}
	interp.Y = 0.25
	if t.grid.HasRoadThroughEdge(i, d.Next()) {
		interp.Y = 0.5
	}
	return interp
}

// triangulateRoad fills the road from its center to the edge: a full
// segment when the road crosses the edge, a closing triangle otherwise.
func (t *Triangulator) triangulateRoad(center, mL, mR math.Vec3, edge hexmetrics.EdgeVertices,
	hasRoadThroughEdge bool, index int) {
	if !hasRoadThroughEdge {
		t.triangulateRoadEdge(center, mL, mR, index)
		return
	}
	cells := mesh.Cells(index, index, index)
	mC := mL.Lerp(mR, 0.5)
	t.triangulateRoadSegment(mL, mC, mR, edge.V2, edge.V3, edge.V4, hexmetrics.Weights1(), hexmetrics.Weights1(), cells)

	t.roads.AddTriangle(center, mL, mC)
	t.roads.AddTriangle(center, mC, mR)
	t.roads.AddTriangleUV(math.Vec2{X: 1}, math.Vec2{}, math.Vec2{X: 1})
	t.roads.AddTriangleUV(math.Vec2{X: 1}, math.Vec2{X: 1}, math.Vec2{})
	t.roads.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())
	t.roads.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())
}

// triangulateRoadEdge closes a road that does not leave through this edge.
func (t *Triangulator) triangulateRoadEdge(center, mL, mR math.Vec3, index int) {
	t.roads.AddTriangle(center, mL, mR)
	t.roads.AddTriangleUV(math.Vec2{X: 1}, math.Vec2{}, math.Vec2{})
	t.roads.AddTriangleCellDataUniform(mesh.Cells(index, index, index), hexmetrics.Weights1())
}

// triangulateRoadSegment adds two road quads between a near triple and a
// far triple of points. U runs across the road, 1 in the middle.
func (t *Triangulator) triangulateRoadSegment(v1, v2, v3, v4, v5, v6 math.Vec3,
	w1, w2 math.Vec3, cells mesh.CellIndices) {
	t.roads.AddQuad(v1, v2, v4, v5)
	t.roads.AddQuad(v2, v3, v5, v6)
	t.roads.AddQuadUVRect(0, 1, 0, 0)
	t.roads.AddQuadUVRect(1, 0, 0, 0)
	t.roads.AddQuadCellData2(cells, w1, w2)
	t.roads.AddQuadCellData2(cells, w1, w2)
}

// triangulateRoadAdjacentToRiver draws the road part of a dry edge of a
// river hex, moving the road center out of the channel. Road pieces that
// would lead nowhere are pruned, and bridges span straight river crossings.
func (t *Triangulator) triangulateRoadAdjacentToRiver(e *edgeContext) {
	g := t.grid
	m := t.metrics
	i, d := e.hex.Index, e.dir
	center := e.center

	hasRoadThroughEdge := g.HasRoadThroughEdge(i, d)
	previousHasRiver := g.HasRiverThroughEdge(i, d.Previous())
	nextHasRiver := g.HasRiverThroughEdge(i, d.Next())
	interp := t.roadInterpolators(e)
	roadCenter := center

	in, _ := g.IncomingRiver(i)
	out, _ := g.OutgoingRiver(i)

	switch {
	case g.HasRiverBeginOrEnd(i):
		roadCenter = roadCenter.Add(m.SolidEdgeMiddle(g.RiverBeginOrEndDirection(i).Opposite()).Scale(1.0 / 3))

	case in == out.Opposite():
		var corner math.Vec3
		if previousHasRiver {
			if !hasRoadThroughEdge && !g.HasRoadThroughEdge(i, d.Next()) {
				return
			}
			corner = m.SecondSolidCorner(d)
		} else {
			if !hasRoadThroughEdge && !g.HasRoadThroughEdge(i, d.Previous()) {
				return
			}
			corner = m.FirstSolidCorner(d)
		}
		roadCenter = roadCenter.Add(corner.Scale(0.5))
		if in == d.Next() && (g.HasRoadThroughEdge(i, d.Next2()) || g.HasRoadThroughEdge(i, d.Opposite())) {
			t.features.AddBridge(i, roadCenter, center.Sub(corner.Scale(0.5)))
		}
		center = center.Add(corner.Scale(0.25))

	case in == out.Previous():
		roadCenter = roadCenter.Sub(m.SecondCorner(in).Scale(0.2))

	case in == out.Next():
		roadCenter = roadCenter.Sub(m.FirstCorner(in).Scale(0.2))

	case previousHasRiver && nextHasRiver:
		if !hasRoadThroughEdge {
			return
		}
		offset := m.SolidEdgeMiddle(d).Scale(hexmetrics.InnerToOuter)
		roadCenter = roadCenter.Add(offset.Scale(0.7))
		center = center.Add(offset.Scale(0.5))

	default:
		middle := d
		if previousHasRiver {
			middle = d.Next()
		} else if nextHasRiver {
			middle = d.Previous()
		}
		if !g.HasRoadThroughEdge(i, middle) &&
			!g.HasRoadThroughEdge(i, middle.Previous()) &&
			!g.HasRoadThroughEdge(i, middle.Next()) {
			return
		}
		offset := m.SolidEdgeMiddle(middle)
		roadCenter = roadCenter.Add(offset.Scale(0.25))
		if d == middle && g.HasRoadThroughEdge(i, d.Opposite()) {
			t.features.AddBridge(i, roadCenter, center.Sub(offset.Scale(hexmetrics.InnerToOuter*0.7)))
		}
	}

	mL := roadCenter.Lerp(e.edge.V1, interp.X)
	mR := roadCenter.Lerp(e.edge.V5, interp.Y)
	t.triangulateRoad(roadCenter, mL, mR, e.edge, hasRoadThroughEdge, i)
	if previousHasRiver {
		t.triangulateRoadEdge(roadCenter, center, mL, i)
	}
	if nextHasRiver {
		t.triangulateRoadEdge(roadCenter, mR, center, i)
	}
}
