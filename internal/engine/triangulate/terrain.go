package triangulate

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

func (t *Triangulator) triangulateWithoutRiver(e *edgeContext) {
	t.edgeFan(e.center, e.edge, e.hex.Index)

	if t.grid.HasRoads(e.hex.Index) {
		interp := t.roadInterpolators(e)
		t.triangulateRoad(
			e.center,
			e.center.Lerp(e.edge.V1, interp.X),
			e.center.Lerp(e.edge.V5, interp.Y),
			e.edge, t.grid.HasRoadThroughEdge(e.hex.Index, e.dir), e.hex.Index,
		)
	}
}

// edgeFan connects center to the five edge vertices with four triangles.
func (t *Triangulator) edgeFan(center math.Vec3, edge hexmetrics.EdgeVertices, index int) {
	cells := mesh.Cells(index, index, index)
	t.terrain.AddTriangle(center, edge.V1, edge.V2)
	t.terrain.AddTriangle(center, edge.V2, edge.V3)
	t.terrain.AddTriangle(center, edge.V3, edge.V4)
	t.terrain.AddTriangle(center, edge.V4, edge.V5)
	for range 4 {
		t.terrain.AddTriangleCellDataUniform(cells, hexmetrics.Weights1())
	}
}

// edgeStrip connects two parallel edges with four quads, optionally with a
// road segment on top.
func (t *Triangulator) edgeStrip(e1 hexmetrics.EdgeVertices, w1 math.Vec3, index1 int,
	e2 hexmetrics.EdgeVertices, w2 math.Vec3, index2 int, hasRoad bool) {
	t.terrain.AddQuad(e1.V1, e1.V2, e2.V1, e2.V2)
	t.terrain.AddQuad(e1.V2, e1.V3, e2.V2, e2.V3)
	t.terrain.AddQuad(e1.V3, e1.V4, e2.V3, e2.V4)
	t.terrain.AddQuad(e1.V4, e1.V5, e2.V4, e2.V5)

	cells := mesh.Cells(index1, index2, index1)
	for range 4 {
		t.terrain.AddQuadCellData2(cells, w1, w2)
	}

	if hasRoad {
		t.triangulateRoadSegment(e1.V2, e1.V3, e1.V4, e2.V2, e2.V3, e2.V4, w1, w2, cells)
	}
}

// triangulateConnection fills the space between the hex and its neighbor
// in the edge's direction, and the corner shared with the next neighbor.
func (t *Triangulator) triangulateConnection(e *edgeContext) {
	nb := e.neighbor
	if nb == nil {
		return
	}
	h := e.hex
	d := e.dir
	e1 := e.edge

	bridge := t.metrics.Bridge(d)
	bridge.Y = nb.Position.Y - h.Position.Y
	e2 := hexmetrics.NewEdgeVertices(e1.V1.Add(bridge), e1.V5.Add(bridge))

	hasRiver := t.grid.HasRiverThroughEdge(h.Index, d)
	hasRoad := t.grid.HasRoadThroughEdge(h.Index, d)

	if hasRiver {
		e2.V3.Y = nb.StreamBedY
		t.triangulateRiverConnection(e, e2)
	}
	e.far = e2

	if t.grid.EdgeType(h.Index, d) == hexmetrics.Slope {
		t.edgeTerraces(e1, h, e2, nb, hasRoad)
	} else {
		t.edgeStrip(e1, hexmetrics.Weights1(), h.Index, e2, hexmetrics.Weights2(), nb.Index, hasRoad)
	}

	t.features.AddWall(e1, h, e2, nb, hasRiver, hasRoad)

	if d > hexmetrics.E {
		return
	}
	next, ok := t.grid.Neighbor(h.Index, d.Next())
	if !ok {
		return
	}
	v5 := e1.V5.Add(t.metrics.Bridge(d.Next()))
	v5.Y = next.Position.Y

	// The lowest hex is the pivot; ties keep the unrotated order first.
	if h.Elevation <= nb.Elevation {
		if h.Elevation <= next.Elevation {
			t.triangulateCorner(e1.V5, h, e2.V5, nb, v5, next)
		} else {
			t.triangulateCorner(v5, next, e1.V5, h, e2.V5, nb)
		}
	} else if nb.Elevation <= next.Elevation {
		t.triangulateCorner(e2.V5, nb, v5, next, e1.V5, h)
	} else {
		t.triangulateCorner(v5, next, e1.V5, h, e2.V5, nb)
	}
}

// edgeTerraces steps a slope connection in TerraceSteps strips.
func (t *Triangulator) edgeTerraces(begin hexmetrics.EdgeVertices, beginHex *hexgrid.Hex,
	end hexmetrics.EdgeVertices, endHex *hexgrid.Hex, hasRoad bool) {
	m := t.metrics
	i1, i2 := beginHex.Index, endHex.Index

	e2 := m.TerraceLerpEdge(begin, end, 1)
	w2 := m.TerraceLerpWeights(hexmetrics.Weights1(), hexmetrics.Weights2(), 1)
	t.edgeStrip(begin, hexmetrics.Weights1(), i1, e2, w2, i2, hasRoad)

	for step := 2; step < m.TerraceSteps(); step++ {
		e1, w1 := e2, w2
		e2 = m.TerraceLerpEdge(begin, end, step)
		w2 = m.TerraceLerpWeights(hexmetrics.Weights1(), hexmetrics.Weights2(), step)
		t.edgeStrip(e1, w1, i1, e2, w2, i2, hasRoad)
	}

	t.edgeStrip(e2, w2, i1, end, hexmetrics.Weights2(), i2, hasRoad)
}
