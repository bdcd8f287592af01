package triangulate

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// edgeContext is the staging data of one hex edge. It is rebuilt for every
// direction and shared by the sub-triangulators of that edge only.
type edgeContext struct {
	hex *hexgrid.Hex
	dir hexmetrics.Direction

	// neighbor is nil on the map border.
	neighbor *hexgrid.Hex

	center math.Vec3
	edge   hexmetrics.EdgeVertices

	// Connection edge on the neighbor's side, set by triangulateConnection.
	far hexmetrics.EdgeVertices

	// River bend anchors, set by triangulateWithRiver.
	centerL, centerR math.Vec3

	// Water surface center, set by triangulateWater.
	waterCenter math.Vec3
}

func (e *edgeContext) reset(m hexmetrics.Metrics, g *hexgrid.Grid, h *hexgrid.Hex, d hexmetrics.Direction) *edgeContext {
	*e = edgeContext{hex: h, dir: d, center: h.Position}
	if n, ok := g.Neighbor(h.Index, d); ok {
		e.neighbor = n
	}
	e.edge = hexmetrics.NewEdgeVertices(
		h.Position.Add(m.FirstSolidCorner(d)),
		h.Position.Add(m.SecondSolidCorner(d)),
	)
	return e
}

// self is the cell index triple of a vertex owned by the edge's hex alone.
func (e *edgeContext) self() mesh.CellIndices {
	i := e.hex.Index
	return mesh.Cells(i, i, i)
}
