package hexmetrics

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// EdgeVertices samples one hex edge with five points from corner to corner.
// V3 is the logical midpoint; rivers lower it to carve a stream bed.
type EdgeVertices struct {
	V1, V2, V3, V4, V5 math.Vec3
}

// NewEdgeVertices splits the edge between two corners in quarters.
func NewEdgeVertices(corner1, corner2 math.Vec3) EdgeVertices {
	return NewEdgeVerticesStep(corner1, corner2, 0.25)
}

// NewEdgeVerticesStep places V2 and V4 outerStep away from the corners.
// River channels use 1/6 to narrow the middle section.
func NewEdgeVerticesStep(corner1, corner2 math.Vec3, outerStep float32) EdgeVertices {
	return EdgeVertices{
		V1: corner1,
		V2: corner1.Lerp(corner2, outerStep),
		V3: corner1.Lerp(corner2, 0.5),
		V4: corner1.Lerp(corner2, 1-outerStep),
		V5: corner2,
	}
}

// Translate offsets every vertex by delta.
func (e EdgeVertices) Translate(delta math.Vec3) EdgeVertices {
	return EdgeVertices{
		V1: e.V1.Add(delta),
		V2: e.V2.Add(delta),
		V3: e.V3.Add(delta),
		V4: e.V4.Add(delta),
		V5: e.V5.Add(delta),
	}
}

// Points returns the vertices in order.
func (e EdgeVertices) Points() [5]math.Vec3 {
	return [5]math.Vec3{e.V1, e.V2, e.V3, e.V4, e.V5}
}

// TerraceLerpEdge applies TerraceLerp to every vertex pair of two edges.
func (m Metrics) TerraceLerpEdge(a, b EdgeVertices, step int) EdgeVertices {
	return EdgeVertices{
		V1: m.TerraceLerp(a.V1, b.V1, step),
		V2: m.TerraceLerp(a.V2, b.V2, step),
		V3: m.TerraceLerp(a.V3, b.V3, step),
		V4: m.TerraceLerp(a.V4, b.V4, step),
		V5: m.TerraceLerp(a.V5, b.V5, step),
	}
}
