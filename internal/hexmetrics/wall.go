package hexmetrics

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// WallElevationOffset places a wall foot on the first terrace of a slope.
func (m Metrics) WallElevationOffset() float32 {
	return m.VerticalTerraceStepSize()
}

// WallLerp returns the foot of a wall halfway between near and far. On a
// slope the foot sits on the terrace closest to the lower side.
func (m Metrics) WallLerp(near, far math.Vec3) math.Vec3 {
	near.X += (far.X - near.X) * 0.5
	near.Z += (far.Z - near.Z) * 0.5
	v := 1 - m.WallElevationOffset()
	if near.Y < far.Y {
		v = m.WallElevationOffset()
	}
	near.Y += (far.Y-near.Y)*v + m.WallYOffset
	return near
}

// WallThicknessOffset is half the wall thickness, perpendicular to the
// wall run in the XZ plane.
func (m Metrics) WallThicknessOffset(near, far math.Vec3) math.Vec3 {
	offset := far.Sub(near)
	offset.Y = 0
	return offset.Normalize().Scale(m.WallThickness * 0.5)
}
