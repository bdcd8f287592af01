package hexmetrics

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// EdgeType classifies the elevation change across a connection.
type EdgeType int

// Edge types.
const (
	Flat EdgeType = iota
	Slope
	Cliff
)

func (t EdgeType) String() string {
	switch t {
	case Flat:
		return "flat"
	case Slope:
		return "slope"
	case Cliff:
		return "cliff"
	}
	return "unknown"
}

// GetEdgeType classifies the connection between two elevation levels.
func GetEdgeType(elevation1, elevation2 int) EdgeType {
	delta := elevation2 - elevation1
	switch {
	case delta == 0:
		return Flat
	case delta == 1 || delta == -1:
		return Slope
	default:
		return Cliff
	}
}

// TerraceSteps is the number of interpolation steps across a slope:
// every terrace has a flat and a sloped part, plus the final slope.
func (m Metrics) TerraceSteps() int {
	return m.TerracesPerSlope*2 + 1
}

// HorizontalTerraceStepSize is the XZ advance per terrace step.
func (m Metrics) HorizontalTerraceStepSize() float32 {
	return 1 / float32(m.TerraceSteps())
}

// VerticalTerraceStepSize is the Y advance per terrace.
func (m Metrics) VerticalTerraceStepSize() float32 {
	return 1 / float32(m.TerracesPerSlope+1)
}

// TerraceLerp returns the position of terrace step between a and b. XZ
// advances every step, Y only on odd steps, producing flat treads.
// Step 0 yields a and step TerraceSteps yields b.
func (m Metrics) TerraceLerp(a, b math.Vec3, step int) math.Vec3 {
	switch {
	case step <= 0:
		return a
	case step >= m.TerraceSteps():
		return b
	}
	h := float32(step) * m.HorizontalTerraceStepSize()
	a.X += (b.X - a.X) * h
	a.Z += (b.Z - a.Z) * h
	v := float32((step+1)/2) * m.VerticalTerraceStepSize()
	a.Y += (b.Y - a.Y) * v
	return a
}

// TerraceLerpWeights interpolates blend weights in lockstep with TerraceLerp.
func (m Metrics) TerraceLerpWeights(a, b math.Vec3, step int) math.Vec3 {
	switch {
	case step <= 0:
		return a
	case step >= m.TerraceSteps():
		return b
	}
	h := float32(step) * m.HorizontalTerraceStepSize()
	return a.Lerp(b, h)
}
