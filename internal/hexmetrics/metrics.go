// Package hexmetrics holds the geometric constants of the hex map and the
// primitives built on them: corners, bridges, edge vertices, terrace
// interpolation, perturbation and the position-keyed samplers.
package hexmetrics

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Ratio between the inner and outer radius of a regular hexagon.
const (
	OuterToInner float32 = 0.866025404
	InnerToOuter float32 = 1 / OuterToInner
)

// Weights1 is the blend weight of a vertex owned by the first of up to
// three hexes. Weights2 and Weights3 select the second and third.
func Weights1() math.Vec3 { return math.Vec3{X: 1} }

// Weights2 selects the second hex.
func Weights2() math.Vec3 { return math.Vec3{Y: 1} }

// Weights3 selects the third hex.
func Weights3() math.Vec3 { return math.Vec3{Z: 1} }

// Metrics are the tunable dimensions of the hex map.
type Metrics struct {
	OuterRadius              float32 `yaml:"outer_radius"`
	SolidFactor              float32 `yaml:"solid_factor"`
	WaterFactor              float32 `yaml:"water_factor"`
	ElevationStep            float32 `yaml:"elevation_step"`
	TerracesPerSlope         int     `yaml:"terraces_per_slope"`
	CellPerturbStrength      float32 `yaml:"cell_perturb_strength"`
	ElevationPerturbStrength float32 `yaml:"elevation_perturb_strength"`
	NoiseScale               float32 `yaml:"noise_scale"`
	HashGridScale            float32 `yaml:"hash_grid_scale"`
	StreamBedElevationOffset float32 `yaml:"stream_bed_elevation_offset"`
	WaterElevationOffset     float32 `yaml:"water_elevation_offset"`
	WallHeight               float32 `yaml:"wall_height"`
	WallYOffset              float32 `yaml:"wall_y_offset"`
	WallThickness            float32 `yaml:"wall_thickness"`
	WallTowerThreshold       float32 `yaml:"wall_tower_threshold"`
	BridgeDesignLength       float32 `yaml:"bridge_design_length"`
	ChunkSizeX               int     `yaml:"chunk_size_x"`
	ChunkSizeZ               int     `yaml:"chunk_size_z"`

	// WrapSize is the map width in cells for east-west wrapping maps, 0 otherwise.
	WrapSize int `yaml:"-"`
}

// Default returns the standard hex map dimensions.
func Default() Metrics {
	return Metrics{
		OuterRadius:              10,
		SolidFactor:              0.8,
		WaterFactor:              0.6,
		ElevationStep:            3,
		TerracesPerSlope:         2,
		CellPerturbStrength:      4,
		ElevationPerturbStrength: 1.5,
		NoiseScale:               0.003,
		HashGridScale:            0.25,
		StreamBedElevationOffset: -1.75,
		WaterElevationOffset:     -0.5,
		WallHeight:               4,
		WallYOffset:              -1,
		WallThickness:            0.75,
		WallTowerThreshold:       0.5,
		BridgeDesignLength:       7,
		ChunkSizeX:               5,
		ChunkSizeZ:               5,
	}
}

// InnerRadius is the distance from the center to an edge midpoint.
func (m Metrics) InnerRadius() float32 {
	return m.OuterRadius * OuterToInner
}

// InnerDiameter is the horizontal distance between neighbouring centers.
func (m Metrics) InnerDiameter() float32 {
	return m.InnerRadius() * 2
}

// BlendFactor is the share of an edge-to-center distance used by connections.
func (m Metrics) BlendFactor() float32 {
	return 1 - m.SolidFactor
}

// WaterBlendFactor is BlendFactor's counterpart for open water.
func (m Metrics) WaterBlendFactor() float32 {
	return 1 - m.WaterFactor
}

// Wrapping reports whether the map wraps east-west.
func (m Metrics) Wrapping() bool {
	return m.WrapSize > 0
}

// WrapWidth is the world-space width after which the map repeats.
func (m Metrics) WrapWidth() float32 {
	return float32(m.WrapSize) * m.InnerDiameter()
}

// Corner returns hexagon corner i (0..6, corner 6 equals corner 0) relative
// to the hex center.
func (m Metrics) Corner(i int) math.Vec3 {
	r := m.OuterRadius
	ir := m.InnerRadius()
	switch i % DirectionCount {
	case 0:
		return math.Vec3{X: 0, Z: r}
	case 1:
		return math.Vec3{X: ir, Z: 0.5 * r}
	case 2:
		return math.Vec3{X: ir, Z: -0.5 * r}
	case 3:
		return math.Vec3{X: 0, Z: -r}
	case 4:
		return math.Vec3{X: -ir, Z: -0.5 * r}
	default:
		return math.Vec3{X: -ir, Z: 0.5 * r}
	}
}

// FirstCorner is the outer corner that starts edge d.
func (m Metrics) FirstCorner(d Direction) math.Vec3 {
	return m.Corner(int(d))
}

// SecondCorner is the outer corner that ends edge d.
func (m Metrics) SecondCorner(d Direction) math.Vec3 {
	return m.Corner(int(d) + 1)
}

// FirstSolidCorner is FirstCorner pulled in to the solid core.
func (m Metrics) FirstSolidCorner(d Direction) math.Vec3 {
	return m.FirstCorner(d).Scale(m.SolidFactor)
}

// SecondSolidCorner is SecondCorner pulled in to the solid core.
func (m Metrics) SecondSolidCorner(d Direction) math.Vec3 {
	return m.SecondCorner(d).Scale(m.SolidFactor)
}

// FirstWaterCorner is FirstCorner pulled in to the open water core.
func (m Metrics) FirstWaterCorner(d Direction) math.Vec3 {
	return m.FirstCorner(d).Scale(m.WaterFactor)
}

// SecondWaterCorner is SecondCorner pulled in to the open water core.
func (m Metrics) SecondWaterCorner(d Direction) math.Vec3 {
	return m.SecondCorner(d).Scale(m.WaterFactor)
}

// SolidEdgeMiddle is the midpoint of the solid edge in direction d.
func (m Metrics) SolidEdgeMiddle(d Direction) math.Vec3 {
	return m.FirstCorner(d).Add(m.SecondCorner(d)).Scale(0.5 * m.SolidFactor)
}

// Bridge translates a solid edge onto the neighbour's solid edge.
func (m Metrics) Bridge(d Direction) math.Vec3 {
	return m.FirstCorner(d).Add(m.SecondCorner(d)).Scale(m.BlendFactor())
}

// WaterBridge translates a water edge onto the neighbour's water edge.
func (m Metrics) WaterBridge(d Direction) math.Vec3 {
	return m.FirstCorner(d).Add(m.SecondCorner(d)).Scale(m.WaterBlendFactor())
}
