// Package hexgrid holds the hex cells of a map and the relationship graphs
// between them: adjacency, rivers, roads and elevation edge types.
package hexgrid

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Hex is one cell of the map. Position and the surface heights are derived
// from the elevation and water level by the owning Grid.
type Hex struct {
	Index int

	// Offset coordinates in the grid.
	X, Z int

	// ColumnIndex is the chunk column the hex belongs to.
	ColumnIndex int

	Position      math.Vec3
	StreamBedY    float32
	RiverSurfaceY float32
	WaterSurfaceY float32

	Elevation        int
	WaterLevel       int
	TerrainTypeIndex int

	UrbanLevel int
	FarmLevel  int
	PlantLevel int

	SpecialIndex int
	Walled       bool
}

// IsUnderwater reports whether the water level is above the terrain.
func (h *Hex) IsUnderwater() bool {
	return h.WaterLevel > h.Elevation
}

// IsSpecial reports whether the hex carries a special feature.
func (h *Hex) IsSpecial() bool {
	return h.SpecialIndex > 0
}
