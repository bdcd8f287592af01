// Package feature places decorative props on hexes and builds the wall
// geometry along fortified borders.
package feature

import (
	gomath "math"

	"github.com/Faultbox/hexmesh/pkg/math"
)

// Kind is the prefab family of a placement.
type Kind int

const (
	Urban Kind = iota
	Farm
	Plant
	Special
	Bridge
	Tower
)

var kindNames = [...]string{"urban", "farm", "plant", "special", "bridge", "tower"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Placement is one prefab instance for the renderer.
type Placement struct {
	Kind Kind

	// Collection is the size class picked from the development thresholds,
	// 0 being the largest. Only set for urban, farm and plant features.
	Collection int

	// Variant selects a prefab inside the collection. For specials it is
	// the special index minus one.
	Variant int

	Hex       int
	Position  math.Vec3
	RotationY float32

	// Scale stretches bridges along their local Z axis; 1 otherwise.
	Scale math.Vec3
}

// Rotation returns the placement's yaw as a quaternion.
func (p Placement) Rotation() math.Quat {
	return math.QuatFromYawDegrees(p.RotationY)
}

// yawToward returns the yaw in degrees that turns +Z towards dir.
func yawToward(dir math.Vec3) float32 {
	if dir.X == 0 && dir.Z == 0 {
		return 0
	}
	return float32(gomath.Atan2(float64(dir.X), float64(dir.Z)) * 180 / gomath.Pi)
}

// yawRight returns the yaw in degrees that turns +X towards dir.
func yawRight(dir math.Vec3) float32 {
	if dir.X == 0 && dir.Z == 0 {
		return 0
	}
	return float32(gomath.Atan2(float64(-dir.Z), float64(dir.X)) * 180 / gomath.Pi)
}
