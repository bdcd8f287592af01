// Package camera provides the orbit camera of the hex map viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// OrbitCamera orbits around a center point on the map.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// FOV is the vertical field of view in degrees.
	FOV float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		Pitch:           0.9,
		MinDistance:     20.0,
		MaxDistance:     5000.0,
		MinPitch:        0.15,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             60,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosPitch := gomath.Cos(float64(c.Pitch))
	return math.Vec3{
		X: c.Center.X + c.Distance*float32(cosPitch*gomath.Sin(float64(c.Yaw))),
		Y: c.Center.Y + c.Distance*float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Center.Z + c.Distance*float32(cosPitch*gomath.Cos(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection whose far plane keeps
// the whole orbit in view.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	near := max(c.Distance*0.01, 0.1)
	return math.Perspective(c.FOV*gomath.Pi/180, aspect, near, c.Distance*4)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = min(max(c.Pitch, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// HandleMovement pans the center across the map relative to the current
// yaw. Speed scales with distance.
func (c *OrbitCamera) HandleMovement(forward, right float32) {
	speed := c.Distance * 0.01
	sin, cos := float32(gomath.Sin(float64(c.Yaw))), float32(gomath.Cos(float64(c.Yaw)))

	// forward moves away from the camera
	c.Center.X += (-sin*forward + cos*right) * speed
	c.Center.Z += (-cos*forward - sin*right) * speed
}

// FitToBounds centers the camera on b and backs off until the larger
// horizontal extent fits the field of view.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	if b.Empty() {
		return
	}
	c.Center = b.Min.Lerp(b.Max, 0.5)

	size := max(b.Max.X-b.Min.X, b.Max.Z-b.Min.Z)
	half := float32(gomath.Tan(float64(c.FOV) * gomath.Pi / 360))
	if half <= 0 {
		half = 1
	}
	c.Distance = max(size/(2*half)*1.1, c.MinDistance)
	if c.Distance > c.MaxDistance {
		c.MaxDistance = c.Distance * 2
	}
	c.Pitch = 0.9
	c.Yaw = 0
}
