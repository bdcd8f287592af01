package preview

import (
	"image/color"

	"github.com/Faultbox/hexmesh/pkg/math"
)

// Light is a directional light for flat shading.
type Light struct {
	Dir     math.Vec3
	Ambient float32
	Direct  float32
}

// DefaultLight shines from the north-west, slightly above the horizon so
// terraces and cliffs read clearly from above.
func DefaultLight() Light {
	return Light{
		Dir:     math.Vec3{X: -0.4, Y: 1, Z: 0.5}.Normalize(),
		Ambient: 0.45,
		Direct:  0.65,
	}
}

// Shade returns the light intensity of a face with the given normal.
// Faces are lit from both sides.
func (l Light) Shade(normal math.Vec3) float32 {
	ndl := normal.Dot(l.Dir)
	if ndl < 0 {
		ndl = -ndl
	}
	return l.Ambient + ndl*l.Direct
}

// apply scales the color channels by shade, leaving alpha alone.
func apply(c color.NRGBA, shade float32) color.NRGBA {
	return color.NRGBA{R: clamp8(float32(c.R) * shade), G: clamp8(float32(c.G) * shade), B: clamp8(float32(c.B) * shade), A: c.A}
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
