package preview

import (
	"image/color"

	"github.com/Faultbox/hexmesh/pkg/math"
)

// fillTriangle rasterizes a screen-space triangle with a flat color. X and
// Y of each point are pixel coordinates, Z is the depth value compared
// against the depth buffer. Translucent colors are blended over the
// existing pixel and leave the depth buffer untouched.
//
// Called once per triangle of every layer, so the inner loop does not
// allocate.
func (fb *FrameBuffer) fillTriangle(p0, p1, p2 math.Vec3, c color.NRGBA) {
	x0, y0, z0 := p0.X, p0.Y, p0.Z
	x1, y1, z1 := p1.X, p1.Y, p1.Z
	x2, y2, z2 := p2.X, p2.Y, p2.Z

	minX := int(min(x0, x1, x2))
	maxX := int(max(x0, x1, x2)) + 1
	minY := int(min(y0, y1, y2))
	maxY := int(max(y0, y1, y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	opaque := c.A == 255
	alpha := uint32(c.A)

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			idx := rowOff + sx
			if z < fb.Depth[idx] {
				continue
			}

			ci := idx * 4
			if opaque {
				fb.Depth[idx] = z
				fb.Color[ci] = c.R
				fb.Color[ci+1] = c.G
				fb.Color[ci+2] = c.B
				fb.Color[ci+3] = 255
				continue
			}
			fb.Color[ci] = blend(fb.Color[ci], c.R, alpha)
			fb.Color[ci+1] = blend(fb.Color[ci+1], c.G, alpha)
			fb.Color[ci+2] = blend(fb.Color[ci+2], c.B, alpha)
			fb.Color[ci+3] = uint8(alpha + uint32(fb.Color[ci+3])*(255-alpha)/255)
		}
	}
}

func blend(dst, src uint8, alpha uint32) uint8 {
	return uint8((uint32(src)*alpha + uint32(dst)*(255-alpha)) / 255)
}
