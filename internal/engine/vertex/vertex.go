// Package vertex converts mesh layers into the interleaved vertex layout
// the viewer uploads.
package vertex

import (
	"image/color"

	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/preview"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Vertex is the interleaved layout uploaded for every layer.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    [4]float32
}

// Size is the byte stride of Vertex: ten float32.
const Size = 10 * 4

// Build converts a layer to GPU vertices. Terrain is colored by
// blending the palette over the vertex's cells, every other layer gets
// its flat preview color. Layers without normals get face normals.
func Build(g *hexgrid.Grid, l *mesh.Layer, palette preview.Palette) []Vertex {
	out := make([]Vertex, len(l.Vertices))
	flat := rgba(preview.LayerColor(l.Kind))
	for i, p := range l.Vertices {
		out[i].Position = p
		if l.Kind == mesh.Terrain && i < len(l.Cells) {
			c := palette.Blend(g, l.Cells[i], l.CellWeights[i]).Scale(1.0 / 255)
			out[i].Color = [4]float32{c.X, c.Y, c.Z, 1}
		} else {
			out[i].Color = flat
		}
	}

	if len(l.Normals) == len(l.Vertices) {
		for i, n := range l.Normals {
			out[i].Normal = n
		}
		return out
	}
	for t := 0; t+2 < len(l.Triangles); t += 3 {
		a, b, c := l.Triangles[t], l.Triangles[t+1], l.Triangles[t+2]
		n := l.Vertices[b].Sub(l.Vertices[a]).Cross(l.Vertices[c].Sub(l.Vertices[a])).Normalize()
		out[a].Normal, out[b].Normal, out[c].Normal = n, n, n
	}
	return out
}

// Translucent reports whether a layer must be blended over the others.
func Translucent(k mesh.Kind) bool {
	return preview.LayerColor(k).A < 255 && k != mesh.Terrain
}

func rgba(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
