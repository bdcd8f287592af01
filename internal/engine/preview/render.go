package preview

import (
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Options configure a Renderer.
type Options struct {
	Width  int
	Height int

	// Supersample renders at this multiple of the output size and scales
	// down afterwards. Values below 2 disable it.
	Supersample int

	Palette    Palette
	Background color.NRGBA
	Light      Light
}

// DefaultOptions returns a 1024x1024 preview with 2x supersampling.
func DefaultOptions() Options {
	return Options{
		Width:       1024,
		Height:      1024,
		Supersample: 2,
		Palette:     DefaultPalette,
		Background:  color.NRGBA{R: 24, G: 28, B: 36, A: 255},
		Light:       DefaultLight(),
	}
}

// layerStyle is the flat color of a non-terrain layer and its depth bias.
// Roads lie exactly on the terrain and need the bias to win the depth test.
type layerStyle struct {
	color color.NRGBA
	bias  float32
}

var layerStyles = [mesh.KindCount]layerStyle{
	mesh.Rivers:     {color.NRGBA{R: 70, G: 130, B: 190, A: 210}, 0},
	mesh.Roads:      {color.NRGBA{R: 150, G: 118, B: 84, A: 255}, 0.02},
	mesh.Water:      {color.NRGBA{R: 40, G: 90, B: 160, A: 170}, 0},
	mesh.WaterShore: {color.NRGBA{R: 90, G: 140, B: 190, A: 150}, 0},
	mesh.Estuaries:  {color.NRGBA{R: 70, G: 125, B: 185, A: 170}, 0},
	mesh.Walls:      {color.NRGBA{R: 170, G: 160, B: 150, A: 255}, 0},
}

// DrawOrder lists the layers opaque first, so translucent ones blend over
// them.
var DrawOrder = [mesh.KindCount]mesh.Kind{
	mesh.Terrain, mesh.Roads, mesh.Walls,
	mesh.Water, mesh.WaterShore, mesh.Estuaries, mesh.Rivers,
}

// Renderer draws a top-down orthographic view of triangulated chunks.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

// New creates a renderer. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Width <= 0 {
		opts.Width = 1
	}
	if opts.Height <= 0 {
		opts.Height = 1
	}
	return &Renderer{opts: opts, log: log}
}

// view maps world positions to pixels: X to the right, Z up, height as
// depth.
type view struct {
	minX, maxZ float32
	scale      float32
	offX, offY float32
}

func newView(b mesh.Bounds, w, h int) view {
	dx := b.Max.X - b.Min.X
	dz := b.Max.Z - b.Min.Z
	if dx <= 0 {
		dx = 1
	}
	if dz <= 0 {
		dz = 1
	}
	scale := min(float32(w)/dx, float32(h)/dz)
	return view{
		minX:  b.Min.X,
		maxZ:  b.Max.Z,
		scale: scale,
		offX:  (float32(w) - dx*scale) / 2,
		offY:  (float32(h) - dz*scale) / 2,
	}
}

func (v view) project(p math.Vec3, bias float32) math.Vec3 {
	return math.Vec3{
		X: (p.X-v.minX)*v.scale + v.offX,
		Y: (v.maxZ-p.Z)*v.scale + v.offY,
		Z: p.Y + bias,
	}
}

// Render draws every layer of sets. g resolves the terrain types the
// terrain layer's cell data refers to.
func (r *Renderer) Render(g *hexgrid.Grid, sets []*mesh.Set) *image.NRGBA {
	start := time.Now()
	ss := max(r.opts.Supersample, 1)
	w, h := r.opts.Width*ss, r.opts.Height*ss

	fb := NewFrameBuffer(w, h)
	fb.Clear(r.opts.Background)

	bounds := mesh.EmptyBounds()
	for _, s := range sets {
		bounds = bounds.Union(s.Bounds())
	}
	if bounds.Empty() {
		r.log.Warn("nothing to render")
		return fb.Image()
	}
	v := newView(bounds, w, h)

	drawn := 0
	for _, k := range DrawOrder {
		for _, s := range sets {
			drawn += r.drawLayer(fb, v, g, s.Layer(k))
		}
	}

	img := fb.Image()
	if ss > 1 {
		img = Downsample(img, r.opts.Width, r.opts.Height)
	}
	r.log.Debug("preview rendered",
		zap.Int("triangles", drawn),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Duration("elapsed", time.Since(start)))
	return img
}

func (r *Renderer) drawLayer(fb *FrameBuffer, v view, g *hexgrid.Grid, l *mesh.Layer) int {
	style := layerStyles[l.Kind]
	n := 0
	for t := 0; t+2 < len(l.Triangles); t += 3 {
		i0, i1, i2 := l.Triangles[t], l.Triangles[t+1], l.Triangles[t+2]
		a, b, c := l.Vertices[i0], l.Vertices[i1], l.Vertices[i2]

		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Length() < 1e-8 {
			continue
		}
		col := style.color
		if l.Kind == mesh.Terrain {
			col = r.terrainColor(g, l, i0, i1, i2)
		}
		col = apply(col, r.opts.Light.Shade(normal.Normalize()))

		fb.fillTriangle(v.project(a, style.bias), v.project(b, style.bias), v.project(c, style.bias), col)
		n++
	}
	return n
}

// terrainColor averages the blended terrain colors of a triangle's
// vertices.
func (r *Renderer) terrainColor(g *hexgrid.Grid, l *mesh.Layer, idx ...uint32) color.NRGBA {
	var sum math.Vec3
	for _, i := range idx {
		sum = sum.Add(r.opts.Palette.Blend(g, l.Cells[i], l.CellWeights[i]))
	}
	sum = sum.Scale(1 / float32(len(idx)))
	return color.NRGBA{R: clamp8(sum.X), G: clamp8(sum.Y), B: clamp8(sum.Z), A: 255}
}

// LayerColor returns the flat color non-terrain layers of kind k are drawn
// with. Terrain is colored from the palette instead.
func LayerColor(k mesh.Kind) color.NRGBA {
	return layerStyles[k].color
}
