package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"

	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Palette maps terrain type indices to colors.
type Palette []color.NRGBA

// DefaultPalette holds sand, grass, mud, stone and snow.
var DefaultPalette = Palette{
	{R: 222, G: 200, B: 140, A: 255},
	{R: 110, G: 160, B: 70, A: 255},
	{R: 120, G: 95, B: 70, A: 255},
	{R: 130, G: 130, B: 130, A: 255},
	{R: 235, G: 235, B: 240, A: 255},
}

// At returns the color of terrain type i. Out of range types wrap around.
func (p Palette) At(i int) color.NRGBA {
	if len(p) == 0 {
		return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Blend mixes the terrain colors of up to three hexes by their weights.
// The result is in 0..255 per channel.
func (p Palette) Blend(g *hexgrid.Grid, cells mesh.CellIndices, w math.Vec3) math.Vec3 {
	weights := [3]float32{w.X, w.Y, w.Z}
	var out math.Vec3
	for k, ci := range cells {
		c := p.At(g.Hex(int(ci)).TerrainTypeIndex)
		out = out.Add(math.Vec3{X: float32(c.R), Y: float32(c.G), Z: float32(c.B)}.Scale(weights[k]))
	}
	return out
}

// LoadPalette reads a palette strip: one terrain type per pixel along the
// top row of a TGA or PNG image.
func LoadPalette(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("palette: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(f)
	} else {
		img, err = png.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("palette: decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("palette: %s is empty", path)
	}
	p := make(Palette, 0, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		c := color.NRGBAModel.Convert(img.At(x, b.Min.Y)).(color.NRGBA)
		c.A = 255
		p = append(p, c)
	}
	return p, nil
}
