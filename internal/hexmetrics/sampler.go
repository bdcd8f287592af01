package hexmetrics

import (
	gomath "math"

	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/hexmesh/pkg/math"
)

// Hash holds five pseudo-random values in [0,1) derived from a position.
type Hash struct {
	A, B, C, D, E float32
}

// Sampler maps a world position to a Hash. Implementations must be pure:
// the same position always yields the same values, so re-triangulating an
// unchanged map reproduces identical geometry.
type Sampler interface {
	Sample(p math.Vec3) Hash
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(p math.Vec3) Hash

// Sample calls f(p).
func (f SamplerFunc) Sample(p math.Vec3) Hash {
	return f(p)
}

// ConstantSampler returns the same Hash everywhere.
type ConstantSampler Hash

// Sample returns the constant hash.
func (c ConstantSampler) Sample(math.Vec3) Hash {
	return Hash(c)
}

// HashGrid is a seeded hash of the position quantised to cells of size
// 1/Scale in the XZ plane. Feature selection, rotations and tower
// decisions sample it.
type HashGrid struct {
	Seed      uint32
	Scale     float32
	WrapWidth float32
}

// NewHashGrid builds a hash grid for the given metrics.
func NewHashGrid(seed uint32, m Metrics) HashGrid {
	return HashGrid{Seed: seed, Scale: m.HashGridScale, WrapWidth: m.WrapWidth()}
}

// Sample returns the hash of the grid cell containing p.
func (g HashGrid) Sample(p math.Vec3) Hash {
	x := wrapCoordinate(float64(p.X), float64(g.WrapWidth)) * float64(g.Scale)
	z := float64(p.Z) * float64(g.Scale)
	h := hash2(g.Seed, int32(gomath.Floor(x)), int32(gomath.Floor(z)))

	var out [5]float32
	for i := range out {
		out[i] = unitFloat(h)
		h = hash32(h + 0x9e3779b9)
	}
	return Hash{A: out[0], B: out[1], C: out[2], D: out[3], E: out[4]}
}

// SimplexNoise layers octaves of OpenSimplex noise, one independent
// generator per Hash channel, so nearby positions get similar values.
// Perturbation samples it. On wrapping maps X is mapped onto a circle so
// the noise is periodic over the wrap width.
type SimplexNoise struct {
	seed        uint32
	scale       float64
	wrapWidth   float64
	octaves     int
	persistence float64
	channels    [5]opensimplex.Noise
}

// NewSimplexNoise builds a two-octave noise source for the given metrics.
func NewSimplexNoise(seed uint32, m Metrics) *SimplexNoise {
	n := &SimplexNoise{
		seed:        seed,
		scale:       float64(m.NoiseScale),
		wrapWidth:   float64(m.WrapWidth()),
		octaves:     2,
		persistence: 0.5,
	}
	for i := range n.channels {
		n.channels[i] = opensimplex.NewNormalized(int64(seed)<<3 + int64(i))
	}
	return n
}

// WithScale returns a copy sampling at a different feature scale and
// octave count. The generators are shared.
func (n *SimplexNoise) WithScale(scale float32, octaves int) *SimplexNoise {
	c := *n
	c.scale = float64(scale)
	if octaves > 0 {
		c.octaves = octaves
	}
	return &c
}

// Seed returns the seed the generators were built from.
func (n *SimplexNoise) Seed() uint32 { return n.seed }

// WrapWidth returns the period along X, 0 when the map does not wrap.
func (n *SimplexNoise) WrapWidth() float32 { return float32(n.wrapWidth) }

// Sample returns five independent noise channels at p.
func (n *SimplexNoise) Sample(p math.Vec3) Hash {
	var out [5]float32
	for i, ch := range n.channels {
		out[i] = n.octave(ch, float64(p.X), float64(p.Z))
	}
	return Hash{A: out[0], B: out[1], C: out[2], D: out[3], E: out[4]}
}

func (n *SimplexNoise) octave(ch opensimplex.Noise, x, z float64) float32 {
	x = wrapCoordinate(x, n.wrapWidth)
	freq := n.scale
	amp := 1.0
	total, sum := 0.0, 0.0
	for o := 0; o < n.octaves; o++ {
		if n.wrapWidth > 0 {
			r := n.wrapWidth * freq / (2 * gomath.Pi)
			a := 2 * gomath.Pi * x / n.wrapWidth
			total += ch.Eval3(r*gomath.Cos(a), r*gomath.Sin(a), z*freq) * amp
		} else {
			total += ch.Eval2(x*freq, z*freq) * amp
		}
		sum += amp
		amp *= n.persistence
		freq *= 2
	}
	return clampUnit(float32(total / sum))
}

func clampUnit(v float32) float32 {
	if v >= 1 {
		return maxUnit
	}
	if v < 0 {
		return 0
	}
	return v
}

// Perturb jitters p in the XZ plane using the noise sampler.
func (m Metrics) Perturb(noise Sampler, p math.Vec3) math.Vec3 {
	if noise == nil || m.CellPerturbStrength == 0 {
		return p
	}
	s := noise.Sample(p)
	p.X += (s.A*2 - 1) * m.CellPerturbStrength
	p.Z += (s.C*2 - 1) * m.CellPerturbStrength
	return p
}

// ElevationPerturbation is the vertical jitter applied to a hex center.
func (m Metrics) ElevationPerturbation(noise Sampler, p math.Vec3) float32 {
	if noise == nil {
		return 0
	}
	return (noise.Sample(p).B*2 - 1) * m.ElevationPerturbStrength
}

func wrapCoordinate(x, width float64) float64 {
	if width <= 0 {
		return x
	}
	r := gomath.Mod(x, width)
	if r < 0 {
		r += width
	}
	return r
}
