// Package mesh provides the geometry buffers the triangulator fills: one
// Layer per output surface with parallel vertex, index, blend and UV data.
package mesh

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// Kind identifies an output layer.
type Kind int

const (
	Terrain Kind = iota
	Rivers
	Roads
	Water
	WaterShore
	Estuaries
	Walls
)

// KindCount is the number of layers a chunk produces.
const KindCount = 7

var kindNames = [KindCount]string{"terrain", "rivers", "roads", "water", "water_shore", "estuaries", "walls"}

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// KindSet is a bitmask of layer kinds.
type KindSet uint8

// AllKinds holds every layer kind.
const AllKinds KindSet = 1<<KindCount - 1

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// With returns the set with k switched on or off.
func (s KindSet) With(k Kind, on bool) KindSet {
	if on {
		return s | 1<<k
	}
	return s &^ (1 << k)
}

// Attributes lists the optional per-vertex buffers of a layer.
type Attributes struct {
	CellData bool
	UV       bool
	UV2      bool
}

var kindAttributes = [KindCount]Attributes{
	Terrain:    {CellData: true},
	Rivers:     {CellData: true, UV: true},
	Roads:      {CellData: true, UV: true},
	Water:      {CellData: true},
	WaterShore: {CellData: true, UV: true},
	Estuaries:  {CellData: true, UV: true, UV2: true},
	Walls:      {},
}

// Attributes returns the buffers a layer of this kind carries.
func (k Kind) Attributes() Attributes {
	return kindAttributes[k]
}

// CellIndices names the up to three hexes whose data a vertex samples.
type CellIndices [3]int32

// Cells builds a CellIndices triple from hex indices.
func Cells(a, b, c int) CellIndices {
	return CellIndices{int32(a), int32(b), int32(c)}
}

// Bounds holds the axis-aligned bounding box of a layer.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Empty reports whether no point was added to the bounds.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X
}

// Union returns bounds enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	b.extend(o.Min)
	b.extend(o.Max)
	return b
}

// EmptyBounds returns bounds that contain no point.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

func (b *Bounds) extend(p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// PerturbFunc jitters a vertex position. Nil leaves positions untouched.
type PerturbFunc func(math.Vec3) math.Vec3
