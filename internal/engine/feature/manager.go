package feature

import (
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
	"github.com/Faultbox/hexmesh/internal/hexmetrics"
	"github.com/Faultbox/hexmesh/pkg/math"
)

// DefaultVariants is the number of prefabs per collection.
const DefaultVariants = 3

// Options configure a Manager.
type Options struct {
	Grid *hexgrid.Grid

	// Hash picks prefabs, rotations and towers.
	Hash hexmetrics.Sampler

	// Walls receives the wall geometry. Its perturbation is also applied
	// to feature positions.
	Walls *mesh.Layer

	Variants int
}

// Manager collects the placements and wall geometry of one chunk.
type Manager struct {
	grid     *hexgrid.Grid
	metrics  hexmetrics.Metrics
	hash     hexmetrics.Sampler
	walls    *mesh.Layer
	variants int

	Placements []Placement
}

// NewManager creates a manager writing walls into opts.Walls.
func NewManager(opts Options) *Manager {
	if opts.Variants <= 0 {
		opts.Variants = DefaultVariants
	}
	if opts.Hash == nil {
		opts.Hash = hexmetrics.ConstantSampler{}
	}
	return &Manager{
		grid:     opts.Grid,
		metrics:  opts.Grid.Metrics,
		hash:     opts.Hash,
		walls:    opts.Walls,
		variants: opts.Variants,
	}
}

// Clear drops all placements. The walls layer is cleared by its owner.
func (m *Manager) Clear() {
	m.Placements = m.Placements[:0]
}

// Count returns the number of placements of kind k.
func (m *Manager) Count(k Kind) int {
	n := 0
	for _, p := range m.Placements {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// pick returns the collection chosen for a development level and hash
// value, or false when the level places nothing at this hash.
func pick(level int, hash float32) (int, bool) {
	thresholds, ok := hexmetrics.FeatureThresholds(level)
	if !ok {
		return 0, false
	}
	for i, t := range thresholds {
		if hash < t {
			return i, true
		}
	}
	return 0, false
}

func (m *Manager) variant(choice float32) int {
	v := int(choice * float32(m.variants))
	if v >= m.variants {
		v = m.variants - 1
	}
	return v
}

// AddFeature places at most one urban, farm or plant prefab on h. Each
// family competes with its own hash value; the lowest qualifying value
// wins and urban beats farm beats plant on ties.
func (m *Manager) AddFeature(h *hexgrid.Hex, position math.Vec3) {
	if h.IsSpecial() {
		return
	}
	hash := m.hash.Sample(position)

	kind := Urban
	collection, found := pick(h.UrbanLevel, hash.A)
	used := hash.A
	if c, ok := pick(h.FarmLevel, hash.B); ok && (!found || hash.B < used) {
		kind, collection, found, used = Farm, c, true, hash.B
	}
	if c, ok := pick(h.PlantLevel, hash.C); ok && (!found || hash.C < used) {
		kind, collection, found = Plant, c, true
	}
	if !found {
		return
	}

	m.Placements = append(m.Placements, Placement{
		Kind:       kind,
		Collection: collection,
		Variant:    m.variant(hash.D),
		Hex:        h.Index,
		Position:   m.walls.Perturb(position),
		RotationY:  360 * hash.E,
		Scale:      math.Vec3{X: 1, Y: 1, Z: 1},
	})
}

// AddSpecialFeature places the special prefab of h at position.
func (m *Manager) AddSpecialFeature(h *hexgrid.Hex, position math.Vec3) {
	if !h.IsSpecial() {
		return
	}
	hash := m.hash.Sample(position)
	m.Placements = append(m.Placements, Placement{
		Kind:      Special,
		Variant:   h.SpecialIndex - 1,
		Hex:       h.Index,
		Position:  m.walls.Perturb(position),
		RotationY: 360 * hash.E,
		Scale:     math.Vec3{X: 1, Y: 1, Z: 1},
	})
}

// AddBridge spans a bridge between two road centers on either side of a
// river.
func (m *Manager) AddBridge(hex int, roadCenter1, roadCenter2 math.Vec3) {
	roadCenter1 = m.walls.Perturb(roadCenter1)
	roadCenter2 = m.walls.Perturb(roadCenter2)
	forward := roadCenter2.Sub(roadCenter1)

	scale := math.Vec3{X: 1, Y: 1, Z: 1}
	if m.metrics.BridgeDesignLength > 0 {
		length := forward.Length()
		scale.Z = length / m.metrics.BridgeDesignLength
	}
	m.Placements = append(m.Placements, Placement{
		Kind:      Bridge,
		Hex:       hex,
		Position:  roadCenter1.Add(roadCenter2).Scale(0.5),
		RotationY: yawToward(forward),
		Scale:     scale,
	})
}
