package hexgrid

import (
	"fmt"

	"github.com/Faultbox/hexmesh/internal/hexmetrics"
)

const none = -1

// AdjacencyGraph maps every hex to its neighbor in each direction.
type AdjacencyGraph struct {
	neighbors [][hexmetrics.DirectionCount]int
}

// NewAdjacencyGraph returns a graph of n hexes without any edges.
func NewAdjacencyGraph(n int) *AdjacencyGraph {
	g := &AdjacencyGraph{neighbors: make([][hexmetrics.DirectionCount]int, n)}
	for i := range g.neighbors {
		for d := range g.neighbors[i] {
			g.neighbors[i][d] = none
		}
	}
	return g
}

// NewAdjacencyGraphFromNeighbors builds a graph from raw per-hex neighbor
// lists, where a negative entry means no neighbor. Every edge must be
// mirrored by the neighbor in the opposite direction.
func NewAdjacencyGraphFromNeighbors(neighbors [][hexmetrics.DirectionCount]int) (*AdjacencyGraph, error) {
	g := NewAdjacencyGraph(len(neighbors))
	for i, list := range neighbors {
		for d, j := range list {
			if j < 0 {
				continue
			}
			if j >= len(neighbors) {
				return nil, fmt.Errorf("hex %d %v -> %d: %w", i, hexmetrics.Direction(d), j, ErrIndexOutOfRange)
			}
			back := neighbors[j][hexmetrics.Direction(d).Opposite()]
			if back != i {
				return nil, fmt.Errorf("hex %d %v -> %d, back edge -> %d: %w",
					i, hexmetrics.Direction(d), j, back, ErrAsymmetricAdjacency)
			}
			g.neighbors[i][d] = j
		}
	}
	return g, nil
}

// Len returns the number of hexes.
func (g *AdjacencyGraph) Len() int {
	return len(g.neighbors)
}

// Connect links a to b in direction d and b to a in the opposite direction.
func (g *AdjacencyGraph) Connect(a int, d hexmetrics.Direction, b int) {
	g.neighbors[a][d] = b
	g.neighbors[b][d.Opposite()] = a
}

// Neighbor returns the hex next to a in direction d.
func (g *AdjacencyGraph) Neighbor(a int, d hexmetrics.Direction) (int, bool) {
	n := g.neighbors[a][d]
	return n, n != none
}

// DirectionTo returns the direction from a to its neighbor b.
func (g *AdjacencyGraph) DirectionTo(a, b int) (hexmetrics.Direction, bool) {
	for d, n := range g.neighbors[a] {
		if n == b {
			return hexmetrics.Direction(d), true
		}
	}
	return 0, false
}

// riverEnd is one side of a directed river edge.
type riverEnd struct {
	dir   hexmetrics.Direction
	other int
}

// RiverGraph holds directed river segments. Every hex has at most one
// outgoing and one incoming segment.
type RiverGraph struct {
	out   []riverEnd
	in    []riverEnd
	edges int
}

// NewRiverGraph returns an empty river graph for n hexes.
func NewRiverGraph(n int) *RiverGraph {
	g := &RiverGraph{
		out: make([]riverEnd, n),
		in:  make([]riverEnd, n),
	}
	for i := range g.out {
		g.out[i].other = none
		g.in[i].other = none
	}
	return g
}

// Empty reports whether the map has no rivers at all.
func (g *RiverGraph) Empty() bool {
	return g.edges == 0
}

// EdgeCount returns the number of river segments.
func (g *RiverGraph) EdgeCount() int {
	return g.edges
}

// Outgoing returns the direction the river leaves hex a.
func (g *RiverGraph) Outgoing(a int) (hexmetrics.Direction, bool) {
	if g.edges == 0 {
		return 0, false
	}
	e := g.out[a]
	return e.dir, e.other != none
}

// Incoming returns the direction the river enters hex a from.
func (g *RiverGraph) Incoming(a int) (hexmetrics.Direction, bool) {
	if g.edges == 0 {
		return 0, false
	}
	e := g.in[a]
	return e.dir, e.other != none
}

// Link adds the segment from -> to leaving in direction d. Existing
// segments that would break the one-in one-out invariant are removed.
func (g *RiverGraph) Link(from int, d hexmetrics.Direction, to int) {
	g.UnlinkOutgoing(from)
	g.UnlinkIncoming(to)
	g.out[from] = riverEnd{dir: d, other: to}
	g.in[to] = riverEnd{dir: d.Opposite(), other: from}
	g.edges++
}

// UnlinkOutgoing removes the segment leaving a, if any.
func (g *RiverGraph) UnlinkOutgoing(a int) {
	e := g.out[a]
	if e.other == none {
		return
	}
	g.in[e.other] = riverEnd{other: none}
	g.out[a] = riverEnd{other: none}
	g.edges--
}

// UnlinkIncoming removes the segment entering a, if any.
func (g *RiverGraph) UnlinkIncoming(a int) {
	e := g.in[a]
	if e.other == none {
		return
	}
	g.out[e.other] = riverEnd{other: none}
	g.in[a] = riverEnd{other: none}
	g.edges--
}

// RoadGraph holds undirected road edges as a direction bitmask per hex.
type RoadGraph struct {
	roads []uint8
	edges int
}

// NewRoadGraph returns an empty road graph for n hexes.
func NewRoadGraph(n int) *RoadGraph {
	return &RoadGraph{roads: make([]uint8, n)}
}

// Empty reports whether the map has no roads at all.
func (g *RoadGraph) Empty() bool {
	return g.edges == 0
}

// EdgeCount returns the number of road edges.
func (g *RoadGraph) EdgeCount() int {
	return g.edges
}

// Has reports whether a road leaves a in direction d.
func (g *RoadGraph) Has(a int, d hexmetrics.Direction) bool {
	return g.edges > 0 && g.roads[a]&(1<<uint(d)) != 0
}

// Any reports whether hex a has at least one road.
func (g *RoadGraph) Any(a int) bool {
	return g.edges > 0 && g.roads[a] != 0
}

// Set adds or removes the road between a and its neighbor b in direction d.
func (g *RoadGraph) Set(a int, d hexmetrics.Direction, b int, road bool) {
	bit := uint8(1) << uint(d)
	had := g.roads[a]&bit != 0
	if had == road {
		return
	}
	back := uint8(1) << uint(d.Opposite())
	if road {
		g.roads[a] |= bit
		g.roads[b] |= back
		g.edges++
	} else {
		g.roads[a] &^= bit
		g.roads[b] &^= back
		g.edges--
	}
}

// ElevationGraph stores the edge type of every adjacency edge.
type ElevationGraph struct {
	types [][hexmetrics.DirectionCount]hexmetrics.EdgeType
}

// NewElevationGraph classifies every edge of adj from the given elevations.
func NewElevationGraph(adj *AdjacencyGraph, elevation func(int) int) *ElevationGraph {
	g := &ElevationGraph{types: make([][hexmetrics.DirectionCount]hexmetrics.EdgeType, adj.Len())}
	for i := range g.types {
		g.Refresh(adj, i, elevation)
	}
	return g
}

// Refresh reclassifies the edges of hex a and the mirrored edges of its
// neighbors after a's elevation changed.
func (g *ElevationGraph) Refresh(adj *AdjacencyGraph, a int, elevation func(int) int) {
	ea := elevation(a)
	for _, d := range hexmetrics.Directions {
		n, ok := adj.Neighbor(a, d)
		if !ok {
			g.types[a][d] = hexmetrics.Flat
			continue
		}
		t := hexmetrics.GetEdgeType(ea, elevation(n))
		g.types[a][d] = t
		g.types[n][d.Opposite()] = t
	}
}

// EdgeType returns the type of the edge leaving a in direction d.
func (g *ElevationGraph) EdgeType(a int, d hexmetrics.Direction) hexmetrics.EdgeType {
	return g.types[a][d]
}
