package hexmetrics

// Direction identifies one of the six edges of a pointy-top hexagon,
// clockwise starting at the north-east edge.
type Direction int

// Hex edge directions.
const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// DirectionCount is the number of edges of a hexagon.
const DirectionCount = 6

// Directions lists all directions in triangulation order.
var Directions = [DirectionCount]Direction{NE, E, SE, SW, W, NW}

var directionNames = [DirectionCount]string{"NE", "E", "SE", "SW", "W", "NW"}

// Opposite returns the direction facing d.
func (d Direction) Opposite() Direction {
	if d < 3 {
		return d + 3
	}
	return d - 3
}

// Previous returns the counter-clockwise neighbour direction.
func (d Direction) Previous() Direction {
	if d == NE {
		return NW
	}
	return d - 1
}

// Next returns the clockwise neighbour direction.
func (d Direction) Next() Direction {
	if d == NW {
		return NE
	}
	return d + 1
}

// Previous2 returns the direction two steps counter-clockwise.
func (d Direction) Previous2() Direction {
	d -= 2
	if d >= NE {
		return d
	}
	return d + DirectionCount
}

// Next2 returns the direction two steps clockwise.
func (d Direction) Next2() Direction {
	d += 2
	if d <= NW {
		return d
	}
	return d - DirectionCount
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= NE && d <= NW
}

// String returns the compass abbreviation.
func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// ParseDirection converts a compass abbreviation back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}
