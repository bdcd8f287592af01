package hexgrid

import "errors"

var (
	// ErrIndexOutOfRange is returned for hex indices outside the grid.
	ErrIndexOutOfRange = errors.New("hex index out of range")

	// ErrChunkIndexOutOfRange is returned when a hex is placed outside a
	// chunk's fixed capacity.
	ErrChunkIndexOutOfRange = errors.New("chunk-local index out of range")

	// ErrNoNeighbor is returned for edits across a map border.
	ErrNoNeighbor = errors.New("no neighbor in direction")

	// ErrUphillRiver is returned when a river would flow uphill.
	ErrUphillRiver = errors.New("river cannot flow uphill")

	// ErrInvalidRoad is returned when a road would cross a river, touch a
	// special hex or climb a cliff.
	ErrInvalidRoad = errors.New("road not allowed on edge")

	// ErrSpecialOnRiver is returned when a special feature is placed on a
	// hex that has a river.
	ErrSpecialOnRiver = errors.New("special feature not allowed on river")

	// ErrInvalidLevel is returned for development levels outside 0..3.
	ErrInvalidLevel = errors.New("development level out of range")

	// ErrAsymmetricAdjacency is returned when raw neighbor data disagrees
	// with itself.
	ErrAsymmetricAdjacency = errors.New("adjacency is not symmetric")

	// ErrInvalidSize is returned for grid sizes that do not tile into chunks.
	ErrInvalidSize = errors.New("grid size must be a positive multiple of the chunk size")
)
