package hexgrid

import (
	"fmt"

	"go.uber.org/zap"
)

// Chunk is a fixed-size block of hexes that is triangulated as one batch.
// Slots hold grid indices; an empty slot holds -1.
type Chunk struct {
	Index int
	X, Z  int

	slots []int
	log   *zap.Logger
}

// NewChunk creates an empty chunk with capacity for sizeX*sizeZ hexes.
func NewChunk(index, x, z, sizeX, sizeZ int, log *zap.Logger) *Chunk {
	if log == nil {
		log = zap.NewNop()
	}
	slots := make([]int, sizeX*sizeZ)
	for i := range slots {
		slots[i] = none
	}
	return &Chunk{Index: index, X: x, Z: z, slots: slots, log: log}
}

// Capacity returns the number of slots.
func (c *Chunk) Capacity() int {
	return len(c.slots)
}

// AddHex stores hex at the chunk-local index. An out of range index is
// logged and reported; the chunk keeps working with the hex left out.
func (c *Chunk) AddHex(localIndex, hex int) error {
	if localIndex < 0 || localIndex >= len(c.slots) {
		c.log.Warn("hex outside chunk capacity",
			zap.Int("chunk", c.Index),
			zap.Int("local_index", localIndex),
			zap.Int("hex", hex),
			zap.Int("capacity", len(c.slots)))
		return fmt.Errorf("chunk %d slot %d: %w", c.Index, localIndex, ErrChunkIndexOutOfRange)
	}
	c.slots[localIndex] = hex
	return nil
}

// Hexes returns the grid indices of the occupied slots in slot order.
func (c *Chunk) Hexes() []int {
	out := make([]int, 0, len(c.slots))
	for _, h := range c.slots {
		if h != none {
			out = append(out, h)
		}
	}
	return out
}
