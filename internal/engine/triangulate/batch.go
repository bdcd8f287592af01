package triangulate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/engine/feature"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
)

// ChunkResult holds the finished geometry of one chunk.
type ChunkResult struct {
	Chunk      *hexgrid.Chunk
	Layers     *mesh.Set
	Placements []feature.Placement
}

// Run triangulates every chunk of opts.Grid using a pool of workers. Each
// worker reuses one Triangulator across its chunks and hands out copies of
// the layers. The grid must not change while Run is active.
// Results are in chunk order.
func Run(ctx context.Context, opts Options, workers int) ([]ChunkResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}

	chunks := opts.Grid.Chunks()
	results := make([]ChunkResult, len(chunks))
	var processed atomic.Int64
	start := time.Now()

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr := New(opts)
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				tr.Triangulate(chunks[idx])
				results[idx] = ChunkResult{
					Chunk:      chunks[idx],
					Layers:     tr.Layers().Clone(),
					Placements: append([]feature.Placement(nil), tr.Placements()...),
				}
				processed.Add(1)
			}
		}()
	}

send:
	for i := range chunks {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("triangulation finished",
		zap.Int("chunks", int(processed.Load())),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}
