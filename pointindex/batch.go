package pointindex

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// batchChunk is the number of points one worker looks up between
// cancellation checks.
const batchChunk = 1024

// GetBatch looks up the points of coords, interleaved as x, y, z, and
// writes their ids (or None) into dst, which is grown if shorter than
// len(coords)/3. Up to workers goroutines share the work; workers <= 0
// uses GOMAXPROCS.
//
// GetBatch does not modify the index and must not overlap with Add or Clear.
func (p *PointIndex) GetBatch(ctx context.Context, coords []float64, dst []int, workers int) ([]int, error) {
	if len(coords)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrCoordinateCount, len(coords))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(coords) / 3
	if len(dst) < n {
		dst = make([]int, n)
	}
	dst = dst[:n]
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()

	var found atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += batchChunk {
		hi := min(lo+batchChunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits := 0
			for i := lo; i < hi; i++ {
				id := p.find(coords[3*i], coords[3*i+1], coords[3*i+2])
				if id != None {
					hits++
				}
				dst[i] = id
			}
			found.Add(int64(hits))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.LogBatchLookup(ctx, n, 0, err)
		return nil, err
	}

	hits := int(found.Load())
	p.metrics.RecordBatchLookup(n, hits, time.Since(start))
	p.logger.LogBatchLookup(ctx, n, hits, nil)

	return dst, nil
}
