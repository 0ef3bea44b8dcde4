package match

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/refindhq/refind/ai"
	"github.com/refindhq/refind/core"
)

// CompareAll runs the image comparer over every candidate image concurrently,
// bounded by a worker pool. One slow or failing comparison degrades that
// candidate to the neutral score instead of aborting the batch.
// A poolSize below 1 defaults to half the CPU count.
func CompareAll(ctx context.Context, comparer ai.ImageComparer, queryImage []byte, candidateImages map[core.ID][]byte, poolSize int) (map[core.ID]float64, error) {
	if comparer == nil {
		return nil, ErrComparerRequired
	}
	if len(candidateImages) == 0 {
		return map[core.ID]float64{}, nil
	}

	if poolSize < 1 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[core.ID]float64, len(candidateImages))
	)

	for id, image := range candidateImages {
		id, image := id, image
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			score, err := comparer.CompareImages(ctx, queryImage, image)
			if err != nil {
				score = ai.NeutralVisualScore
			}

			mu.Lock()
			results[id] = score
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			results[id] = ai.NeutralVisualScore
			mu.Unlock()
		}
	}

	wg.Wait()
	return results, nil
}
