package dynamo

import (
	"context"
	"sync"
)

// Factory builds an independent world and driver for one seed.
type Factory func(seed int64) (System, Controller, error)

// Ensemble runs independent worlds with consecutive seeds concurrently. No
// world is shared between goroutines.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			sys, ctrl, err := e.factory(cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx], errs[idx] = New(sys, ctrl).Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
