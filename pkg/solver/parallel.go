package solver

import (
	"context"
	"sync"
)

// SolveParallel partitions block 0's top-level bucket into workers
// disjoint slices and runs one Solve per slice concurrently, mirroring
// spec.md §5's permitted "process or thread per starting RHS branch"
// strategy: each partition descends into a disjoint subtree of the
// search, sharing t read-only, with its own ALE-free walk state.
// report is invoked from whichever worker goroutine finds a candidate;
// callers that mutate shared state from report must synchronize it
// themselves (pkg/collect.Table already does).
//
// If workers <= 1 or block 0's top bucket has no more entries than
// workers, SolveParallel falls back to a single Solve call.
func SolveParallel(ctx context.Context, t *Tables, workers int, report SolutionFunc) (counter, xors uint64, err error) {
	if len(t.ALEs) == 0 {
		return 0, 0, nil
	}
	top := t.ALEs[0]
	total := top.LUT[1] - top.LUT[0]
	if workers <= 1 || total <= workers {
		return Solve(ctx, t, report)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			c, x, werr := Solve(ctx, t, report, WithStartIndex(start), WithEndIndex(end))
			mu.Lock()
			defer mu.Unlock()
			counter += c
			xors += x
			if werr != nil && firstErr == nil {
				firstErr = werr
				cancel()
			}
		}(start, end)
	}
	wg.Wait()

	return counter, xors, firstErr
}
