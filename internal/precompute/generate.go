package precompute

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"make10/internal/digits"
	"make10/internal/table"
)

const (
	// Progress reporting interval for the solving phase
	progressReportInterval = 100 // Report every 100 digit combinations
)

// solved carries the solution set found for one canonical index
type solved struct {
	index     int
	solutions []string
}

// Generate solves every canonical digit combination for target and returns
// the resulting table.
//
// workers: Number of parallel solver workers. If 0 or negative, uses runtime.NumCPU().
func Generate(target int64, workers int, progressCallback func(string)) (*table.Table, error) {
	// Use runtime.NumCPU() if workers is 0 or negative
	workerPoolSize := workers
	if workerPoolSize <= 0 {
		workerPoolSize = runtime.NumCPU()
	}

	combos := digits.Canonical()

	if progressCallback != nil {
		progressCallback(fmt.Sprintf("Solving %d digit combinations for target %d with %d workers...",
			len(combos), target, workerPoolSize))
	}

	indices := make(chan int, len(combos))
	results := make(chan solved, workerPoolSize)

	// Start worker pool
	var eg errgroup.Group
	for w := 1; w <= workerPoolSize; w++ {
		eg.Go(func() error {
			return solveWorker(target, indices, results)
		})
	}

	// Send all indices to workers
	for _, idx := range combos {
		indices <- idx
	}
	close(indices)

	// Collect results in a separate goroutine
	entries := make(map[int][]string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		resultCount := 0
		for r := range results {
			if len(r.solutions) > 0 {
				entries[r.index] = r.solutions
			}
			resultCount++

			// Report progress periodically or when complete
			if progressCallback != nil && (resultCount%progressReportInterval == 0 || resultCount == len(combos)) {
				progressCallback(fmt.Sprintf("    Solved %d/%d combinations (%d with solutions so far)",
					resultCount, len(combos), len(entries)))
			}
		}
	}()

	// Wait for all workers to finish
	if err := eg.Wait(); err != nil {
		close(results)
		<-done
		return nil, err
	}

	// Close results channel to signal collector we're done
	close(results)

	// Wait for result collector to finish
	<-done

	t, err := table.New(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}

	if progressCallback != nil {
		progressCallback(fmt.Sprintf("  Solving complete: %d of %d combinations can reach %d",
			t.Len(), len(combos), target))
	}

	return t, nil
}
