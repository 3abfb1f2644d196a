// Package workerpool runs bounded fan-out over a slice of work items.
package workerpool

import (
	"context"
	"sync"
)

// Map applies fn to every item using at most workers goroutines and returns the
// results in input order. The first error cancels outstanding work and is returned.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	indexes := make(chan int)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				r, err := fn(ctx, items[i])
				if err != nil {
					fail(err)
					return
				}
				results[i] = r
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Each runs fn over items with at most workers goroutines, stopping at the first error.
func Each[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	_, err := Map(ctx, workers, items, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, item)
	})
	return err
}
