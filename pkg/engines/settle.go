package engines

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Settle runs fn for every index in [0, n) with at most limit calls in
// flight, waits for all of them, and partitions the outcomes. Successful
// results keep index order. A failing call never cancels the others.
func Settle[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, []error) {
	if n == 0 {
		return nil, nil
	}

	results := make([]T, n)
	errs := make([]error, n)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i], errs[i] = fn(ctx, i)
			// Failures stay in errs so the group never short-circuits.
			return nil
		})
	}
	_ = g.Wait()

	oks := make([]T, 0, n)
	var failed []error
	for i := range results {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		oks = append(oks, results[i])
	}
	return oks, failed
}
