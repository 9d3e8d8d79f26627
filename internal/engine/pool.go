package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach runs fn for indexes 0..n-1 with at most limit in flight.
// fn must only write to its own index of any shared slice.
func forEach(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// monthAmounts is one row's contribution per month
type monthAmounts map[string]float64
