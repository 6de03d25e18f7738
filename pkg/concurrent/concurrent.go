package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run calls action for every index in [0, n) with at most limit calls in
// flight. limit <= 0 means unlimited. The context passed to action is
// cancelled on the first error, and Run returns that error once every
// started call has returned.
func Run(ctx context.Context, n, limit int, action func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return action(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Map applies mapFn to each element of in in parallel, preserving order. On
// error the partial results are discarded.
func Map[T, R any](ctx context.Context, in []T, limit int, mapFn func(ctx context.Context, v T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	err := Run(ctx, len(in), limit, func(ctx context.Context, i int) error {
		r, err := mapFn(ctx, in[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
