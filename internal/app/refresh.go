package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Refresher is satisfied by every Collection.
type Refresher interface {
	FetchAll(ctx context.Context) error
}

// RefreshAll fetches the given collections concurrently. Individual fetch
// failures are already absorbed into each collection's error log, so the
// group only surfaces context cancellation.
func RefreshAll(ctx context.Context, cols ...Refresher) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range cols {
		c := c
		g.Go(func() error {
			_ = c.FetchAll(ctx)
			return ctx.Err()
		})
	}
	return g.Wait()
}
