package source

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pair binds a fetcher to the state it owns.
type Pair struct {
	Fetcher *Fetcher
	State   *State
}

// RefreshAll re-fetches every pair concurrently. Sources are independent:
// one failing never cancels or invalidates the others, so goroutines
// report outcomes through done and always return nil to the group.
// done (optional) is invoked once per pair from its own goroutine.
func RefreshAll(ctx context.Context, pairs []Pair, params map[string]string, done func(*State, error)) {
	var g errgroup.Group
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			err := p.Fetcher.Refresh(ctx, p.State, params)
			if done != nil {
				done(p.State, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
