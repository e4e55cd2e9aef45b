package resolver

import (
	"context"

	"github.com/anisan-cli/peel/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

// ResolveAll resolves every candidate, at most Config.Concurrency at a time.
// Results keep the input order; rejected candidates are left out.
func (r *Resolver) ResolveAll(ctx context.Context, streams []source.Stream) []source.Resolved {
	results := make([]mo.Option[source.Resolved], len(streams))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, s := range streams {
		g.Go(func() error {
			results[i] = r.Resolve(ctx, s)
			return nil
		})
	}
	_ = g.Wait()

	return lo.FilterMap(results, func(o mo.Option[source.Resolved], _ int) (source.Resolved, bool) {
		return o.Get()
	})
}
