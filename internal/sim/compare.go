package sim

import (
	"context"

	"github.com/go-kit/log"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Compare runs the same initial state under every method, one Simulation
// per goroutine. Results are returned in the order of methods.
func Compare(ctx context.Context, logger log.Logger, x0 dynamo.State, methods []dynamo.Method, cfg RunConfig, opts ...Option) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(methods))
	g, ctx := errgroup.WithContext(ctx)

	for i, m := range methods {
		s, err := New(append(opts, WithMethod(m))...)
		if err != nil {
			return nil, err
		}
		if err := s.SetState(x0); err != nil {
			return nil, err
		}

		g.Go(func() error {
			res, err := NewRunner(s, logger).Run(ctx, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
