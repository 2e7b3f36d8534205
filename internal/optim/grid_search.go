package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/go-kit/log"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/sim"
)

// Point is one evaluated (method, dt) pair.
type Point struct {
	Method      dynamo.Method
	Dt          float64
	Steps       int
	Evaluations int
	RelDrift    float64
	Err         error
}

// GridSearch looks for the cheapest method and step size that keep the
// relative energy drift over a fixed duration under a tolerance.
type GridSearch struct {
	methods []dynamo.Method
	dts     []float64
	opts    []sim.Option
	logger  log.Logger
}

func NewGridSearch(methods []dynamo.Method, dts []float64, logger log.Logger, opts ...sim.Option) *GridSearch {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &GridSearch{methods: methods, dts: dts, opts: opts, logger: logger}
}

// Search runs every grid point from x0 for duration seconds. It returns all
// points, sorted by cost, and the cheapest one within tol, or nil if none is.
func (g *GridSearch) Search(ctx context.Context, x0 dynamo.State, duration, tol float64) (*Point, []Point, error) {
	if !(duration > 0) || !(tol > 0) {
		return nil, nil, fmt.Errorf("%w: duration=%v tol=%v", dynamo.ErrInvalidArgument, duration, tol)
	}

	points := make([]Point, 0, len(g.methods)*len(g.dts))
	for _, m := range g.methods {
		for _, dt := range g.dts {
			if !(dt > 0) {
				return nil, nil, fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidArgument, dt)
			}
			points = append(points, Point{Method: m, Dt: dt, Steps: int(math.Ceil(duration/dt - 1e-9))})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i := range points {
		p := &points[i]
		eg.Go(func() error {
			return g.evaluate(ctx, x0, p)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Evaluations < points[j].Evaluations
	})

	for i := range points {
		if points[i].Err == nil && points[i].RelDrift <= tol {
			best := points[i]
			return &best, points, nil
		}
	}
	return nil, points, nil
}

// evaluate fills in p. Numeric failures are recorded on the point; only
// cancellation aborts the search.
func (g *GridSearch) evaluate(ctx context.Context, x0 dynamo.State, p *Point) error {
	s, err := sim.New(append(append([]sim.Option(nil), g.opts...), sim.WithMethod(p.Method))...)
	if err != nil {
		return err
	}
	if err := s.SetState(x0); err != nil {
		return err
	}
	p.Evaluations = p.Steps * s.Stages()

	res, err := sim.NewRunner(s, g.logger).Run(ctx, sim.RunConfig{Dt: p.Dt, Steps: p.Steps, SampleEvery: p.Steps})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		p.Err = err
		p.RelDrift = math.Inf(1)
		return nil
	}
	p.RelDrift = res.Metrics["energy_drift_rel"]
	return nil
}
