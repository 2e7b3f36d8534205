package experiment

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/tripend/internal/config"
	"github.com/san-kum/tripend/internal/sim"
)

// Experiment turns a Config into a ready Runner.
type Experiment struct {
	cfg    *config.Config
	runner *sim.Runner
	logger log.Logger
}

func New(cfg *config.Config, logger log.Logger) *Experiment {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Experiment{cfg: cfg, logger: logger}
}

// Setup validates the config and builds the simulation it describes.
func (e *Experiment) Setup(registry *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	method, err := registry.GetMethod(e.cfg.Method)
	if err != nil {
		return err
	}
	solver, err := registry.GetSolver(e.cfg.Solver)
	if err != nil {
		return err
	}
	x0, err := e.cfg.GetInitState()
	if err != nil {
		return err
	}

	s, err := sim.New(sim.WithMethod(method), sim.WithSolver(solver))
	if err != nil {
		return err
	}
	if err := s.SetState(x0); err != nil {
		return err
	}

	e.runner = sim.NewRunner(s, e.logger)
	for _, m := range registry.DefaultMetrics(s.Params()) {
		e.runner.AddMetric(m)
	}

	level.Debug(e.logger).Log("msg", "experiment ready", "method", method.Key(), "solver", e.cfg.Solver)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.RunConfig())
}

func (e *Experiment) RunConfig() sim.RunConfig {
	return sim.RunConfig{
		Dt:          e.cfg.Dt,
		Steps:       e.cfg.Steps,
		SampleEvery: e.cfg.SampleEvery,
	}
}

// GetRunner returns the underlying runner for adding observers
func (e *Experiment) GetRunner() *sim.Runner {
	return e.runner
}
