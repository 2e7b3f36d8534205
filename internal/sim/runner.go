package sim

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/metrics"
)

// RunConfig controls a batch run.
type RunConfig struct {
	Dt          float64
	Steps       int
	SampleEvery int
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:          0.0016,
		Steps:       10000,
		SampleEvery: 10,
	}
}

func (c RunConfig) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidArgument, c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidArgument, c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample_every must be positive, got %d", dynamo.ErrInvalidArgument, c.SampleEvery)
	}
	return nil
}

// Sample is one recorded point of a trajectory.
type Sample struct {
	Time      float64
	State     dynamo.State
	Vertices  [dynamo.Links + 1]dynamo.Point
	Kinetic   float64
	Potential float64
	Total     float64
}

type Result struct {
	Method      dynamo.Method
	Samples     []Sample
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Runner drives a Simulation for a fixed number of steps, feeding metrics
// and observers after every step.
type Runner struct {
	sim       *Simulation
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    log.Logger
}

func NewRunner(s *Simulation, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{
		sim:       s,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		logger:    log.With(logger, "component", "runner"),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Simulation() *Simulation { return r.sim }

// Run steps the simulation from its current state. On cancellation or a
// numeric failure the partial result is returned with the error.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := r.sim
	drift := metrics.NewEnergyDrift(s.Params())
	result := &Result{
		Method:  s.Method(),
		Samples: make([]Sample, 0, cfg.Steps/cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	level.Debug(r.logger).Log("msg", "run started", "method", s.Method().Key(), "dt", cfg.Dt, "steps", cfg.Steps)

	r.observe(drift, result, true)

	var runErr error
loop:
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		default:
		}

		if err := s.Move(cfg.Dt); err != nil {
			level.Error(r.logger).Log("msg", "step failed", "step", s.Steps(), "err", err)
			runErr = err
			break
		}
		result.StepsTaken++

		r.observe(drift, result, result.StepsTaken%cfg.SampleEvery == 0 || i == cfg.Steps-1)
	}

	result.EnergyDrift = drift.Value()
	result.Metrics[drift.Name()] = drift.Value()
	result.Metrics["energy_drift_rel"] = drift.Relative()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	level.Info(r.logger).Log("msg", "run finished", "method", s.Method().Key(), "steps", result.StepsTaken, "energy_drift", result.EnergyDrift)

	return result, runErr
}

func (r *Runner) observe(drift *metrics.EnergyDrift, result *Result, sample bool) {
	s := r.sim
	x, t := s.State(), s.Time()

	drift.Observe(x, t)
	for _, m := range r.metrics {
		m.Observe(x, t)
	}
	for _, obs := range r.observers {
		obs.OnStep(x, t)
	}

	if sample {
		result.Samples = append(result.Samples, Sample{
			Time:      t,
			State:     x,
			Vertices:  s.Vertices(),
			Kinetic:   s.KineticEnergy(),
			Potential: s.PotentialEnergy(),
			Total:     s.TotalEnergy(),
		})
	}
}
