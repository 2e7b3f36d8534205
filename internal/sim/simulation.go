package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/metrics"
	"github.com/san-kum/tripend/internal/models"
)

// Simulation owns one pendulum: its state, its fixed parameters and the
// active integration method. It is not safe for concurrent use; give each
// goroutine its own instance.
type Simulation struct {
	model      *models.TriplePendulum
	method     dynamo.Method
	integrator dynamo.Integrator
	state      dynamo.State
	t          float64
	steps      int
}

type options struct {
	params dynamo.Params
	solver models.Solver
	method dynamo.Method
}

// Option configures a Simulation at construction.
type Option func(*options)

// WithParams replaces the default physical constants.
func WithParams(p dynamo.Params) Option {
	return func(o *options) { o.params = p }
}

// WithSolver selects the linear solver used by the dynamics.
func WithSolver(s models.Solver) Option {
	return func(o *options) { o.solver = s }
}

// WithMethod selects the initial integration method.
func WithMethod(m dynamo.Method) Option {
	return func(o *options) { o.method = m }
}

// New builds a Simulation at the canonical initial condition. Degenerate
// parameters and unknown methods are rejected here rather than mid-run.
func New(opts ...Option) (*Simulation, error) {
	o := options{
		params: dynamo.DefaultParams(),
		solver: models.GaussJordan{},
		method: dynamo.Euler,
	}
	for _, opt := range opts {
		opt(&o)
	}

	model, err := models.NewTriplePendulum(o.params, o.solver)
	if err != nil {
		return nil, err
	}

	s := &Simulation{model: model}
	if err := s.SetIntegrateMethod(o.method); err != nil {
		return nil, err
	}
	s.Initialize()
	return s, nil
}

// Initialize resets the state to the canonical initial condition. The
// parameters and the active method are kept.
func (s *Simulation) Initialize() {
	s.state = dynamo.CanonicalState()
	s.t = 0
	s.steps = 0
}

// SetIntegrateMethod switches the stepping formula for the next Move. The
// current state is untouched.
func (s *Simulation) SetIntegrateMethod(m dynamo.Method) error {
	integ, err := integrators.New(m)
	if err != nil {
		return err
	}
	s.method = m
	s.integrator = integ
	return nil
}

// Move advances the state by one step of the active integrator. On failure
// the state is left as it was.
func (s *Simulation) Move(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", dynamo.ErrInvalidArgument, dt)
	}

	next, err := s.integrator.Step(s.model, s.state, dt)
	if err != nil {
		return &dynamo.SimulationError{Step: s.steps, Time: s.t, State: s.state, Wrapped: err}
	}
	if !next.IsValid() {
		return &dynamo.SimulationError{Step: s.steps, Time: s.t, State: s.state, Wrapped: dynamo.ErrUnstable}
	}

	s.state = next
	s.t += dt
	s.steps++
	return nil
}

// Vertices returns the fixed pivot followed by the three rod ends.
func (s *Simulation) Vertices() [dynamo.Links + 1]dynamo.Point {
	return s.model.Vertices(s.state)
}

func (s *Simulation) KineticEnergy() float64 {
	return metrics.Kinetic(s.model.Params(), s.state)
}

func (s *Simulation) PotentialEnergy() float64 {
	return metrics.Potential(s.model.Params(), s.state)
}

func (s *Simulation) TotalEnergy() float64 {
	return metrics.Total(s.model.Params(), s.state)
}

// ActiveMethodLabel is the display name of the active method.
func (s *Simulation) ActiveMethodLabel() string {
	return s.method.String()
}

func (s *Simulation) Method() dynamo.Method { return s.method }
func (s *Simulation) Params() dynamo.Params { return s.model.Params() }
func (s *Simulation) State() dynamo.State   { return s.state }
func (s *Simulation) Time() float64         { return s.t }
func (s *Simulation) Steps() int            { return s.steps }

// Stages is the number of dynamics evaluations one Move costs.
func (s *Simulation) Stages() int { return s.integrator.Stages() }

// SetState replaces the current state. Angles are normalised into [0, 2π);
// NaN or Inf components are rejected.
func (s *Simulation) SetState(x dynamo.State) error {
	if !x.IsValid() {
		return fmt.Errorf("%w: %w", dynamo.ErrInvalidArgument, dynamo.ErrInvalidState)
	}
	s.state = x.Normalize()
	return nil
}
