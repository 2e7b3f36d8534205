package dynamo

import "math"

// Links is the number of rods in the pendulum.
const Links = 3

const twoPi = 2 * math.Pi

// State holds the rod angles (from vertical) and angular velocities.
type State struct {
	Theta [Links]float64
	Omega [Links]float64
}

// CanonicalState returns the fixed initial condition used by Initialize.
func CanonicalState() State {
	return State{
		Theta: [Links]float64{3.0, 3.5, 1.5},
		Omega: [Links]float64{1.0, 1.5, -5.0},
	}
}

// Apply returns base + r*d. The receiver is the base state.
func (s State) Apply(d Delta, r float64) State {
	var out State
	for i := 0; i < Links; i++ {
		out.Theta[i] = s.Theta[i] + r*d[i]
		out.Omega[i] = s.Omega[i] + r*d[i+Links]
	}
	return out
}

// Wrap brings each angle back into [0, 2π) with a single correction.
// A step that advances an angle by more than one revolution is left outside
// the range.
func (s State) Wrap() State {
	for i := 0; i < Links; i++ {
		th := s.Theta[i]
		if th < 0 {
			th += twoPi
			// -tiny + 2π rounds to 2π
			if th >= twoPi {
				th = 0
			}
		} else if th >= twoPi {
			th -= twoPi
		}
		s.Theta[i] = th
	}
	return s
}

// Normalize maps every angle into [0, 2π) regardless of how many
// revolutions away it is.
func (s State) Normalize() State {
	for i := 0; i < Links; i++ {
		th := math.Mod(s.Theta[i], twoPi)
		if th < 0 {
			th += twoPi
		}
		if th >= twoPi {
			th = 0
		}
		s.Theta[i] = th
	}
	return s
}

func (s State) IsValid() bool {
	for i := 0; i < Links; i++ {
		if !finite(s.Theta[i]) || !finite(s.Omega[i]) {
			return false
		}
	}
	return true
}

// Slice flattens the state as theta0..2, omega0..2.
func (s State) Slice() []float64 {
	return []float64{s.Theta[0], s.Theta[1], s.Theta[2], s.Omega[0], s.Omega[1], s.Omega[2]}
}

// Delta is a dt-scaled increment over a State: dt*omega_i in the first three
// slots and dt*accel_i in the last three. It is not an instantaneous rate.
type Delta [2 * Links]float64

// NewDelta builds the increment for state s under accel over dt.
func NewDelta(s State, accel [Links]float64, dt float64) Delta {
	var d Delta
	for i := 0; i < Links; i++ {
		d[i] = dt * s.Omega[i]
		d[i+Links] = dt * accel[i]
	}
	return d
}

func (d Delta) Add(o Delta) Delta {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

func (d Delta) Scale(r float64) Delta {
	for i := range d {
		d[i] *= r
	}
	return d
}

// Point is a planar position.
type Point struct {
	X, Y float64
}

// System evaluates the dynamics at x and returns the increment over dt.
type System interface {
	Derive(x State, dt float64) (Delta, error)
}

// Integrator advances a state by one step of dt.
type Integrator interface {
	Step(sys System, x State, dt float64) (State, error)
	// Stages is the number of System evaluations per step.
	Stages() int
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
