package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// PoincareSection steps x0 and records the state each time the first link
// swings through the bottom (theta1 = 0) with positive angular velocity.
// The recorded state is linearly interpolated to the crossing.
func PoincareSection(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt float64,
	steps int,
) ([]dynamo.State, error) {
	if !(dt > 0) || steps <= 0 {
		return nil, fmt.Errorf("%w: dt=%v steps=%d", dynamo.ErrInvalidArgument, dt, steps)
	}

	var section []dynamo.State
	prev := x0
	for i := 0; i < steps; i++ {
		next, err := integ.Step(sys, prev, dt)
		if err != nil {
			return section, &dynamo.SimulationError{Step: i, Time: float64(i) * dt, State: prev, Wrapped: err}
		}

		a := math.Remainder(prev.Theta[0], 2*math.Pi)
		b := math.Remainder(next.Theta[0], 2*math.Pi)
		if a < 0 && b >= 0 && b-a < math.Pi {
			section = append(section, interpolate(prev, next, -a/(b-a)))
		}
		prev = next
	}
	return section, nil
}

// interpolate moves r of the way from x to y, angles the short way round.
func interpolate(x, y dynamo.State, r float64) dynamo.State {
	return x.Apply(separation(x, y), r).Wrap()
}
