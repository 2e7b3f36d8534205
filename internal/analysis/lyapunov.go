package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent from x0.
//
// A neighbour offset by d0 in the first angle is stepped alongside the
// reference. After every step the growth of their separation is logged and
// the neighbour is pulled back to distance d0 along the same direction:
//
//	λ ≈ (1/t) Σ ln(|δx_k| / d0)
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt float64,
	steps int,
	d0 float64,
) (float64, error) {
	if !(dt > 0) || steps <= 0 || !(d0 > 0) {
		return 0, fmt.Errorf("%w: dt=%v steps=%d d0=%v", dynamo.ErrInvalidArgument, dt, steps, d0)
	}

	x := x0
	xp := x0
	xp.Theta[0] += d0
	xp = xp.Wrap()

	sumLog := 0.0
	for i := 0; i < steps; i++ {
		var err error
		if x, err = integ.Step(sys, x, dt); err != nil {
			return 0, &dynamo.SimulationError{Step: i, Time: float64(i) * dt, State: x, Wrapped: err}
		}
		if xp, err = integ.Step(sys, xp, dt); err != nil {
			return 0, &dynamo.SimulationError{Step: i, Time: float64(i) * dt, State: xp, Wrapped: err}
		}

		diff := separation(x, xp)
		sep := norm(diff)
		if sep == 0 || !xp.IsValid() {
			return 0, fmt.Errorf("%w: trajectories collapsed at step %d", dynamo.ErrUnstable, i)
		}
		sumLog += math.Log(sep / d0)

		xp = x.Apply(diff, d0/sep).Wrap()
	}

	return sumLog / (float64(steps) * dt), nil
}

// separation is xp - x with angle differences taken the short way round.
func separation(x, xp dynamo.State) dynamo.Delta {
	var d dynamo.Delta
	for i := 0; i < dynamo.Links; i++ {
		d[i] = math.Remainder(xp.Theta[i]-x.Theta[i], 2*math.Pi)
		d[i+dynamo.Links] = xp.Omega[i] - x.Omega[i]
	}
	return d
}

func norm(d dynamo.Delta) float64 {
	sum := 0.0
	for _, v := range d {
		sum += v * v
	}
	return math.Sqrt(sum)
}
