package integrators

import "github.com/san-kum/tripend/internal/dynamo"

// Heun is the trapezoidal predictor-corrector. The second slope is taken at
// the half-increment predictor.
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Stages() int { return 2 }

func (h *Heun) Step(sys dynamo.System, x dynamo.State, dt float64) (dynamo.State, error) {
	k1, err := sys.Derive(x, dt)
	if err != nil {
		return x, err
	}

	k2, err := sys.Derive(x.Apply(k1, 0.5), dt)
	if err != nil {
		return x, err
	}

	k := k1.Add(k2).Scale(0.5)
	return x.Apply(k, 1.0).Wrap(), nil
}
