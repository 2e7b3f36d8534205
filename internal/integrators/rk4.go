package integrators

import "github.com/san-kum/tripend/internal/dynamo"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Stages() int { return 4 }

func (r *RK4) Step(sys dynamo.System, x dynamo.State, dt float64) (dynamo.State, error) {
	k1, err := sys.Derive(x, dt)
	if err != nil {
		return x, err
	}

	k2, err := sys.Derive(x.Apply(k1, 0.5), dt)
	if err != nil {
		return x, err
	}

	k3, err := sys.Derive(x.Apply(k2, 0.5), dt)
	if err != nil {
		return x, err
	}

	k4, err := sys.Derive(x.Apply(k3, 1.0), dt)
	if err != nil {
		return x, err
	}

	k := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(1.0 / 6.0)
	return x.Apply(k, 1.0).Wrap(), nil
}
