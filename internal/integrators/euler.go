package integrators

import "github.com/san-kum/tripend/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Stages() int { return 1 }

func (e *Euler) Step(sys dynamo.System, x dynamo.State, dt float64) (dynamo.State, error) {
	k1, err := sys.Derive(x, dt)
	if err != nil {
		return x, err
	}
	return x.Apply(k1, 1.0).Wrap(), nil
}
