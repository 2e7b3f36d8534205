package integrators

import (
	"fmt"

	"github.com/san-kum/tripend/internal/dynamo"
)

// New returns the stepper for m.
func New(m dynamo.Method) (dynamo.Integrator, error) {
	switch m {
	case dynamo.Euler:
		return NewEuler(), nil
	case dynamo.Heun:
		return NewHeun(), nil
	case dynamo.RungeKutta4:
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("%w: %d", dynamo.ErrInvalidMethod, int(m))
}
