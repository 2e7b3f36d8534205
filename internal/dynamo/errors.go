package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidMethod indicates an integration method outside the defined set.
	ErrInvalidMethod = errors.New("dynamo: invalid integration method")

	// ErrInvalidArgument indicates a non-positive or non-finite timestep, or malformed input.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrDegenerateParams indicates physical parameters that make the mass matrix singular.
	ErrDegenerateParams = errors.New("dynamo: degenerate physical parameters")

	// ErrSingularMatrix indicates a zero pivot during the linear solve.
	ErrSingularMatrix = errors.New("dynamo: singular mass matrix")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
