package dynamo

import (
	"fmt"
	"strings"
)

// Method selects the integration scheme.
type Method int

const (
	Euler Method = iota + 1
	Heun
	RungeKutta4
)

// Methods lists every valid Method in selector order.
var Methods = []Method{Euler, Heun, RungeKutta4}

func (m Method) Valid() bool {
	return m >= Euler && m <= RungeKutta4
}

// String returns the display label of the method.
func (m Method) String() string {
	switch m {
	case Euler:
		return "Euler Method"
	case Heun:
		return "Heun's Method"
	case RungeKutta4:
		return "Runge-Kutta Method"
	default:
		return "Unknown"
	}
}

// Key is the short name used by configs and flags.
func (m Method) Key() string {
	switch m {
	case Euler:
		return "euler"
	case Heun:
		return "heun"
	case RungeKutta4:
		return "rk4"
	default:
		return "unknown"
	}
}

// ParseMethod accepts the short names, "runge-kutta", or the legacy numeric
// selectors 1, 2 and 3.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler", "1":
		return Euler, nil
	case "heun", "2":
		return Heun, nil
	case "rk4", "runge-kutta", "rungekutta", "3":
		return RungeKutta4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, name)
}
