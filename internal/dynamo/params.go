package dynamo

import "fmt"

const (
	DefaultGravity = 2.0
)

// Params are the fixed physical constants of one pendulum.
type Params struct {
	Length  [Links]float64
	Mass    [Links]float64
	Gravity float64
}

// DefaultParams returns lengths [0.4 0.4 0.2], masses [2 2 1] and g = 2.
func DefaultParams() Params {
	return Params{
		Length:  [Links]float64{0.4, 0.4, 0.2},
		Mass:    [Links]float64{2.0, 2.0, 1.0},
		Gravity: DefaultGravity,
	}
}

// Validate rejects parameters that would make the mass matrix singular or
// the length normalisation divide by zero.
func (p Params) Validate() error {
	for i := 0; i < Links; i++ {
		if !finite(p.Length[i]) || p.Length[i] <= 0 {
			return fmt.Errorf("%w: length[%d] = %v", ErrDegenerateParams, i, p.Length[i])
		}
		if !finite(p.Mass[i]) || p.Mass[i] <= 0 {
			return fmt.Errorf("%w: mass[%d] = %v", ErrDegenerateParams, i, p.Mass[i])
		}
	}
	if !finite(p.Gravity) {
		return fmt.Errorf("%w: gravity = %v", ErrDegenerateParams, p.Gravity)
	}
	return nil
}

// GravityCoeff is the mass acting on coordinate i through gravity: half of
// rod i (its centre of mass) plus every rod it carries.
func (p Params) GravityCoeff(i int) float64 {
	c := 0.5 * p.Mass[i]
	for j := i + 1; j < Links; j++ {
		c += p.Mass[j]
	}
	return c
}

// CoupleCoeff is the mass coupling coordinates i < j: half of rod j plus
// every rod beyond it.
func (p Params) CoupleCoeff(i, j int) float64 {
	if j < i {
		i, j = j, i
	}
	return p.GravityCoeff(j)
}

// InertiaCoeff is the diagonal mass term of coordinate i: a third of rod i
// (uniform rod about its end) plus every rod it carries.
func (p Params) InertiaCoeff(i int) float64 {
	c := p.Mass[i] / 3.0
	for j := i + 1; j < Links; j++ {
		c += p.Mass[j]
	}
	return c
}
