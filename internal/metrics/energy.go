package metrics

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Kinetic is the kinetic energy of three uniform rods. The coefficients
// belong to the uniform-rod model: a sixth of each rod's own mass on its
// diagonal term, half of every rod it carries, and half the supported mass
// on the cross terms.
func Kinetic(p dynamo.Params, x dynamo.State) float64 {
	m, l, w, th := p.Mass, p.Length, x.Omega, x.Theta
	return (1.0/6.0*m[0]+1.0/2.0*m[1]+1.0/2.0*m[2])*l[0]*l[0]*w[0]*w[0] +
		(1.0/6.0*m[1]+1.0/2.0*m[2])*l[1]*l[1]*w[1]*w[1] +
		(1.0/6.0*m[2])*l[2]*l[2]*w[2]*w[2] +
		(1.0/2.0*m[1]+m[2])*l[0]*l[1]*w[0]*w[1]*math.Cos(th[0]-th[1]) +
		(1.0/2.0*m[2])*l[0]*l[2]*w[0]*w[2]*math.Cos(th[0]-th[2]) +
		(1.0/2.0*m[2])*l[1]*l[2]*w[1]*w[2]*math.Cos(th[1]-th[2])
}

// Potential is the height drop of every centre of mass relative to the
// hanging rest pose, so it is zero at rest.
func Potential(p dynamo.Params, x dynamo.State) float64 {
	u := 0.0
	for i := 0; i < dynamo.Links; i++ {
		u += p.GravityCoeff(i) * p.Length[i] * (math.Cos(x.Theta[i]) - 1.0)
	}
	return -p.Gravity * u
}

func Total(p dynamo.Params, x dynamo.State) float64 {
	return Kinetic(p, x) + Potential(p, x)
}

// Energy reports the mean total energy over the observed states.
type Energy struct {
	name        string
	params      dynamo.Params
	samples     int
	totalEnergy float64
}

func NewEnergy(p dynamo.Params) *Energy {
	return &Energy{
		name:   "energy",
		params: p,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.totalEnergy += Total(e.params, x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest absolute deviation of the total energy from
// the first observed state.
type EnergyDrift struct {
	name          string
	params        dynamo.Params
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(p dynamo.Params) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		params: p,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := Total(e.params, x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++
	e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initialEnergy))
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Relative is the maximum drift as a fraction of the initial energy.
func (e *EnergyDrift) Relative() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return e.maxDrift / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
