package models

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// TriplePendulum is three uniform rods hanging in series from a fixed pivot.
// The equations of motion are written in terms of length*theta'', so the
// solved accelerations are divided by the rod lengths at the end.
type TriplePendulum struct {
	params dynamo.Params
	solver Solver
}

// NewTriplePendulum validates p up front so the solve can never meet a
// zero length or mass mid-run. A nil solver selects GaussJordan.
func NewTriplePendulum(p dynamo.Params, s Solver) (*TriplePendulum, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		s = GaussJordan{}
	}
	return &TriplePendulum{params: p, solver: s}, nil
}

func (tp *TriplePendulum) Params() dynamo.Params { return tp.params }

// MassMatrix is the symmetric coupling of the generalized accelerations.
func (tp *TriplePendulum) MassMatrix(x dynamo.State) Matrix3 {
	p := tp.params
	var m Matrix3
	for i := 0; i < dynamo.Links; i++ {
		m[i][i] = p.InertiaCoeff(i)
		for j := i + 1; j < dynamo.Links; j++ {
			c := p.CoupleCoeff(i, j) * math.Cos(x.Theta[i]-x.Theta[j])
			m[i][j], m[j][i] = c, c
		}
	}
	return m
}

// VelocityMatrix is the skew-symmetric centrifugal coupling.
func (tp *TriplePendulum) VelocityMatrix(x dynamo.State) Matrix3 {
	p := tp.params
	var c Matrix3
	for i := 0; i < dynamo.Links; i++ {
		for j := i + 1; j < dynamo.Links; j++ {
			v := -p.CoupleCoeff(i, j) * math.Sin(x.Theta[i]-x.Theta[j])
			c[i][j], c[j][i] = v, -v
		}
	}
	return c
}

// Force is the generalized force: gravity plus centrifugal terms.
func (tp *TriplePendulum) Force(x dynamo.State) [dynamo.Links]float64 {
	p := tp.params
	c := tp.VelocityMatrix(x)
	var f [dynamo.Links]float64
	for i := 0; i < dynamo.Links; i++ {
		f[i] = -p.GravityCoeff(i) * p.Gravity * math.Sin(x.Theta[i])
		for j := 0; j < dynamo.Links; j++ {
			f[i] += c[i][j] * p.Length[j] * x.Omega[j] * x.Omega[j]
		}
	}
	return f
}

// Acceleration returns theta'' for every rod.
func (tp *TriplePendulum) Acceleration(x dynamo.State) ([dynamo.Links]float64, error) {
	scaled, err := tp.solver.Solve(tp.MassMatrix(x), tp.Force(x))
	if err != nil {
		return scaled, err
	}
	var accel [dynamo.Links]float64
	for i := 0; i < dynamo.Links; i++ {
		accel[i] = scaled[i] / tp.params.Length[i]
	}
	return accel, nil
}

func (tp *TriplePendulum) Derive(x dynamo.State, dt float64) (dynamo.Delta, error) {
	accel, err := tp.Acceleration(x)
	if err != nil {
		return dynamo.Delta{}, err
	}
	return dynamo.NewDelta(x, accel, dt), nil
}

// Vertices returns the pivot and the three rod ends, base to tip.
func (tp *TriplePendulum) Vertices(x dynamo.State) [dynamo.Links + 1]dynamo.Point {
	var pts [dynamo.Links + 1]dynamo.Point
	for i := 0; i < dynamo.Links; i++ {
		l := tp.params.Length[i]
		pts[i+1] = dynamo.Point{
			X: pts[i].X + l*math.Sin(x.Theta[i]),
			Y: pts[i].Y - l*math.Cos(x.Theta[i]),
		}
	}
	return pts
}
