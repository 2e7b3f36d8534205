package models

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/tripend/internal/dynamo"
)

func newDefault(t *testing.T, s Solver) *TriplePendulum {
	t.Helper()
	tp, err := NewTriplePendulum(dynamo.DefaultParams(), s)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	return tp
}

func TestTriplePendulumEquilibrium(t *testing.T) {
	tp := newDefault(t, nil)

	// At rest hanging straight down
	accel, err := tp.Acceleration(dynamo.State{})
	if err != nil {
		t.Fatalf("acceleration failed: %v", err)
	}
	for i, a := range accel {
		if a != 0 {
			t.Errorf("expected zero accel[%d], got %g", i, a)
		}
	}
}

func TestTriplePendulumRejectsDegenerateParams(t *testing.T) {
	p := dynamo.DefaultParams()
	p.Length[2] = 0

	if _, err := NewTriplePendulum(p, nil); !errors.Is(err, dynamo.ErrDegenerateParams) {
		t.Errorf("expected ErrDegenerateParams, got %v", err)
	}
}

func TestTriplePendulumSymmetry(t *testing.T) {
	tp := newDefault(t, nil)

	// Mirrored configurations give mirrored accelerations
	x1 := dynamo.State{Theta: [3]float64{0.1, 0.2, -0.3}}
	x2 := dynamo.State{Theta: [3]float64{-0.1, -0.2, 0.3}}

	a1, err := tp.Acceleration(x1)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := tp.Acceleration(x2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a1 {
		if math.Abs(a1[i]+a2[i]) > 1e-12 {
			t.Errorf("expected symmetric accel[%d]: %g vs %g", i, a1[i], a2[i])
		}
	}
}

func TestTriplePendulumSatisfiesEquationsOfMotion(t *testing.T) {
	tp := newDefault(t, nil)
	x := dynamo.CanonicalState()

	accel, err := tp.Acceleration(x)
	if err != nil {
		t.Fatal(err)
	}

	m := tp.MassMatrix(x)
	f := tp.Force(x)
	l := tp.Params().Length
	for i := 0; i < dynamo.Links; i++ {
		lhs := 0.0
		for j := 0; j < dynamo.Links; j++ {
			lhs += m[i][j] * l[j] * accel[j]
		}
		if math.Abs(lhs-f[i]) > 1e-10 {
			t.Errorf("row %d: M*a' = %g, F = %g", i, lhs, f[i])
		}
	}
}

func TestMatricesStructure(t *testing.T) {
	tp := newDefault(t, nil)
	x := dynamo.CanonicalState()

	m := tp.MassMatrix(x)
	c := tp.VelocityMatrix(x)
	for i := 0; i < dynamo.Links; i++ {
		if c[i][i] != 0 {
			t.Errorf("velocity matrix diagonal [%d] = %g", i, c[i][i])
		}
		for j := 0; j < dynamo.Links; j++ {
			if m[i][j] != m[j][i] {
				t.Errorf("mass matrix not symmetric at (%d,%d)", i, j)
			}
			if c[i][j] != -c[j][i] {
				t.Errorf("velocity matrix not skew at (%d,%d)", i, j)
			}
		}
	}

	want := 2.0/3 + 2 + 1
	if math.Abs(m[0][0]-want) > 1e-12 {
		t.Errorf("M00 = %g, want %g", m[0][0], want)
	}
	wantOff := (0.5*2 + 1) * math.Cos(3.0-3.5)
	if math.Abs(m[0][1]-wantOff) > 1e-12 {
		t.Errorf("M01 = %g, want %g", m[0][1], wantOff)
	}
}

func TestSolversAgree(t *testing.T) {
	gj := newDefault(t, GaussJordan{})
	lu := newDefault(t, LU{})

	states := []dynamo.State{
		dynamo.CanonicalState(),
		{Theta: [3]float64{0.3, 5.9, 2.2}, Omega: [3]float64{-2, 0.5, 3}},
		{Theta: [3]float64{math.Pi, math.Pi, math.Pi}},
	}
	for _, x := range states {
		a1, err := gj.Acceleration(x)
		if err != nil {
			t.Fatal(err)
		}
		a2, err := lu.Acceleration(x)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualApprox(a1[:], a2[:], 1e-10) {
			t.Errorf("solvers disagree at %+v: %v vs %v", x, a1, a2)
		}
	}
}

func TestSolversRejectSingular(t *testing.T) {
	var singular Matrix3
	singular[0] = [3]float64{1, 2, 3}
	singular[1] = [3]float64{2, 4, 6}
	singular[2] = [3]float64{0, 0, 1}
	b := [3]float64{1, 2, 3}

	if _, err := (GaussJordan{}).Solve(Matrix3{}, b); !errors.Is(err, dynamo.ErrSingularMatrix) {
		t.Errorf("GaussJordan: expected ErrSingularMatrix, got %v", err)
	}
	if _, err := (LU{}).Solve(singular, b); !errors.Is(err, dynamo.ErrSingularMatrix) {
		t.Errorf("LU: expected ErrSingularMatrix, got %v", err)
	}
}

func TestDeriveScalesByDt(t *testing.T) {
	tp := newDefault(t, nil)
	x := dynamo.CanonicalState()

	accel, err := tp.Acceleration(x)
	if err != nil {
		t.Fatal(err)
	}
	d, err := tp.Derive(x, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < dynamo.Links; i++ {
		if d[i] != 0.01*x.Omega[i] {
			t.Errorf("delta[%d] = %g, want %g", i, d[i], 0.01*x.Omega[i])
		}
		if d[i+3] != 0.01*accel[i] {
			t.Errorf("delta[%d] = %g, want %g", i+3, d[i+3], 0.01*accel[i])
		}
	}
}

func TestVertices(t *testing.T) {
	tp := newDefault(t, nil)
	l := tp.Params().Length

	states := []dynamo.State{
		{},
		dynamo.CanonicalState(),
		{Theta: [3]float64{math.Pi / 2, math.Pi, 4.0}},
	}
	for _, x := range states {
		pts := tp.Vertices(x)
		if pts[0] != (dynamo.Point{}) {
			t.Errorf("base moved: %+v", pts[0])
		}
		for i := 0; i < dynamo.Links; i++ {
			d := math.Hypot(pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y)
			if math.Abs(d-l[i]) > 1e-12 {
				t.Errorf("link %d length = %g, want %g", i, d, l[i])
			}
		}
	}

	// Hanging straight down
	pts := tp.Vertices(dynamo.State{})
	if math.Abs(pts[3].Y+1.0) > 1e-12 || pts[3].X != 0 {
		t.Errorf("tip at rest = %+v, want (0, -1)", pts[3])
	}
}
