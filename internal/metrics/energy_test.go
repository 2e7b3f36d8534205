package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
)

func TestEnergyAtRest(t *testing.T) {
	p := dynamo.DefaultParams()
	x := dynamo.State{}

	if k := Kinetic(p, x); k != 0 {
		t.Errorf("expected zero kinetic energy, got %f", k)
	}
	if u := Potential(p, x); u != 0 {
		t.Errorf("expected zero potential energy, got %f", u)
	}
}

func TestPotentialInverted(t *testing.T) {
	p := dynamo.DefaultParams()
	x := dynamo.State{Theta: [3]float64{math.Pi, math.Pi, math.Pi}}

	// every centre of mass raised by twice its depth
	expected := 2 * p.Gravity * (4*0.4 + 2*0.4 + 0.5*0.2)
	if u := Potential(p, x); math.Abs(u-expected) > 1e-12 {
		t.Errorf("expected potential %f, got %f", expected, u)
	}
}

func TestKineticRigidRotation(t *testing.T) {
	p := dynamo.DefaultParams()
	omega := 1.5
	x := dynamo.State{
		Theta: [3]float64{0.7, 0.7, 0.7},
		Omega: [3]float64{omega, omega, omega},
	}

	// aligned rods spinning together are one rigid body about the pivot;
	// a rod spanning [a, b] has moment m(a²+ab+b²)/3
	inertia := 0.0
	a := 0.0
	for i := 0; i < dynamo.Links; i++ {
		b := a + p.Length[i]
		inertia += p.Mass[i] * (a*a + a*b + b*b) / 3
		a = b
	}
	expected := 0.5 * inertia * omega * omega

	if k := Kinetic(p, x); math.Abs(k-expected) > 1e-12 {
		t.Errorf("expected kinetic energy %f, got %f", expected, k)
	}
}

func TestTotalIsSum(t *testing.T) {
	p := dynamo.DefaultParams()
	x := dynamo.CanonicalState()

	if math.Abs(Total(p, x)-(Kinetic(p, x)+Potential(p, x))) > 1e-12 {
		t.Error("total energy is not kinetic + potential")
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(dynamo.DefaultParams())

	m.Observe(dynamo.CanonicalState(), 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	p := dynamo.DefaultParams()
	m := NewEnergyDrift(p)

	x0 := dynamo.CanonicalState()
	x1 := x0
	x1.Omega[2] = -5.5

	m.Observe(x0, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after one sample, got %f", m.Value())
	}

	m.Observe(x1, 0.1)
	m.Observe(x0, 0.2)

	expected := math.Abs(Total(p, x1) - Total(p, x0))
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected max drift %f, got %f", expected, m.Value())
	}
	if math.Abs(m.Relative()-expected/math.Abs(Total(p, x0))) > 1e-12 {
		t.Errorf("unexpected relative drift %f", m.Relative())
	}

	m.Reset()
	if m.Value() != 0 || m.Relative() != 0 {
		t.Error("expected zero drift after reset")
	}
}
