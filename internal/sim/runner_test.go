package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/metrics"
)

type countingObserver struct {
	count int
	last  float64
}

func (c *countingObserver) OnStep(x dynamo.State, t float64) {
	c.count++
	c.last = t
}

func TestRunnerRun(t *testing.T) {
	s, err := New(WithMethod(dynamo.RungeKutta4))
	if err != nil {
		t.Fatal(err)
	}

	r := NewRunner(s, nil)
	obs := &countingObserver{}
	r.AddObserver(obs)
	r.AddMetric(metrics.NewEnergy(s.Params()))

	cfg := RunConfig{Dt: 0.001, Steps: 100, SampleEvery: 10}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Samples) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Samples))
	}
	if obs.count != 101 {
		t.Errorf("expected 101 observations, got %d", obs.count)
	}
	if result.Method != dynamo.RungeKutta4 {
		t.Errorf("expected rk4 result, got %v", result.Method)
	}
	if _, ok := result.Metrics["energy"]; !ok {
		t.Error("metric not found in result")
	}
	if result.EnergyDrift > 1e-6 {
		t.Errorf("unexpected drift %g over a short RK4 run", result.EnergyDrift)
	}

	first, last := result.Samples[0], result.Samples[len(result.Samples)-1]
	if first.State != dynamo.CanonicalState() || first.Time != 0 {
		t.Errorf("first sample is not the initial state: %+v", first)
	}
	if last.State != s.State() {
		t.Error("last sample is not the final state")
	}
	if last.Total != last.Kinetic+last.Potential {
		t.Error("sample total energy is not kinetic + potential")
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(s, nil)

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero dt", RunConfig{Dt: 0, Steps: 10, SampleEvery: 1}},
		{"negative dt", RunConfig{Dt: -0.1, Steps: 10, SampleEvery: 1}},
		{"zero steps", RunConfig{Dt: 0.1, Steps: 0, SampleEvery: 1}},
		{"zero sample interval", RunConfig{Dt: 0.1, Steps: 10, SampleEvery: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); !errors.Is(err, dynamo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRunnerCanceled(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(s, nil).Run(ctx, DefaultRunConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Errorf("expected a partial result with no steps, got %+v", result)
	}
}

func TestCompare(t *testing.T) {
	cfg := RunConfig{Dt: 0.001, Steps: 2000, SampleEvery: 100}
	results, err := Compare(context.Background(), nil, dynamo.CanonicalState(), dynamo.Methods, cfg)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	if len(results) != len(dynamo.Methods) {
		t.Fatalf("expected %d results, got %d", len(dynamo.Methods), len(results))
	}
	for i, m := range dynamo.Methods {
		if results[i].Method != m {
			t.Errorf("result %d is for %v, want %v", i, results[i].Method, m)
		}
		if results[i].StepsTaken != cfg.Steps {
			t.Errorf("%v took %d steps", m, results[i].StepsTaken)
		}
	}

	euler, rk4 := results[0].EnergyDrift, results[2].EnergyDrift
	if euler <= rk4 {
		t.Errorf("expected Euler to drift more than RK4: %g vs %g", euler, rk4)
	}

	// the same run done serially gives the same trajectory
	s, err := New(WithMethod(dynamo.RungeKutta4))
	if err != nil {
		t.Fatal(err)
	}
	serial, err := NewRunner(s, nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if serial.Samples[len(serial.Samples)-1].State != results[2].Samples[len(results[2].Samples)-1].State {
		t.Error("concurrent RK4 run diverged from the serial run")
	}
}
