package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"canonical": {
		Method: "rk4", Solver: DefaultSolver, Dt: DefaultDt, Steps: 10000, SampleEvery: 10,
		InitState: InitStateConfig{Theta: []float64{3.0, 3.5, 1.5}, Omega: []float64{1.0, 1.5, -5.0}},
	},
	"rest": {
		Method: "rk4", Solver: DefaultSolver, Dt: 0.01, Steps: 1000, SampleEvery: 10,
		InitState: InitStateConfig{Theta: []float64{0, 0, 0}, Omega: []float64{0, 0, 0}},
	},
	"gentle": {
		Method: "rk4", Solver: DefaultSolver, Dt: 0.005, Steps: 6000, SampleEvery: 10,
		InitState: InitStateConfig{Theta: []float64{0.3, 0.2, 0.1}, Omega: []float64{0, 0, 0}},
	},
	"inverted": {
		Method: "rk4", Solver: DefaultSolver, Dt: 0.001, Steps: 20000, SampleEvery: 20,
		InitState: InitStateConfig{Theta: []float64{math.Pi, math.Pi, math.Pi - 0.001}, Omega: []float64{0, 0, 0}},
	},
	"whip": {
		Method: "rk4", Solver: DefaultSolver, Dt: 0.0005, Steps: 20000, SampleEvery: 20,
		InitState: InitStateConfig{Theta: []float64{1.5, 1.5, 1.5}, Omega: []float64{0, 0, 12.0}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.LogLevel = DefaultLogLevel
	cfg.InitState = InitStateConfig{
		Theta: append([]float64(nil), p.InitState.Theta...),
		Omega: append([]float64(nil), p.InitState.Omega...),
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
