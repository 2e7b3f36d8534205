package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/tripend/internal/config"
	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/experiment"
	"github.com/san-kum/tripend/internal/sim"
	"github.com/san-kum/tripend/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Fields left unset fall back to the preset, or
// to the defaults when no preset is named.
type ScenarioStep struct {
	Name          string `yaml:"name"`
	Preset        string `yaml:"preset"`
	Save          bool   `yaml:"save"`
	config.Config `yaml:",inline"`
}

// StepResult pairs a step with its outcome.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve merges the step over its preset or the defaults.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
	}

	if s.Method != "" {
		cfg.Method = s.Method
	}
	if s.Solver != "" {
		cfg.Solver = s.Solver
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.SampleEvery != 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if len(s.InitState.Theta) > 0 {
		cfg.InitState.Theta = s.InitState.Theta
	}
	if len(s.InitState.Omega) > 0 {
		cfg.InitState.Omega = s.InitState.Omega
	}
	if s.LogLevel != "" {
		cfg.LogLevel = s.LogLevel
	}

	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps marked save are written
// to st, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		level.Info(logger).Log("msg", "scenario step", "scenario", scenario.Name, "step", name, "index", i+1, "of", len(scenario.Steps))

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg, logger)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			id, err := st.Save(storage.RunInfo{Solver: cfg.Solver, Preset: step.Preset, Dt: cfg.Dt}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}

		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig defines an ensemble of perturbed runs around one state.
type MonteCarloConfig struct {
	Method       dynamo.Method
	BaseState    dynamo.State
	Perturbation float64
	NumTrials    int
	Steps        int
	Dt           float64
	Seed         int64
}

// MonteCarloResult holds one trial.
type MonteCarloResult struct {
	TrialID    int
	InitState  dynamo.State
	FinalState dynamo.State
	Tip        dynamo.Point
	Stable     bool
}

// RunMonteCarlo perturbs every angle of the base state uniformly within
// ±Perturbation and runs each trial to the end.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger log.Logger) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 || cfg.Steps <= 0 || !(cfg.Dt > 0) || cfg.Perturbation < 0 {
		return nil, fmt.Errorf("%w: trials=%d steps=%d dt=%v perturbation=%v",
			dynamo.ErrInvalidArgument, cfg.NumTrials, cfg.Steps, cfg.Dt, cfg.Perturbation)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		init := cfg.BaseState
		for i := range init.Theta {
			init.Theta[i] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		}

		s, err := sim.New(sim.WithMethod(cfg.Method))
		if err != nil {
			return nil, err
		}
		if err := s.SetState(init); err != nil {
			return nil, err
		}

		stable := true
		if _, err := sim.NewRunner(s, logger).Run(ctx, sim.RunConfig{Dt: cfg.Dt, Steps: cfg.Steps, SampleEvery: cfg.Steps}); err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			stable = false
		}

		tips := s.Vertices()
		results = append(results, MonteCarloResult{
			TrialID:    trial,
			InitState:  init.Normalize(),
			FinalState: s.State(),
			Tip:        tips[dynamo.Links],
			Stable:     stable,
		})

		if (trial+1)%10 == 0 {
			level.Debug(logger).Log("msg", "monte carlo progress", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats summarizes an ensemble: how many trials stayed finite
// and the RMS distance of their final tips from the mean tip.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int, tipSpread float64) {
	var mean dynamo.Point
	for _, r := range results {
		if r.Stable {
			stableCount++
			mean.X += r.Tip.X
			mean.Y += r.Tip.Y
		} else {
			unstableCount++
		}
	}
	if stableCount == 0 {
		return
	}
	mean.X /= float64(stableCount)
	mean.Y /= float64(stableCount)

	for _, r := range results {
		if r.Stable {
			tipSpread += (r.Tip.X-mean.X)*(r.Tip.X-mean.X) + (r.Tip.Y-mean.Y)*(r.Tip.Y-mean.Y)
		}
	}
	tipSpread = math.Sqrt(tipSpread / float64(stableCount))
	return
}
