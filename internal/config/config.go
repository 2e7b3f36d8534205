package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tripend/internal/dynamo"
)

const (
	// DefaultDt is one 16ms display frame split into 10 substeps.
	DefaultDt          = 0.0016
	DefaultSteps       = 10000
	DefaultSampleEvery = 10
	DefaultMethod      = "rk4"
	DefaultSolver      = "gauss-jordan"
	DefaultLogLevel    = "info"
)

type Config struct {
	Method      string          `yaml:"method"`
	Solver      string          `yaml:"solver"`
	Dt          float64         `yaml:"dt"`
	Steps       int             `yaml:"steps"`
	SampleEvery int             `yaml:"sample_every"`
	InitState   InitStateConfig `yaml:"init_state"`
	LogLevel    string          `yaml:"log_level"`
}

type InitStateConfig struct {
	Theta []float64 `yaml:"theta"`
	Omega []float64 `yaml:"omega"`
}

func canonicalInitState() InitStateConfig {
	x := dynamo.CanonicalState()
	return InitStateConfig{
		Theta: []float64{x.Theta[0], x.Theta[1], x.Theta[2]},
		Omega: []float64{x.Omega[0], x.Omega[1], x.Omega[2]},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Method:      DefaultMethod,
		Solver:      DefaultSolver,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		InitState:   canonicalInitState(),
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := dynamo.ParseMethod(c.Method); err != nil {
		return err
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidArgument, c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidArgument, c.Steps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample_every must be positive, got %d", dynamo.ErrInvalidArgument, c.SampleEvery)
	}
	_, err := c.GetInitState()
	return err
}

// GetInitState converts the init_state block. Each list must hold exactly
// one value per rod.
func (c *Config) GetInitState() (dynamo.State, error) {
	var x dynamo.State
	if len(c.InitState.Theta) != dynamo.Links || len(c.InitState.Omega) != dynamo.Links {
		return x, fmt.Errorf("%w: init_state needs %d thetas and %d omegas, got %d and %d",
			dynamo.ErrInvalidArgument, dynamo.Links, dynamo.Links, len(c.InitState.Theta), len(c.InitState.Omega))
	}
	copy(x.Theta[:], c.InitState.Theta)
	copy(x.Omega[:], c.InitState.Omega)
	if !x.IsValid() {
		return x, fmt.Errorf("%w: %w", dynamo.ErrInvalidArgument, dynamo.ErrInvalidState)
	}
	return x, nil
}
