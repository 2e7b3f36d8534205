package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Method != "rk4" {
		t.Errorf("expected method rk4, got %s", cfg.Method)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	x, err := cfg.GetInitState()
	if err != nil {
		t.Fatal(err)
	}
	if x != dynamo.CanonicalState() {
		t.Errorf("expected canonical initial state, got %+v", x)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("method: heun\ndt: 0.002\ninit_state:\n  theta: [0.1, 0.2, 0.3]\n  omega: [0, 0, 1]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Method != "heun" || cfg.Dt != 0.002 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Steps != DefaultSteps || cfg.Solver != DefaultSolver {
		t.Errorf("defaults not kept: %+v", cfg)
	}

	x, err := cfg.GetInitState()
	if err != nil {
		t.Fatal(err)
	}
	if x.Theta[2] != 0.3 || x.Omega[2] != 1 {
		t.Errorf("unexpected init state %+v", x)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := GetPreset("gentle")
	cfg.Method = "euler"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Method != "euler" || loaded.Dt != cfg.Dt || loaded.InitState.Theta[0] != 0.3 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown method", func(c *Config) { c.Method = "verlet" }, dynamo.ErrInvalidMethod},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrInvalidArgument},
		{"negative steps", func(c *Config) { c.Steps = -1 }, dynamo.ErrInvalidArgument},
		{"zero sample interval", func(c *Config) { c.SampleEvery = 0 }, dynamo.ErrInvalidArgument},
		{"short theta", func(c *Config) { c.InitState.Theta = []float64{1, 2} }, dynamo.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rest")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	x, err := cfg.GetInitState()
	if err != nil {
		t.Fatal(err)
	}
	if x != (dynamo.State{}) {
		t.Errorf("expected rest state, got %+v", x)
	}

	// presets are copies
	cfg.InitState.Theta[0] = 9
	if Presets["rest"].InitState.Theta[0] != 0 {
		t.Error("GetPreset returned shared slices")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
