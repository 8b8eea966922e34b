package config

import (
	"os"
	"slices"
	"strings"
	"testing"

	"k8s.io/examples/AI/enginerunner/pkg/engine"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MODEL_DIR", "RUNNER_MODULE_EXT", "RUNNER_INPUTS", "RUNNER_OUTPUTS"} {
		// Setenv restores the original value after the test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelDir != "" {
		t.Errorf("ModelDir = %q, want empty", cfg.ModelDir)
	}
	if cfg.ModuleExt != "so" {
		t.Errorf("ModuleExt = %q, want %q", cfg.ModuleExt, "so")
	}

	inputs, err := cfg.InputSchema()
	if err != nil {
		t.Fatalf("InputSchema: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 default inputs, got %d", len(inputs))
	}
	for i, input := range inputs {
		if want := []string{"arg0", "arg1"}[i]; input.Name != want {
			t.Errorf("input %d name = %q, want %q", i, input.Name, want)
		}
		if !slices.Equal(input.Sizes, []int64{100, 5}) || input.ScalarType != engine.Float32 || input.Device != "cpu" {
			t.Errorf("unexpected default input %+v", input)
		}
	}

	outputs, err := cfg.OutputSchema()
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Name != "out0" || len(outputs[0].Sizes) != 0 || outputs[0].ScalarType != engine.Float32 {
		t.Errorf("unexpected default outputs %+v", outputs)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MODEL_DIR", "/models/toy")
	t.Setenv("RUNNER_MODULE_EXT", "dylib")
	t.Setenv("RUNNER_INPUTS", "x:float32:3x4:cpu;y:half:3x4:cuda:0")
	t.Setenv("RUNNER_OUTPUTS", "pred:float64::cpu")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelDir != "/models/toy" || cfg.ModuleExt != "dylib" {
		t.Errorf("unexpected config %+v", cfg)
	}

	inputs, err := cfg.InputSchema()
	if err != nil {
		t.Fatalf("InputSchema: %v", err)
	}
	if len(inputs) != 2 || inputs[1].Name != "y" || inputs[1].Device != "cuda:0" || inputs[1].ScalarType != engine.Float16 {
		t.Errorf("unexpected inputs %+v", inputs)
	}

	outputs, err := cfg.OutputSchema()
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Name != "pred" || outputs[0].ScalarType != engine.Float64 {
		t.Errorf("unexpected outputs %+v", outputs)
	}
}

func TestSchemaErrors(t *testing.T) {
	cfg := Config{Inputs: []string{"x:float32:3:cpu", "x:float32:3:cpu"}}
	if _, err := cfg.InputSchema(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate name error, got %v", err)
	}

	cfg = Config{Outputs: []string{"x:bogus:3:cpu"}}
	if _, err := cfg.OutputSchema(); err == nil {
		t.Errorf("expected error for unknown dtype")
	}
}
