package enginetests

import (
	"bytes"
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"k8s.io/examples/AI/enginerunner/pkg/blobs"
	"k8s.io/examples/AI/enginerunner/pkg/config"
	"k8s.io/examples/AI/enginerunner/pkg/engine"
	"k8s.io/examples/AI/enginerunner/pkg/engine/disc"
	"k8s.io/examples/AI/enginerunner/pkg/runner"
)

func writeModelDir(t *testing.T, engineSize int, modelProto string) string {
	t.Helper()
	dir := t.TempDir()

	engineBytes := make([]byte, engineSize)
	if _, err := rand.Read(engineBytes); err != nil {
		t.Fatalf("generating engine bytes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "module.so"), engineBytes, 0644); err != nil {
		t.Fatalf("writing engine: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "module.so.pbtxt"), []byte(modelProto), 0644); err != nil {
		t.Fatalf("writing model proto: %v", err)
	}
	return dir
}

func TestEngine(t *testing.T) {
	ctx := context.Background()
	dir := writeModelDir(t, 37, "graph {...}\n")

	var out bytes.Buffer
	r := &runner.Runner{
		ModelDir:  dir,
		ModuleExt: "so",
		Inputs:    config.DefaultInputs(),
		Outputs:   config.DefaultOutputs(),
		Out:       &out,
	}
	if err := r.Run(ctx); err != nil {
		t.Fatalf("failed to run: %v", err)
	}

	report := out.String()
	t.Logf("report:\n%s", report)

	for _, want := range []string{
		"engine_bytes size: 37\n",
		"model_proto size: 12\n",
		"backend_name: disc\n",
		"Output size: 1\n",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q", want)
		}
	}
	if !regexp.MustCompile(`(?m)^tensor\(\d+\.\d{4}, dtype=float32, device=cpu\)$`).MatchString(report) {
		t.Errorf("expected one scalar float32 output tensor in report")
	}
}

// TestEngineSteps drives the same flow step by step, checking each intermediate value.
func TestEngineSteps(t *testing.T) {
	ctx := context.Background()
	dir := writeModelDir(t, 37, "graph {...}\n")

	if err := disc.Init(); err != nil {
		t.Fatalf("failed to init backend: %v", err)
	}

	state, err := engine.LoadEngineState(ctx, blobs.ForLocation(dir), engine.LoadOptions{
		ModelDir:  dir,
		ModuleExt: "so",
		Inputs:    config.DefaultInputs(),
		Outputs:   config.DefaultOutputs(),
	})
	if err != nil {
		t.Fatalf("failed to load engine state: %v", err)
	}
	state.BackendName = disc.GetBackendName()

	e, err := engine.CreateEngine(state)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	inputs, err := engine.CreateSampleInputs(state.Inputs)
	if err != nil {
		t.Fatalf("failed to create inputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	for _, input := range inputs {
		sizes := input.Sizes()
		if len(sizes) != 2 || sizes[0] != 100 || sizes[1] != 5 {
			t.Errorf("expected sizes [100 5], got %v", sizes)
		}
		if input.ScalarType() != engine.Float32 {
			t.Errorf("expected float32, got %v", input.ScalarType())
		}
		if input.Device() != engine.CPU {
			t.Errorf("expected cpu, got %v", input.Device())
		}
	}

	outputs, err := engine.Evaluate(ctx, e, inputs)
	if err != nil {
		t.Fatalf("failed to evaluate: %v", err)
	}
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}

	// Each product lies in [0, 1), so the sum of 500 lies in [0, 500).
	sum := outputs[0].Float64s()[0]
	if sum < 0 || sum >= 500 {
		t.Errorf("expected sum in [0, 500), got %v", sum)
	}

	if _, err := engine.Evaluate(ctx, e, inputs[:1]); engine.KindOf(err) != engine.KindExecution {
		t.Errorf("expected execution error for a missing input, got %v", err)
	}
}
