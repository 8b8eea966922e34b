// Package runner loads a compiled engine from a model directory, executes it
// once on random inputs and reports the outputs.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"k8s.io/examples/AI/enginerunner/pkg/blobs"
	"k8s.io/examples/AI/enginerunner/pkg/engine"
	"k8s.io/examples/AI/enginerunner/pkg/engine/disc"
	"k8s.io/klog/v2"
)

// Stage is a step of a run. Stages are reached strictly in order.
type Stage int

const (
	StageStart Stage = iota
	StageArgsParsed
	StageArtifactLoaded
	StageBackendInitialized
	StageEngineCreated
	StageInputsSynthesized
	StageExecuted
	StageReported
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "Start"
	case StageArgsParsed:
		return "ArgsParsed"
	case StageArtifactLoaded:
		return "ArtifactLoaded"
	case StageBackendInitialized:
		return "BackendInitialized"
	case StageEngineCreated:
		return "EngineCreated"
	case StageInputsSynthesized:
		return "InputsSynthesized"
	case StageExecuted:
		return "Executed"
	case StageReported:
		return "Reported"
	case StageFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Backend is the one-time initialization hook and identity of the backend to run.
type Backend struct {
	// Init must be idempotent.
	Init func() error
	Name func() string
}

// DiscBackend initializes the disc backend in the default registry.
var DiscBackend = Backend{
	Init: disc.Init,
	Name: disc.GetBackendName,
}

// Runner performs a single harness run. A Runner is not reusable.
type Runner struct {
	ModelDir  string
	ModuleExt string

	Inputs  []engine.TensorInfo
	Outputs []engine.TensorInfo

	// Backend defaults to DiscBackend.
	Backend *Backend
	// Registry defaults to engine.DefaultRegistry().
	Registry *engine.Registry
	// Reader defaults to blobs.ForLocation(ModelDir).
	Reader blobs.BlobReader
	// Out receives the report; os.Stdout if nil.
	Out io.Writer

	reached Stage
	failed  bool
}

// Stage returns the last stage reached, or StageFailed if the run failed.
func (r *Runner) Stage() Stage {
	if r.failed {
		return StageFailed
	}
	return r.reached
}

// LastCompleted returns the last stage completed, even after a failure.
func (r *Runner) LastCompleted() Stage {
	return r.reached
}

func (r *Runner) advance(ctx context.Context, stage Stage) {
	klog.FromContext(ctx).V(2).Info("stage reached", "stage", stage)
	r.reached = stage
}

// Run executes the whole harness once.
func (r *Runner) Run(ctx context.Context) error {
	err := r.run(ctx)
	if err != nil {
		r.failed = true
		klog.FromContext(ctx).V(2).Info("run failed", "after", r.reached, "error", err)
	}
	return err
}

func (r *Runner) run(ctx context.Context) error {
	log := klog.FromContext(ctx)

	r.advance(ctx, StageStart)

	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	if r.ModelDir == "" {
		return engine.ConfigurationError("parse args", fmt.Errorf("model_dir is empty"))
	}
	r.advance(ctx, StageArgsParsed)

	modulePath, pbtxtPath := engine.ModulePaths(r.ModelDir, r.ModuleExt)
	fmt.Fprintf(out, "module_path: %s\n", modulePath)
	fmt.Fprintf(out, "pbtxt_path: %s\n", pbtxtPath)

	reader := r.Reader
	if reader == nil {
		reader = blobs.ForLocation(r.ModelDir)
	}
	state, err := engine.LoadEngineState(ctx, reader, engine.LoadOptions{
		ModelDir:  r.ModelDir,
		ModuleExt: r.ModuleExt,
		Inputs:    r.Inputs,
		Outputs:   r.Outputs,
	})
	if err != nil {
		return err
	}
	r.advance(ctx, StageArtifactLoaded)

	backend := r.Backend
	if backend == nil {
		backend = &DiscBackend
	}
	if err := backend.Init(); err != nil {
		return engine.BackendResolutionError("initialize backend", err)
	}
	state.BackendName = backend.Name()
	r.advance(ctx, StageBackendInitialized)

	fmt.Fprintf(out, "Engine state:\n")
	fmt.Fprintf(out, "  - engine_bytes size: %d\n", len(state.EngineBytes))
	fmt.Fprintf(out, "  - model_proto size: %d\n", len(state.ModelProto))
	fmt.Fprintf(out, "  - backend_name: %s\n", state.BackendName)

	registry := r.Registry
	if registry == nil {
		registry = engine.DefaultRegistry()
	}
	eng, err := registry.CreateEngine(state)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Engine addr: %p (id %s)\n", eng, eng.ID())
	r.advance(ctx, StageEngineCreated)

	inputs, err := engine.CreateSampleInputs(state.Inputs)
	if err != nil {
		return err
	}
	for i, input := range inputs {
		log.V(1).Info("synthesized input", "name", state.Inputs[i].Name, "tensor", input)
	}
	r.advance(ctx, StageInputsSynthesized)

	outputs, err := engine.Evaluate(ctx, eng, inputs)
	if err != nil {
		return err
	}
	r.advance(ctx, StageExecuted)

	fmt.Fprintf(out, "\nOutput size: %d\n", len(outputs))
	for _, tensor := range outputs {
		fmt.Fprintf(out, "%v\n", tensor)
	}
	r.advance(ctx, StageReported)

	return nil
}
