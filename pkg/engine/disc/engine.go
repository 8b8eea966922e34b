package disc

import (
	"context"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"k8s.io/examples/AI/enginerunner/pkg/engine"
	"k8s.io/klog/v2"
)

type Engine struct {
	id string

	engineBytes []byte
	modelProto  string

	inputs  []engine.TensorInfo
	outputs []engine.TensorInfo

	// device is where execution happens; every input is bound to it.
	device engine.Device
}

var _ engine.Engine = (*Engine)(nil)

// New builds an engine from a loaded state. It is the engine.Factory for this backend.
func New(state *engine.EngineState) (engine.Engine, error) {
	if len(state.EngineBytes) == 0 {
		return nil, fmt.Errorf("%w: engine bytes are empty", engine.ErrMalformedArtifact)
	}
	if len(state.ModelProto) == 0 {
		return nil, fmt.Errorf("%w: model proto is empty", engine.ErrMalformedArtifact)
	}
	if !utf8.ValidString(state.ModelProto) {
		return nil, fmt.Errorf("%w: model proto is not text", engine.ErrMalformedArtifact)
	}
	if len(state.Outputs) == 0 {
		return nil, fmt.Errorf("%w: no outputs declared", engine.ErrMalformedArtifact)
	}

	device := engine.CPU
	for _, info := range state.Inputs {
		if err := info.Validate(); err != nil {
			return nil, err
		}
		d, err := engine.ParseDevice(info.Device)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", info.Name, err)
		}
		if d.Type != engine.DeviceCPU {
			return nil, fmt.Errorf("input %q: %w: %v", info.Name, engine.ErrDeviceUnavailable, d)
		}
	}
	for _, info := range state.Outputs {
		d, err := engine.ParseDevice(info.Device)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", info.Name, err)
		}
		if d.Type != engine.DeviceCPU {
			return nil, fmt.Errorf("output %q: %w: %v", info.Name, engine.ErrDeviceUnavailable, d)
		}
	}

	return &Engine{
		id:          ulid.Make().String(),
		engineBytes: state.EngineBytes,
		modelProto:  state.ModelProto,
		inputs:      slices.Clone(state.Inputs),
		outputs:     slices.Clone(state.Outputs),
		device:      device,
	}, nil
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Execute(ctx context.Context, inputs []*engine.Tensor) ([]*engine.Tensor, error) {
	log := klog.FromContext(ctx)

	if len(inputs) != len(e.inputs) {
		return nil, engine.ExecutionError("execute", fmt.Errorf("%w: got %d inputs, want %d", engine.ErrInputMismatch, len(inputs), len(e.inputs)))
	}
	for i, input := range inputs {
		if input == nil {
			return nil, engine.ExecutionError("execute", fmt.Errorf("%w: input %d is nil", engine.ErrInputMismatch, i))
		}
		if err := input.Matches(e.inputs[i]); err != nil {
			return nil, engine.ExecutionError("execute", fmt.Errorf("%w: %w", engine.ErrInputMismatch, err))
		}
		if input.Device().Type != e.device.Type {
			return nil, engine.ExecutionError("execute", fmt.Errorf("%w: input %q is on %v", engine.ErrDeviceUnavailable, e.inputs[i].Name, input.Device()))
		}
	}

	startedAt := time.Now()
	result, err := multiplySum(inputs)
	if err != nil {
		return nil, engine.ExecutionError("execute", err)
	}

	outputs := make([]*engine.Tensor, 0, len(e.outputs))
	for _, info := range e.outputs {
		output, err := broadcastOutput(info, result)
		if err != nil {
			return nil, engine.ExecutionError("execute", err)
		}
		outputs = append(outputs, output)
	}

	log.V(2).Info("executed engine", "engine", e.id, "engineBytes", len(e.engineBytes), "modelProtoBytes", len(e.modelProto),
		"inputs", len(inputs), "outputs", len(outputs), "duration", time.Since(startedAt))

	return outputs, nil
}
