package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"k8s.io/examples/AI/enginerunner/pkg/engine"
)

// Config holds runner settings read from the environment.
// Flags, where present, override it.
type Config struct {
	ModelDir  string `env:"MODEL_DIR"`
	ModuleExt string `env:"RUNNER_MODULE_EXT" envDefault:"so"`

	// Inputs and Outputs are name:dtype:dims:device entries, e.g. arg0:float32:100x5:cpu.
	Inputs  []string `env:"RUNNER_INPUTS" envSeparator:";"`
	Outputs []string `env:"RUNNER_OUTPUTS" envSeparator:";"`
}

// Load reads Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// InputSchema returns the configured inputs, or the default declaration if none are set.
func (c Config) InputSchema() ([]engine.TensorInfo, error) {
	if len(c.Inputs) == 0 {
		return DefaultInputs(), nil
	}
	return parseSchema(c.Inputs)
}

// OutputSchema returns the configured outputs, or the default declaration if none are set.
func (c Config) OutputSchema() ([]engine.TensorInfo, error) {
	if len(c.Outputs) == 0 {
		return DefaultOutputs(), nil
	}
	return parseSchema(c.Outputs)
}

func parseSchema(entries []string) ([]engine.TensorInfo, error) {
	schema := make([]engine.TensorInfo, 0, len(entries))
	seen := make(map[string]bool)
	for _, entry := range entries {
		info, err := engine.ParseTensorInfo(entry)
		if err != nil {
			return nil, err
		}
		if seen[info.Name] {
			return nil, fmt.Errorf("duplicate tensor name %q", info.Name)
		}
		seen[info.Name] = true
		schema = append(schema, info)
	}
	return schema, nil
}

const (
	defaultNumInputs  = 2
	defaultNumOutputs = 1
)

// DefaultInputs is the hand-declared input schema: arg0 and arg1, float32 [100, 5] on cpu.
func DefaultInputs() []engine.TensorInfo {
	var inputs []engine.TensorInfo
	for i := 0; i < defaultNumInputs; i++ {
		inputs = append(inputs, engine.TensorInfo{
			Name:       fmt.Sprintf("arg%d", i),
			Sizes:      []int64{100, 5},
			ScalarType: engine.Float32,
			Device:     engine.DeviceCPU,
		})
	}
	return inputs
}

// DefaultOutputs is the hand-declared output schema: a float32 out0 on cpu with unspecified sizes.
func DefaultOutputs() []engine.TensorInfo {
	var outputs []engine.TensorInfo
	for i := 0; i < defaultNumOutputs; i++ {
		outputs = append(outputs, engine.TensorInfo{
			Name:       fmt.Sprintf("out%d", i),
			Sizes:      []int64{},
			ScalarType: engine.Float32,
			Device:     engine.DeviceCPU,
		})
	}
	return outputs
}
