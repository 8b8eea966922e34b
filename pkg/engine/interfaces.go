package engine

import (
	"context"
)

// Engine is a live, backend-bound object that runs one forward pass of a
// compiled artifact.
type Engine interface {
	// Execute runs the compiled program synchronously.
	// The number and order of inputs must match the input schema the engine was built with.
	Execute(ctx context.Context, inputs []*Tensor) ([]*Tensor, error)

	// ID identifies this engine instance for diagnostics.
	ID() string
}

// Factory builds an Engine from a loaded EngineState.
// A Factory should return an error wrapping ErrMalformedArtifact if it cannot parse the artifact.
type Factory func(state *EngineState) (Engine, error)
