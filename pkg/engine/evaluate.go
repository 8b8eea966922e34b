package engine

import (
	"context"
	"errors"
	"fmt"
)

// Evaluate runs one forward pass, classifying any failure as an execution error.
func Evaluate(ctx context.Context, engine Engine, inputs []*Tensor) ([]*Tensor, error) {
	if engine == nil {
		return nil, ExecutionError("execute", fmt.Errorf("engine is nil"))
	}

	outputs, err := engine.Execute(ctx, inputs)
	if err != nil {
		var classified *Error
		if errors.As(err, &classified) && classified.Kind == KindExecution {
			return nil, err
		}
		return nil, ExecutionError("execute", err)
	}

	for i, output := range outputs {
		if output == nil {
			return nil, ExecutionError("execute", fmt.Errorf("engine %s returned nil output %d", engine.ID(), i))
		}
	}
	return outputs, nil
}
