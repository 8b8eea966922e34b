// Package disc is the execution backend for engines compiled by the DISC
// compiler pipeline.
package disc

import (
	"fmt"
	"sync"

	"k8s.io/examples/AI/enginerunner/pkg/engine"
)

// BackendName is the key this backend registers under.
const BackendName = "disc"

var (
	initOnce sync.Once
	initErr  error
)

// Init registers the backend in the default registry.
// It is safe to call more than once; only the first call registers.
func Init() error {
	initOnce.Do(func() {
		initErr = InitRegistry(engine.DefaultRegistry())
	})
	return initErr
}

// InitRegistry registers the backend in an explicit registry.
func InitRegistry(registry *engine.Registry) error {
	if err := registry.Register(BackendName, New); err != nil {
		return fmt.Errorf("registering %s backend: %w", BackendName, err)
	}
	return nil
}

// GetBackendName returns the name engines of this backend must carry in EngineState.BackendName.
func GetBackendName() string {
	return BackendName
}
