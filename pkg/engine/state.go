package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"k8s.io/examples/AI/enginerunner/pkg/blobs"
	"k8s.io/klog/v2"
)

// EngineState is everything a backend needs to build an Engine.
// EngineBytes and ModelProto are opaque here; only the backend interprets them.
type EngineState struct {
	EngineBytes []byte
	ModelProto  string
	BackendName string

	Inputs  []TensorInfo
	Outputs []TensorInfo
}

// ModulePaths returns the engine blob and metadata locations inside dir.
func ModulePaths(dir string, ext string) (modulePath string, pbtxtPath string) {
	modulePath = blobs.JoinLocation(dir, "module."+ext)
	return modulePath, modulePath + ".pbtxt"
}

// LoadOptions controls LoadEngineState.
type LoadOptions struct {
	ModelDir  string
	ModuleExt string

	Inputs  []TensorInfo
	Outputs []TensorInfo
}

// LoadEngineState reads the engine blob and its metadata from opts.ModelDir.
// BackendName is left empty; the caller fills it in once the backend is initialized.
func LoadEngineState(ctx context.Context, reader blobs.BlobReader, opts LoadOptions) (*EngineState, error) {
	log := klog.FromContext(ctx)

	if opts.ModelDir == "" {
		return nil, ConfigurationError("load engine state", fmt.Errorf("model_dir is empty"))
	}
	if opts.ModuleExt == "" {
		return nil, ConfigurationError("load engine state", fmt.Errorf("module extension is empty"))
	}
	for _, info := range slices.Concat(opts.Inputs, opts.Outputs) {
		if err := info.Validate(); err != nil {
			return nil, ConfigurationError("load engine state", err)
		}
	}

	modulePath, pbtxtPath := ModulePaths(opts.ModelDir, opts.ModuleExt)

	engineBytes, err := reader.ReadBlob(ctx, modulePath)
	if err != nil {
		return nil, IOError("read engine", err)
	}
	log.V(2).Info("read engine", "path", modulePath, "size", humanize.Bytes(uint64(len(engineBytes))))

	modelProto, err := reader.ReadBlob(ctx, pbtxtPath)
	if err != nil {
		return nil, IOError("read model proto", err)
	}
	log.V(2).Info("read model proto", "path", pbtxtPath, "size", humanize.Bytes(uint64(len(modelProto))))

	return &EngineState{
		EngineBytes: engineBytes,
		ModelProto:  string(modelProto),
		Inputs:      slices.Clone(opts.Inputs),
		Outputs:     slices.Clone(opts.Outputs),
	}, nil
}
