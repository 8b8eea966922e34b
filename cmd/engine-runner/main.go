package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"k8s.io/examples/AI/enginerunner/pkg/config"
	"k8s.io/examples/AI/enginerunner/pkg/runner"
	"k8s.io/klog/v2"
)

func main() {
	ctx := context.Background()
	err := run(ctx, os.Args[1:])
	klog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("engine-runner", flag.ContinueOnError)
	fs.StringVar(&cfg.ModelDir, "model_dir", cfg.ModelDir, "model directory (local path, gs:// or http(s):// prefix)")
	klog.InitFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	inputs, err := cfg.InputSchema()
	if err != nil {
		return fmt.Errorf("parsing input schema: %w", err)
	}
	outputs, err := cfg.OutputSchema()
	if err != nil {
		return fmt.Errorf("parsing output schema: %w", err)
	}

	log := klog.FromContext(ctx)
	log.V(1).Info("starting engine-runner", "modelDir", cfg.ModelDir, "moduleExt", cfg.ModuleExt)

	r := &runner.Runner{
		ModelDir:  cfg.ModelDir,
		ModuleExt: cfg.ModuleExt,
		Inputs:    inputs,
		Outputs:   outputs,
		Out:       os.Stdout,
	}
	return r.Run(ctx)
}
