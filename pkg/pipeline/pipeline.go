// Package pipeline sequences a release run: resolve the local version,
// ask the registry whether it is already published, and only then hand
// off to the executor. One pass, no retry loop; idempotency comes from
// re-running the whole pipeline, which short-circuits at "already
// released" once a prior run has published.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/odvcencio/crateship/pkg/manifest"
	"github.com/odvcencio/crateship/pkg/registry"
)

// Executor is the side-effecting half of the pipeline, invoked only when
// the version is new.
type Executor interface {
	Run(ctx context.Context, version string) error
}

// Pipeline wires the release stages together. Out receives the
// human-readable progress lines.
type Pipeline struct {
	ManifestPath string
	Checker      registry.Checker
	Executor     Executor
	Out          io.Writer

	// DryRun stops after the registry check is reported.
	DryRun bool
}

// Result describes how a run terminated.
type Result struct {
	Crate           string
	Version         string
	AlreadyReleased bool
}

// Run executes the full procedure. Any error aborts the run at the point
// of failure; a nil error means either "already released" or a completed
// publish-and-tag sequence.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	crate, err := manifest.Load(p.ManifestPath)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(p.Out, "Detected crate version %s\n", crate.Version)

	released, err := p.Checker.Released(ctx, crate.Name, crate.Version)
	if err != nil {
		return Result{}, fmt.Errorf("check registry: %w", err)
	}

	result := Result{Crate: crate.Name, Version: crate.Version, AlreadyReleased: released}
	if released {
		fmt.Fprintf(p.Out, "Version %s already exists on the registry\n", crate.Version)
		return result, nil
	}

	fmt.Fprintf(p.Out, "Could not find version %s on the registry; creating a new release\n", crate.Version)
	if p.DryRun {
		fmt.Fprintln(p.Out, "Dry run: skipping publish and tag")
		return result, nil
	}

	if err := p.Executor.Run(ctx, crate.Version); err != nil {
		return Result{}, err
	}
	return result, nil
}
