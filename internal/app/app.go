// Package app implements the application layer for smelt.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.smelt.dev/smelt/internal/adapters/fs"
	"go.smelt.dev/smelt/internal/adapters/manifest"
	"go.smelt.dev/smelt/internal/artifacts"
	"go.smelt.dev/smelt/internal/core/domain"
	"go.smelt.dev/smelt/internal/core/ports"
	"go.smelt.dev/smelt/internal/devshell"
	"go.smelt.dev/smelt/internal/recipe"
	"go.trai.ch/zerr"
)

// App wires the resolver components into the build, check, shell, and
// snapshot pipelines. Every entity is constructed fresh per invocation and
// discarded at its end; the only state between invocations is whatever the
// external toolchain caches.
type App struct {
	loader      ports.ConfigLoader
	runner      ports.Runner
	logger      ports.Logger
	telemetry   ports.Telemetry
	recipes     *recipe.Builder
	generator   *artifacts.Generator
	shellEnv    *devshell.Constructor
	snapshotter *fs.Snapshotter
	hasher      *fs.Hasher
	manifests   *manifest.Store
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.Runner,
	logger ports.Logger,
	telemetry ports.Telemetry,
	recipes *recipe.Builder,
	generator *artifacts.Generator,
	shellEnv *devshell.Constructor,
	snapshotter *fs.Snapshotter,
	hasher *fs.Hasher,
	manifests *manifest.Store,
) *App {
	return &App{
		loader:      loader,
		runner:      runner,
		logger:      logger,
		telemetry:   telemetry,
		recipes:     recipes,
		generator:   generator,
		shellEnv:    shellEnv,
		snapshotter: snapshotter,
		hasher:      hasher,
		manifests:   manifests,
	}
}

// PipelineOptions are the per-invocation inputs from the CLI.
type PipelineOptions struct {
	// Platform is an explicitly requested platform, or empty to detect the
	// host platform.
	Platform string
	// Revision is the revision identifier, or empty when unavailable.
	Revision string
	// Dest is the installation root for release artifacts.
	Dest string
}

// Build runs the release-package pipeline: resolve the recipe, run the
// toolchain phases, then generate the post-build artifacts by invoking the
// freshly built binary.
func (a *App) Build(ctx context.Context, opts PipelineOptions) error {
	cfg, platform, err := a.resolve(opts)
	if err != nil {
		return err
	}

	if opts.Revision == "" {
		a.logger.Warn("no revision provided, recording " + domain.DirtyRevision)
	}

	rec, err := a.recipes.Build(domain.IntentRelease, platform, cfg, recipe.Params{
		Revision: opts.Revision,
		Dest:     opts.Dest,
	})
	if err != nil {
		return err
	}

	env := rec.EnvSlice()
	if err := a.runPhases(ctx, rec, env); err != nil {
		return err
	}

	binary := filepath.Join(opts.Dest, "bin", cfg.Command)
	_, vertex := a.telemetry.Record(ctx, "artifacts")
	err = a.generator.Generate(ctx, binary, cfg, opts.Dest, env)
	vertex.Complete(err)
	if err != nil {
		return err
	}

	a.logger.Info("release build complete")
	return nil
}

// Check runs the ci-check pipeline. The recipe's build and install phases
// are explicit no-ops; only the check phase invokes the toolchain.
func (a *App) Check(ctx context.Context, opts PipelineOptions) error {
	cfg, platform, err := a.resolve(opts)
	if err != nil {
		return err
	}

	if opts.Revision == "" {
		a.logger.Warn("no revision provided, recording " + domain.DirtyRevision)
	}

	rec, err := a.recipes.Build(domain.IntentCICheck, platform, cfg, recipe.Params{
		Revision: opts.Revision,
	})
	if err != nil {
		return err
	}

	return a.runPhases(ctx, rec, rec.EnvSlice())
}

// Shell composes the dev shell environment and writes the export script to
// w. No build or install action is performed.
func (a *App) Shell(_ context.Context, opts PipelineOptions, w io.Writer) error {
	cfg, platform, err := a.resolve(opts)
	if err != nil {
		return err
	}

	env, err := a.shellEnv.Construct(platform, cfg)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, env.ExportScript()); err != nil {
		return zerr.Wrap(err, "failed to write export script")
	}
	return nil
}

// SnapshotOptions locate a source snapshot.
type SnapshotOptions struct {
	Root string
	Dest string
}

// Snapshot produces the filtered source snapshot, computes its digest, and
// records the manifest. An earlier manifest for the same destination is
// compared against first, so repeated snapshots report whether the source
// changed in between.
func (a *App) Snapshot(ctx context.Context, opts SnapshotOptions) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	filter, err := fs.NewFilter(cfg.ExcludeRules)
	if err != nil {
		return err
	}

	count, err := a.snapshotter.Snapshot(ctx, opts.Root, opts.Dest, filter)
	if err != nil {
		return err
	}

	digest, _, err := a.hasher.SnapshotDigest(opts.Root, filter)
	if err != nil {
		return err
	}

	prev, err := a.manifests.Get(opts.Dest)
	if err != nil {
		return err
	}
	switch {
	case prev == nil:
	case prev.Digest == digest:
		a.logger.Info("source unchanged since snapshot of " + prev.Timestamp.Format(time.RFC3339))
	default:
		a.logger.Info("source changed since snapshot of " + prev.Timestamp.Format(time.RFC3339))
	}

	if err := a.manifests.Put(domain.SnapshotManifest{
		Root:      opts.Root,
		Dest:      opts.Dest,
		Digest:    digest,
		FileCount: count,
		Timestamp: time.Now(),
	}); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("snapshot complete: %d files, digest %s", count, digest))
	return nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// resolve loads the configuration and determines the platform for this
// invocation: an explicitly passed value must parse, otherwise the host OS
// is detected.
func (a *App) resolve(opts PipelineOptions) (*domain.Config, domain.Platform, error) {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Platform == "" {
		return cfg, domain.DetectPlatform(), nil
	}
	platform, err := domain.ParsePlatform(opts.Platform)
	if err != nil {
		return nil, "", err
	}
	return cfg, platform, nil
}

// runPhases executes the recipe's phases in order. No-op phases are logged
// and skipped; the first failure aborts the remaining phases.
func (a *App) runPhases(ctx context.Context, rec *domain.BuildRecipe, env []string) error {
	for _, phase := range rec.Phases {
		if phase.NoOp() {
			a.logger.Info("skipping phase " + phase.Name)
			continue
		}

		_, vertex := a.telemetry.Record(ctx, phase.Name)
		err := a.runner.Run(ctx, phase.Command, env, vertex.Stdout(), vertex.Stderr())
		vertex.Complete(err)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "phase failed"), "phase", phase.Name)
		}
	}
	return nil
}
