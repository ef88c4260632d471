// Package recipe resolves a build intent into a concrete build recipe.
package recipe

import (
	"go.smelt.dev/smelt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Params are the per-invocation inputs that are not part of the static
// configuration.
type Params struct {
	// Revision is the revision identifier recorded into the version
	// environment variable. Empty means unavailable: the dirty sentinel is
	// recorded instead.
	Revision string
	// Dest is the installation root for release builds.
	Dest string
}

// Builder composes feature flags, environment variables, and invocation
// flags into build recipes. It is pure: every call constructs a fresh recipe
// from its inputs and nothing else.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build resolves the intent against the platform profile and configuration.
// An unrecognized intent is a configuration error.
func (b *Builder) Build(intent domain.BuildIntent, platform domain.Platform, cfg *domain.Config, params Params) (*domain.BuildRecipe, error) {
	prof := domain.ProfileFor(platform)

	switch intent {
	case domain.IntentRelease:
		return b.release(prof, cfg, params), nil
	case domain.IntentCICheck:
		return b.ciCheck(prof, cfg, params), nil
	case domain.IntentDevShell:
		return b.devShell(prof, cfg), nil
	default:
		return nil, zerr.With(domain.ErrUnknownIntent, "intent", intent.String())
	}
}

// release produces the distributable-package recipe: packaging features on,
// the build restricted to the single distributed binary (auxiliary helper
// binaries are never selected), system package metadata preferred over
// vendored library discovery, incremental compilation off for cache-clean
// reproducible artifacts, and the revision recorded for the version string.
func (b *Builder) release(prof domain.Profile, cfg *domain.Config, params Params) *domain.BuildRecipe {
	args := []string{"--locked", "--release"}
	for _, feature := range cfg.Features {
		args = append(args, "--features", feature)
	}
	args = append(args, "--bin", cfg.Command)

	revision := params.Revision
	if revision == "" {
		revision = domain.DirtyRevision
	}

	env := baseEnv(prof)
	env["CARGO_INCREMENTAL"] = "0"
	env[cfg.RevisionEnv] = revision

	buildCmd := append([]string{cfg.ToolchainCommand, "build"}, args...)
	installCmd := []string{cfg.ToolchainCommand, "install", "--path", ".", "--locked", "--bin", cfg.Command}
	if params.Dest != "" {
		installCmd = append(installCmd, "--root", params.Dest)
	}

	return &domain.BuildRecipe{
		Intent: domain.IntentRelease,
		Args:   args,
		Env:    env,
		Deps:   prof.Deps,
		Phases: []domain.Phase{
			{Name: domain.PhaseBuild, Command: buildCmd},
			{Name: domain.PhaseInstall, Command: installCmd},
		},
	}
}

// ciCheck reuses the release resolution but replaces the build and install
// phases with explicit no-ops: this intent only runs the test suite against
// an already-warm dependency cache. The check phase is pinned to the test
// build profile so CI verifies what it actually exercises.
func (b *Builder) ciCheck(prof domain.Profile, cfg *domain.Config, params Params) *domain.BuildRecipe {
	release := b.release(prof, cfg, params)

	checkCmd := []string{cfg.ToolchainCommand, "test", "--locked", "--profile", "test"}

	return &domain.BuildRecipe{
		Intent: domain.IntentCICheck,
		Args:   release.Args,
		Env:    release.Env,
		Deps:   release.Deps,
		Phases: []domain.Phase{
			{Name: domain.PhaseBuild},
			{Name: domain.PhaseInstall},
			{Name: domain.PhaseCheck, Command: checkCmd},
		},
	}
}

// devShell produces no phases at all: the recipe only carries the resolved
// environment and dependency set for the environment constructor to merge.
func (b *Builder) devShell(prof domain.Profile, cfg *domain.Config) *domain.BuildRecipe {
	env := baseEnv(prof)
	env["RUST_BACKTRACE"] = "1"

	return &domain.BuildRecipe{
		Intent: domain.IntentDevShell,
		Env:    env,
		Deps:   prof.Deps,
	}
}

// baseEnv holds the environment shared by every intent: the linker flag
// string from the platform profile and the flags forcing the two native
// binding libraries to be located via system package metadata.
func baseEnv(prof domain.Profile) map[string]string {
	env := map[string]string{
		"ZSTD_SYS_USE_PKG_CONFIG":    "1",
		"LIBSSH2_SYS_USE_PKG_CONFIG": "1",
	}
	if flags := prof.LinkerArgs(); flags != "" {
		env["RUSTFLAGS"] = flags
	}
	return env
}
