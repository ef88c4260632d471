package domain

import (
	"maps"
	"slices"
)

// Phase names of the external toolchain pipeline, in execution order.
const (
	PhaseBuild   = "build"
	PhaseInstall = "install"
	PhaseCheck   = "check"
)

// DirtyRevision is the sentinel recorded when no revision identifier is
// available for the working copy.
const DirtyRevision = "dirty"

// Phase is one external toolchain invocation within a recipe. A phase with an
// empty Command is an explicit no-op: it is part of the plan but skipped
// without side effects.
type Phase struct {
	Name    string
	Command []string
}

// NoOp reports whether the phase carries no command.
func (p Phase) NoOp() bool {
	return len(p.Command) == 0
}

// BuildRecipe is the fully resolved invocation plan for one build, check, or
// shell invocation. It is constructed fresh per invocation and never mutated
// afterwards; the external toolchain only consumes it.
type BuildRecipe struct {
	Intent BuildIntent
	// Args are the ordered build arguments shared by the toolchain phases.
	Args []string
	// Env maps environment variable names to values for every phase.
	Env map[string]string
	// Deps are the native dependencies the toolchain expects to be present.
	// Their presence is not verified here; a missing one surfaces as the
	// toolchain's own failure.
	Deps []NativeDependency
	// Phases are the ordered toolchain invocations.
	Phases []Phase
}

// EnvSlice renders Env as sorted KEY=VALUE entries suitable for process
// execution. Sorting keeps the rendering deterministic.
func (r *BuildRecipe) EnvSlice() []string {
	entries := make([]string, 0, len(r.Env))
	for _, k := range slices.Sorted(maps.Keys(r.Env)) {
		entries = append(entries, k+"="+r.Env[k])
	}
	return entries
}

// PostInstallStep is one ordered artifact-generation invocation: run Command
// and capture its standard output verbatim into OutputFile.
type PostInstallStep struct {
	Command    []string
	OutputFile string
}
