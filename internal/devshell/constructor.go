// Package devshell assembles the ephemeral interactive development
// environment.
package devshell

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"go.smelt.dev/smelt/internal/core/domain"
	"go.smelt.dev/smelt/internal/recipe"
	"go.trai.ch/zerr"
)

// toolchain is the fixed compiler toolchain every dev shell provides.
var toolchain = []string{"rustc", "cargo", "rust-analyzer"}

// devTools are the fixed developer utilities: test runners, the
// dependency-policy checker, file watchers, the protocol-stub generator,
// signing-test prerequisites, documentation-site build tools, and the
// cross-compilation toolchain.
var devTools = []string{
	"cargo-nextest",
	"cargo-insta",
	"cargo-deny",
	"cargo-watch",
	"watchman",
	"protobuf",
	"gnupg",
	"openssh",
	"poetry",
	"zig",
}

// Environment is the composed development-time process environment. It is a
// value returned to the caller, never an in-place mutation of the current
// process: the caller decides what to merge it into.
type Environment struct {
	// Env maps exported variable names to values.
	Env map[string]string
	// Tools are the availability requirements for the session, sorted and
	// deduplicated.
	Tools []string
}

// Constructor builds dev shell environments. It reuses the platform profile
// resolution through the recipe builder and performs no build or install
// action itself.
type Constructor struct {
	recipes *recipe.Builder
}

// NewConstructor creates a new Constructor.
func NewConstructor(recipes *recipe.Builder) *Constructor {
	return &Constructor{recipes: recipes}
}

// Construct merges the platform profile's dependencies and flags, the fixed
// compiler toolchain, the fixed developer utilities, any configured extras,
// and optional dotenv overlays into one environment. The three required
// exports (backtrace verbosity and the two system-package-metadata discovery
// flags) always win over overlay values.
func (c *Constructor) Construct(platform domain.Platform, cfg *domain.Config) (*Environment, error) {
	rec, err := c.recipes.Build(domain.IntentDevShell, platform, cfg, recipe.Params{})
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, file := range cfg.EnvFiles {
		overlay, err := godotenv.Read(file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read env file"), "path", file)
		}
		maps.Copy(env, overlay)
	}
	maps.Copy(env, rec.Env)

	tools := make([]string, 0, len(toolchain)+len(devTools)+len(rec.Deps)+len(cfg.DevTools))
	tools = append(tools, toolchain...)
	tools = append(tools, devTools...)
	for _, dep := range rec.Deps {
		tools = append(tools, dep.Name)
	}
	tools = append(tools, cfg.DevTools...)
	sort.Strings(tools)
	tools = slices.Compact(tools)

	return &Environment{Env: env, Tools: tools}, nil
}

// ExportScript renders the environment as a shell fragment: one export line
// per variable in sorted order, preceded by the availability requirements as
// comments. The output is deterministic.
func (e *Environment) ExportScript() string {
	var b strings.Builder
	for _, tool := range e.Tools {
		b.WriteString("# requires: ")
		b.WriteString(tool)
		b.WriteString("\n")
	}
	for _, k := range slices.Sorted(maps.Keys(e.Env)) {
		b.WriteString("export ")
		b.WriteString(k)
		b.WriteString("='")
		b.WriteString(strings.ReplaceAll(e.Env[k], "'", `'\''`))
		b.WriteString("'\n")
	}
	return b.String()
}
