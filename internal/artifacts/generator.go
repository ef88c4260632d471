// Package artifacts emits post-build artifacts by invoking the freshly built
// binary.
package artifacts

import (
	"context"
	"os"
	"path/filepath"

	"go.smelt.dev/smelt/internal/core/domain"
	"go.smelt.dev/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generator runs the post-install steps after a successful release build.
// These are install-time artifacts, not optional extras: any invocation
// failure fails the whole build.
type Generator struct {
	runner ports.Runner
	logger ports.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(runner ports.Runner, logger ports.Logger) *Generator {
	return &Generator{runner: runner, logger: logger}
}

// Plan returns the ordered post-install steps for the built binary: first the
// man page, then one completion script per configured shell. Later steps
// depend on the earlier output files, so order is preserved exactly.
func Plan(binary string, cfg *domain.Config, destDir string) ([]domain.PostInstallStep, error) {
	steps := []domain.PostInstallStep{
		{
			Command:    []string{binary, "util", "mangen"},
			OutputFile: filepath.Join(destDir, "man", "man1", cfg.Command+".1"),
		},
	}

	for _, sh := range cfg.Shells {
		file, err := completionFile(sh, cfg.Command)
		if err != nil {
			return nil, err
		}
		steps = append(steps, domain.PostInstallStep{
			Command:    []string{binary, "util", "completion", sh},
			OutputFile: filepath.Join(destDir, "completions", file),
		})
	}
	return steps, nil
}

// completionFile maps a shell to the file name its completion loader expects
// for the given command.
func completionFile(shell, command string) (string, error) {
	switch shell {
	case "bash":
		return command + ".bash", nil
	case "fish":
		return command + ".fish", nil
	case "zsh":
		return "_" + command, nil
	default:
		return "", zerr.With(domain.ErrUnknownShell, "shell", shell)
	}
}

// Generate runs every step in order, capturing each command's stdout verbatim
// into its output file. The first failure aborts the remaining steps and
// fails the pipeline.
func (g *Generator) Generate(ctx context.Context, binary string, cfg *domain.Config, destDir string, env []string) error {
	steps, err := Plan(binary, cfg, destDir)
	if err != nil {
		return err
	}

	for _, step := range steps {
		out, err := g.runner.Capture(ctx, step.Command, env)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "artifact generation failed"), "output", step.OutputFile)
		}

		if err := os.MkdirAll(filepath.Dir(step.OutputFile), 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "output", step.OutputFile)
		}
		if err := os.WriteFile(step.OutputFile, out, 0o644); err != nil { //nolint:gosec // man pages and completions are public artifacts
			return zerr.With(zerr.Wrap(err, "failed to write artifact"), "output", step.OutputFile)
		}

		g.logger.Info("generated " + step.OutputFile)
	}
	return nil
}
