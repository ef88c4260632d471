// Package shell provides the external toolchain runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.smelt.dev/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the command with the given environment merged over the host
// environment. Output is duplicated to the structural logger and to the
// given writers, so a telemetry vertex can record the raw streams. The
// invocation is opaque and blocking; a non-zero exit is returned with the
// command's own exit code attached.
func (r *Runner) Run(ctx context.Context, command []string, env []string, stdout, stderr io.Writer) error {
	if len(command) == 0 {
		return zerr.New("empty command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // command comes from the resolved recipe
	cmd.Env = mergeEnvironment(os.Environ(), env)
	cmd.Stdout = io.MultiWriter(&logWriter{logger: r.logger, level: "info"}, stdout)
	cmd.Stderr = io.MultiWriter(&logWriter{logger: r.logger, level: "error"}, stderr)

	if err := cmd.Run(); err != nil {
		return wrapRunError(err, command[0])
	}
	return nil
}

// Capture executes the command and returns its standard output verbatim.
// Standard error is streamed to the logger.
func (r *Runner) Capture(ctx context.Context, command []string, env []string) ([]byte, error) {
	if len(command) == 0 {
		return nil, zerr.New("empty command")
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // command comes from the resolved recipe
	cmd.Env = mergeEnvironment(os.Environ(), env)
	cmd.Stdout = &stdout
	cmd.Stderr = &logWriter{logger: r.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		return nil, wrapRunError(err, command[0])
	}
	return stdout.Bytes(), nil
}

func wrapRunError(err error, name string) error {
	exitCode := -1 // Unknown or signal
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", name), "exit_code", exitCode)
}

// ExitCode extracts the external command's exit code from an error returned
// by this package. It returns -1 when the error does not carry one, so the
// caller can fall back to its own failure code.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// mergeEnvironment overlays the recipe environment on the host environment.
// Later entries win, so recipe values override host values of the same name.
func mergeEnvironment(hostEnv, env []string) []string {
	envMap := make(map[string]string, len(hostEnv)+len(env))
	order := make([]string, 0, len(hostEnv)+len(env))

	apply := func(entries []string) {
		for _, entry := range entries {
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				continue
			}
			if _, seen := envMap[k]; !seen {
				order = append(order, k)
			}
			envMap[k] = v
		}
	}
	apply(hostEnv)
	apply(env)

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
