// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Runner executes external toolchain commands.
//
// Every invocation is an opaque blocking call with a single success/failure
// outcome: no partial results, no streaming beyond capturing final output.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the command with the given environment ("KEY=VALUE"
	// entries merged over the host environment), streaming output to the
	// logger and to the given writers. A non-zero exit attaches the
	// command's own exit code to the returned error so callers can
	// propagate it verbatim.
	Run(ctx context.Context, command []string, env []string, stdout, stderr io.Writer) error

	// Capture executes the command and returns its standard output verbatim.
	// Standard error is streamed to the logger. Failure semantics match Run.
	Capture(ctx context.Context, command []string, env []string) ([]byte, error)
}
