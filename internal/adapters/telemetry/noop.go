// Package telemetry provides the telemetry provider and a no-op fallback.
package telemetry

import (
	"context"
	"io"

	"go.smelt.dev/smelt/internal/core/ports"
)

// Noop implements ports.Telemetry without recording anything. It is the
// default in tests and non-interactive runs.
type Noop struct{}

// NewNoop creates a new no-op telemetry recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}
