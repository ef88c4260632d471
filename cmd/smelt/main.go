// Package main is the entry point for the smelt CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.smelt.dev/smelt/cmd/smelt/commands"
	"go.smelt.dev/smelt/internal/adapters/shell"
	"go.smelt.dev/smelt/internal/app"
	_ "go.smelt.dev/smelt/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(ctx context.Context, args []string, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer components.App.Close() //nolint:errcheck // Best effort flush on exit

	cli := commands.New(components.App, components.ConfigLoader)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a pretty error report with stack trace and metadata
		// when using %+v
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)

		// A failing external invocation propagates its own exit code.
		if code := shell.ExitCode(err); code > 0 {
			return code
		}
		return 1
	}
	return 0
}
