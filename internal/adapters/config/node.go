package config

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.config"

func init() {
	// Registered as the concrete type: the CLI layer needs access to the
	// Filename field for the --config flag, while the app consumes it
	// through ports.ConfigLoader.
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Loader, error) {
			return NewLoader(), nil
		},
	})
}
