package artifacts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.smelt.dev/smelt/internal/adapters/logger"
	"go.smelt.dev/smelt/internal/adapters/shell"
	"go.smelt.dev/smelt/internal/core/ports"
)

const NodeID graft.ID = "engine.artifacts"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Generator, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewGenerator(runner, log), nil
		},
	})
}
