package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.smelt.dev/smelt/internal/adapters/logger"
	"go.smelt.dev/smelt/internal/adapters/telemetry/progrock"
	"go.smelt.dev/smelt/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return progrock.New(log), nil
		},
	})
}
