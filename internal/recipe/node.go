package recipe

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "engine.recipe"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Builder, error) {
			return NewBuilder(), nil
		},
	})
}
