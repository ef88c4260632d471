package devshell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.smelt.dev/smelt/internal/recipe"
)

const NodeID graft.ID = "engine.devshell"

func init() {
	graft.Register(graft.Node[*Constructor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{recipe.NodeID},
		Run: func(ctx context.Context) (*Constructor, error) {
			recipes, err := graft.Dep[*recipe.Builder](ctx)
			if err != nil {
				return nil, err
			}
			return NewConstructor(recipes), nil
		},
	})
}
