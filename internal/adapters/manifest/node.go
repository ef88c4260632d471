package manifest

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.manifest"

// DefaultPath is where snapshot manifests are recorded between invocations.
const DefaultPath = ".smelt/manifests.json"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Store, error) {
			return NewStore(DefaultPath)
		},
	})
}
