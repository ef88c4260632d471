package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.smelt.dev/smelt/internal/adapters/config"
	"go.smelt.dev/smelt/internal/adapters/fs"
	"go.smelt.dev/smelt/internal/adapters/logger"
	"go.smelt.dev/smelt/internal/adapters/manifest"
	"go.smelt.dev/smelt/internal/adapters/shell"
	"go.smelt.dev/smelt/internal/adapters/telemetry"
	"go.smelt.dev/smelt/internal/artifacts"
	"go.smelt.dev/smelt/internal/core/ports"
	"go.smelt.dev/smelt/internal/devshell"
	"go.smelt.dev/smelt/internal/recipe"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			recipe.NodeID,
			artifacts.NodeID,
			devshell.NodeID,
			fs.SnapshotterNodeID,
			fs.HasherNodeID,
			manifest.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tele, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := graft.Dep[*recipe.Builder](ctx)
	if err != nil {
		return nil, err
	}

	generator, err := graft.Dep[*artifacts.Generator](ctx)
	if err != nil {
		return nil, err
	}

	shellEnv, err := graft.Dep[*devshell.Constructor](ctx)
	if err != nil {
		return nil, err
	}

	snapshotter, err := graft.Dep[*fs.Snapshotter](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[*fs.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[*manifest.Store](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, log, tele, recipes, generator, shellEnv, snapshotter, hasher, manifests), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          application,
		Logger:       log,
		ConfigLoader: loader,
	}, nil
}
