package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pnprune/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pnprune/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/pnprune/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pnprune/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/pnprune/internal/adapters/pnpm"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pnprune/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pnpm.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			fs.OutputNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.WorkspaceLoader](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.LockfileReader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ClosureCache](ctx)
	if err != nil {
		return nil, err
	}

	output, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, reader, hasher, cache, output, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    a,
		Logger: log,
	}, nil
}
