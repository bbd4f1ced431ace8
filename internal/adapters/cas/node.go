package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pnprune/internal/core/ports"
)

// NodeID is the unique identifier for the closure cache Graft node.
const NodeID graft.ID = "adapter.closure_cache"

func init() {
	graft.Register(graft.Node[ports.ClosureCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ClosureCache, error) {
			return NewStore(), nil
		},
	})
}
