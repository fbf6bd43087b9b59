package cache

import (
	"context"

	"github.com/grindlemire/graft"
)

// RegistryNodeID is the unique identifier for the statistics registry
// Graft node.
const RegistryNodeID graft.ID = "adapter.cache_registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return NewRegistry(), nil
		},
	})
}
