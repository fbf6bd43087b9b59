package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vestigehq/vestige/internal/adapters/cache"
	"github.com/vestigehq/vestige/internal/adapters/config"
	"github.com/vestigehq/vestige/internal/adapters/logger"
	"github.com/vestigehq/vestige/internal/core/ports"
)

// NodeID is the unique identifier for the invalidation watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.RegistryNodeID, config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			registry, err := graft.Dep[*cache.Registry](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			w, err := New(log, registry, cfg.DebounceWindow)
			if err != nil {
				return nil, err
			}
			w.Start(ctx)
			return w, nil
		},
	})
}
