package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vestigehq/vestige/internal/adapters/cache"
	"github.com/vestigehq/vestige/internal/adapters/config"
	"github.com/vestigehq/vestige/internal/adapters/logger"
	"github.com/vestigehq/vestige/internal/adapters/volatility"
	"github.com/vestigehq/vestige/internal/adapters/watcher"
	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
	"github.com/vestigehq/vestige/internal/engine/analysis"
)

const (
	// NodeID is the unique identifier for the App Graft node.
	NodeID graft.ID = "app"
	// ComponentsNodeID is the unique identifier for the Components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components aggregates the top-level objects the CLI entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			cache.RegistryNodeID,
			volatility.NodeID,
			watcher.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[config.Config](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[*cache.Registry](ctx)
			if err != nil {
				return nil, err
			}
			analyzer, err := graft.Dep[ports.Analyzer](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			log.SetJSON(cfg.LogJSON)

			// One cache per operation, all registered for aggregated
			// statistics and cross-cache invalidation.
			caches := make([]ports.ReportCache, 0, len(domain.Operations()))
			for _, op := range domain.Operations() {
				c := cache.New[*domain.Report](op, cfg.MaxEntriesPerCache, cfg.TTL)
				registry.Register(c)
				caches = append(caches, c)
			}

			cached := analysis.NewCachedAnalyzer(analyzer, log, caches...)
			return New(log, cached, registry, w), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}
