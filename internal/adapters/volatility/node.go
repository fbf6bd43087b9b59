package volatility

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vestigehq/vestige/internal/adapters/config"
	"github.com/vestigehq/vestige/internal/adapters/logger"
	"github.com/vestigehq/vestige/internal/core/ports"
)

// NodeID is the unique identifier for the volatility analyzer Graft node.
const NodeID graft.ID = "adapter.volatility"

func init() {
	graft.Register(graft.Node[ports.Analyzer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Analyzer, error) {
			cfg, err := graft.Dep[config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewAnalyzer(cfg.VolatilityBinary, cfg.VolatilityArgs, log), nil
		},
	})
}
