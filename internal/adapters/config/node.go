package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the config Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[Config]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Config, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return Config{}, err
			}
			return Load(cwd)
		},
	})
}
