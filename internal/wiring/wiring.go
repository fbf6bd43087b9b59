// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/vestigehq/vestige/internal/adapters/cache"
	_ "github.com/vestigehq/vestige/internal/adapters/config"
	_ "github.com/vestigehq/vestige/internal/adapters/logger"
	_ "github.com/vestigehq/vestige/internal/adapters/volatility"
	_ "github.com/vestigehq/vestige/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/vestigehq/vestige/internal/app"
)
