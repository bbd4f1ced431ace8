// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pnprune/internal/adapters/cas"
	_ "go.trai.ch/pnprune/internal/adapters/config"
	_ "go.trai.ch/pnprune/internal/adapters/fs"
	_ "go.trai.ch/pnprune/internal/adapters/logger"
	_ "go.trai.ch/pnprune/internal/adapters/pnpm"
	// Register app nodes.
	_ "go.trai.ch/pnprune/internal/app"
)
