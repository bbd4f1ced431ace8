package ports

import "go.trai.ch/pnprune/internal/core/domain"

// Settings holds the defaults read from pnprune.yaml.
type Settings struct {
	OutDir     string
	Lockfile   string
	Docker     bool
	Production bool
	NoCache    bool
}

// WorkspaceLoader discovers and loads the workspaces of a monorepo.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace_loader.go -destination=mocks/mock_workspace_loader.go -package=mocks
type WorkspaceLoader interface {
	// DiscoverRoot walks up from cwd to find the monorepo root.
	// Returns the directory containing pnpm-workspace.yaml or pnpm-lock.yaml.
	DiscoverRoot(cwd string) (string, error)

	// Load reads pnpm-workspace.yaml and every matched package.json below root.
	Load(root string) (*domain.WorkspaceGraph, error)

	// LoadSettings reads pnprune.yaml from root. A missing file yields zero Settings.
	LoadSettings(root string) (Settings, error)
}
