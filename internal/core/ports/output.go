package ports

import "go.trai.ch/pnprune/internal/core/domain"

// OutputLayout describes where a pruned monorepo is written.
type OutputLayout struct {
	// Root is the absolute monorepo root files are copied from.
	Root string

	// OutDir is the absolute directory output is written to.
	OutDir string

	// Docker splits output into json/ (manifests) and full/ (sources).
	Docker bool
}

// OutputWriter materializes a pruned monorepo on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=output.go -destination=mocks/mock_output.go -package=mocks
type OutputWriter interface {
	// WriteLockfile encodes the lockfile into the output directory and returns its size in bytes.
	WriteLockfile(layout OutputLayout, lockfile Lockfile) (int64, error)

	// WriteWorkspaces copies the sources of the given workspaces. In docker mode
	// the manifests are additionally written to the json/ tree.
	WriteWorkspaces(layout OutputLayout, workspaces []domain.Workspace) error

	// CopyFiles copies root-relative files (patches, workspace manifest) into the output.
	// In docker mode they are written to both the json/ and full/ trees.
	CopyFiles(layout OutputLayout, paths []string) error
}
