// Package ports defines the core interfaces for the application.
package ports

import (
	"io"

	"go.trai.ch/pnprune/internal/core/domain"
)

// Lockfile is the package-manager independent view of a decoded lockfile.
// Implementations are immutable after decoding and safe for concurrent reads.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type Lockfile interface {
	// ResolvePackage resolves the specifier a workspace declares for name to a locked package.
	// An undeclared or unlocked dependency yields a Package with Found unset and a nil error.
	// An unknown workspace yields domain.ErrMissingWorkspace.
	ResolvePackage(workspacePath, name, specifier string) (domain.Package, error)

	// LookupPackage finds the locked package another package records as a dependency.
	// version is either a full dependency key or a bare version, as stored in the
	// dependency maps AllDependencies returns.
	LookupPackage(name, version string) domain.Package

	// AllDependencies returns the regular and optional dependencies of a locked package.
	// The boolean is false when key is not present in the lockfile.
	AllDependencies(key string) (map[string]string, bool)

	// Subgraph returns a new lockfile restricted to the given workspaces and package keys.
	Subgraph(workspacePaths, packages []string) (Lockfile, error)

	// Encode writes the lockfile in its on-disk format.
	Encode(w io.Writer) error

	// Patches returns the sorted patch file paths referenced by the lockfile.
	Patches() []string

	// GlobalChange reports whether other differs in any setting that affects every workspace.
	GlobalChange(other Lockfile) bool
}

// LockfileReader loads a lockfile from disk.
type LockfileReader interface {
	// Read decodes the lockfile at path and returns it together with its raw bytes.
	Read(path string) (Lockfile, []byte, error)
}
