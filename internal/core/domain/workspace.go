package domain

import (
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Workspace is one package of the monorepo as declared by its package.json.
type Workspace struct {
	// Name is the package name (e.g., "@acme/web").
	Name string

	// Path is the slash-separated directory relative to the workspace root.
	// The root workspace uses RootImporter.
	Path string

	// Version is the declared package version, if any.
	Version string

	// Dependencies are the production dependencies (name -> specifier).
	Dependencies map[string]string

	// DevDependencies are the development dependencies (name -> specifier).
	DevDependencies map[string]string

	// OptionalDependencies are the optional dependencies (name -> specifier).
	OptionalDependencies map[string]string
}

// IsRoot reports whether the workspace is the monorepo root.
func (w *Workspace) IsRoot() bool {
	return w.Path == RootImporter
}

// ExternalDependencies merges the declared dependencies into one name -> specifier map.
// Dev dependencies are skipped when production is set. Optional entries win over dev
// entries and regular entries win over both, mirroring how package managers install them.
func (w *Workspace) ExternalDependencies(production bool) map[string]string {
	deps := make(map[string]string, len(w.Dependencies)+len(w.OptionalDependencies)+len(w.DevDependencies))
	if !production {
		maps.Copy(deps, w.DevDependencies)
	}
	maps.Copy(deps, w.OptionalDependencies)
	maps.Copy(deps, w.Dependencies)
	return deps
}

// IsLocalSpecifier reports whether a specifier points at a workspace or local directory
// rather than a locked registry package.
func IsLocalSpecifier(specifier string) bool {
	for _, prefix := range []string{"workspace:", "link:", "file:"} {
		if strings.HasPrefix(specifier, prefix) {
			return true
		}
	}
	return false
}

// Satisfies reports whether a dependency declared with specifier is served by
// this workspace instead of the registry. Local protocols always match; a semver
// range matches when the workspace version satisfies it. Aliases ("npm:") and
// unparsable ranges do not match.
func (w *Workspace) Satisfies(specifier string) bool {
	if IsLocalSpecifier(specifier) {
		return true
	}
	if specifier == "" || specifier == "*" {
		return true
	}
	if strings.Contains(specifier, ":") {
		return false
	}
	if w.Version == "" {
		return false
	}

	constraint, err := semver.NewConstraint(specifier)
	if err != nil {
		return false
	}
	version, err := semver.NewVersion(w.Version)
	if err != nil {
		return false
	}
	return constraint.Check(version)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
