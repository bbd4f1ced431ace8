package pnpm

import (
	"maps"
	"slices"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
)

// Subgraph implements ports.Lockfile.
func (l *Lockfile) Subgraph(workspacePaths, packages []string) (ports.Lockfile, error) {
	pruned, err := l.Prune(workspacePaths, packages)
	if err != nil {
		return nil, err
	}
	return pruned, nil
}

// Prune returns a new lockfile restricted to the given workspaces (plus the
// root) and packages. Injected workspace dependencies of kept workspaces are
// retained, patches are limited to those applied to a kept package and time
// is dropped. The result shares no maps with l.
func (l *Lockfile) Prune(workspacePaths, packages []string) (*Lockfile, error) {
	importers := make(map[string]ProjectSnapshot, len(workspacePaths)+1)
	if root, ok := l.Importers[domain.RootImporter]; ok {
		importers[domain.RootImporter] = root.clone()
	}
	for _, path := range workspacePaths {
		if path == "" {
			path = domain.RootImporter
		}
		if project, ok := l.Importers[path]; ok {
			importers[path] = project.clone()
		}
	}

	pruned := make(map[string]PackageSnapshot, len(packages))
	for _, key := range packages {
		entry, ok := l.Packages[key]
		if !ok {
			return nil, zerr.With(domain.ErrMissingPackage, "key", key)
		}
		pruned[key] = entry.clone()
	}

	for _, path := range domain.SortedKeys(importers) {
		if err := l.addInjected(path, importers[path], pruned); err != nil {
			return nil, err
		}
	}

	out := &Lockfile{
		LockfileVersion:           l.LockfileVersion,
		NeverBuiltDependencies:    slices.Clone(l.NeverBuiltDependencies),
		OnlyBuiltDependencies:     slices.Clone(l.OnlyBuiltDependencies),
		Overrides:                 maps.Clone(l.Overrides),
		PackageExtensionsChecksum: l.PackageExtensionsChecksum,
		PatchedDependencies:       l.prunePatches(pruned),
		Importers:                 importers,
		Other:                     cloneAnyMap(l.Other),
	}
	if len(pruned) > 0 {
		out.Packages = pruned
	}
	return out, nil
}

func (l *Lockfile) addInjected(path string, project ProjectSnapshot, pruned map[string]PackageSnapshot) error {
	for _, name := range domain.SortedKeys(project.DependenciesMeta) {
		if !project.DependenciesMeta[name].IsInjected() {
			continue
		}
		_, version, ok := project.Dependencies.FindResolution(name)
		if !ok {
			err := zerr.With(domain.ErrUnresolvedInjectedDependency, "workspace", path)
			return zerr.With(err, "dependency", name)
		}

		key := version
		if _, found := l.Packages[key]; !found {
			key = l.formatKey(name, version)
		}
		entry, found := l.Packages[key]
		if !found {
			err := zerr.With(domain.ErrMissingPackage, "key", version)
			return zerr.With(err, "workspace", path)
		}
		pruned[key] = entry.clone()
	}
	return nil
}

// prunePatches keeps the patches whose hash matches the patch hash of a kept key.
func (l *Lockfile) prunePatches(pruned map[string]PackageSnapshot) map[string]PatchFile {
	if len(l.PatchedDependencies) == 0 {
		return nil
	}

	patches := make(map[string]PatchFile)
	for key := range pruned {
		dp, err := ParseDepPath(key)
		if err != nil {
			continue
		}
		patchKey := dp.Name + "@" + dp.Version
		patch, ok := l.PatchedDependencies[patchKey]
		if !ok || patch.Hash != dp.PatchHash() {
			continue
		}
		patches[patchKey] = patch
	}
	if len(patches) == 0 {
		return nil
	}
	return patches
}
