package pnpm

import (
	"go.trai.ch/pnprune/internal/core/domain"
)

// ResolvePackage finds the locked package a workspace gets for name@specifier.
// A specifier that is already a package key resolves to itself. An unknown
// workspace is an error; an undeclared or unlocked dependency is not.
func (l *Lockfile) ResolvePackage(workspacePath, name, specifier string) (domain.Package, error) {
	if _, ok := l.Packages[specifier]; ok {
		version, ok := l.extractVersion(specifier)
		if !ok {
			return domain.NotFound, nil
		}
		return domain.Package{Key: specifier, Version: version, Found: true}, nil
	}

	resolved, ok, err := l.resolveSpecifier(workspacePath, name, specifier)
	if err != nil || !ok {
		return domain.NotFound, err
	}

	key := l.formatKey(name, resolved)
	if entry, found := l.Packages[key]; found {
		version := entry.Version
		if version == "" {
			version = resolved
		}
		return domain.Package{Key: key, Version: version, Found: true}, nil
	}

	// Non-registry packages and aliases record the full key as their version.
	if entry, found := l.Packages[resolved]; found {
		version := entry.Version
		if version == "" {
			if version, ok = l.extractVersion(resolved); !ok {
				return domain.NotFound, nil
			}
		}
		return domain.Package{Key: resolved, Version: version, Found: true}, nil
	}

	return domain.NotFound, nil
}

// LookupPackage finds the package a snapshot's dependency map points at. The
// recorded version is either a full key (aliases, non-registry packages) or a
// version that forms a registry key together with name.
func (l *Lockfile) LookupPackage(name, version string) domain.Package {
	key := version
	entry, ok := l.Packages[key]
	if !ok {
		key = l.formatKey(name, version)
		if entry, ok = l.Packages[key]; !ok {
			return domain.NotFound
		}
	}

	if entry.Version != "" {
		return domain.Package{Key: key, Version: entry.Version, Found: true}
	}
	extracted, ok := l.extractVersion(key)
	if !ok {
		return domain.NotFound
	}
	return domain.Package{Key: key, Version: extracted, Found: true}
}

// resolveSpecifier returns the version recorded for name in the workspace,
// honouring overrides.
func (l *Lockfile) resolveSpecifier(workspacePath, name, specifier string) (string, bool, error) {
	project, err := l.Workspace(workspacePath)
	if err != nil {
		return "", false, err
	}

	recordedSpecifier, recordedVersion, ok := project.Dependencies.FindResolution(name)
	if !ok {
		return "", false, nil
	}

	effective := specifier
	if override, found := l.Overrides[name]; found {
		effective = override
	}

	if effective == recordedSpecifier {
		return recordedVersion, true, nil
	}
	if _, found := l.Packages[l.formatKey(name, effective)]; found {
		return effective, true, nil
	}
	return "", false, nil
}
