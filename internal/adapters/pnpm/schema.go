package pnpm

import (
	"maps"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PatchFile is an entry of patchedDependencies.
type PatchFile struct {
	Path string `yaml:"path"`
	Hash string `yaml:"hash"`
}

// ProjectSnapshot is the lockfile entry of a single workspace.
type ProjectSnapshot struct {
	Dependencies     DependencyInfo
	DependenciesMeta map[string]DependenciesMeta
	PublishDirectory string
	Other            map[string]any
}

// DependenciesMeta carries per-dependency settings of a workspace.
type DependenciesMeta struct {
	Injected *bool          `yaml:"injected,omitempty"`
	Node     string         `yaml:"node,omitempty"`
	Patch    string         `yaml:"patch,omitempty"`
	Other    map[string]any `yaml:",inline"`
}

// DependencyInfo is the generation specific shape of a workspace's dependencies.
// It is either LegacyDependencies or ModernDependencies.
type DependencyInfo interface {
	// FindResolution returns the recorded specifier and resolved version of a
	// declared dependency, searching regular, dev and optional dependencies in order.
	FindResolution(name string) (specifier, version string, ok bool)
	clone() DependencyInfo
}

// LegacyDependencies stores specifiers separately from the resolved versions.
type LegacyDependencies struct {
	Specifiers           map[string]string
	Dependencies         map[string]string
	OptionalDependencies map[string]string
	DevDependencies      map[string]string
}

// FindResolution implements DependencyInfo.
func (d *LegacyDependencies) FindResolution(name string) (string, string, bool) {
	specifier, ok := d.Specifiers[name]
	if !ok {
		return "", "", false
	}
	for _, deps := range []map[string]string{d.Dependencies, d.DevDependencies, d.OptionalDependencies} {
		if version, found := deps[name]; found {
			return specifier, version, true
		}
	}
	return "", "", false
}

func (d *LegacyDependencies) clone() DependencyInfo {
	return &LegacyDependencies{
		Specifiers:           maps.Clone(d.Specifiers),
		Dependencies:         maps.Clone(d.Dependencies),
		OptionalDependencies: maps.Clone(d.OptionalDependencies),
		DevDependencies:      maps.Clone(d.DevDependencies),
	}
}

// Dependency pairs a specifier with the version it resolved to.
type Dependency struct {
	Specifier string `yaml:"specifier"`
	Version   string `yaml:"version"`
}

// ModernDependencies stores specifier and version side by side.
type ModernDependencies struct {
	Dependencies         map[string]Dependency
	OptionalDependencies map[string]Dependency
	DevDependencies      map[string]Dependency
}

// FindResolution implements DependencyInfo.
func (d *ModernDependencies) FindResolution(name string) (string, string, bool) {
	for _, deps := range []map[string]Dependency{d.Dependencies, d.DevDependencies, d.OptionalDependencies} {
		if dep, found := deps[name]; found {
			return dep.Specifier, dep.Version, true
		}
	}
	return "", "", false
}

func (d *ModernDependencies) clone() DependencyInfo {
	return &ModernDependencies{
		Dependencies:         maps.Clone(d.Dependencies),
		OptionalDependencies: maps.Clone(d.OptionalDependencies),
		DevDependencies:      maps.Clone(d.DevDependencies),
	}
}

type legacyProject struct {
	Specifiers           map[string]string           `yaml:"specifiers"`
	Dependencies         map[string]string           `yaml:"dependencies,omitempty"`
	OptionalDependencies map[string]string           `yaml:"optionalDependencies,omitempty"`
	DevDependencies      map[string]string           `yaml:"devDependencies,omitempty"`
	DependenciesMeta     map[string]DependenciesMeta `yaml:"dependenciesMeta,omitempty"`
	PublishDirectory     string                      `yaml:"publishDirectory,omitempty"`
	Other                map[string]any              `yaml:",inline"`
}

type modernProject struct {
	Dependencies         map[string]Dependency       `yaml:"dependencies,omitempty"`
	OptionalDependencies map[string]Dependency       `yaml:"optionalDependencies,omitempty"`
	DevDependencies      map[string]Dependency       `yaml:"devDependencies,omitempty"`
	DependenciesMeta     map[string]DependenciesMeta `yaml:"dependenciesMeta,omitempty"`
	PublishDirectory     string                      `yaml:"publishDirectory,omitempty"`
	Other                map[string]any              `yaml:",inline"`
}

func decodeProject(node *yaml.Node, format VersionFormat) (ProjectSnapshot, error) {
	switch format {
	case VersionFormatFloat:
		var p legacyProject
		if err := node.Decode(&p); err != nil {
			return ProjectSnapshot{}, err
		}
		if p.Specifiers == nil {
			p.Specifiers = map[string]string{}
		}
		return ProjectSnapshot{
			Dependencies: &LegacyDependencies{
				Specifiers:           p.Specifiers,
				Dependencies:         nilIfEmpty(p.Dependencies),
				OptionalDependencies: nilIfEmpty(p.OptionalDependencies),
				DevDependencies:      nilIfEmpty(p.DevDependencies),
			},
			DependenciesMeta: nilIfEmpty(p.DependenciesMeta),
			PublishDirectory: p.PublishDirectory,
			Other:            p.Other,
		}, nil
	case VersionFormatString:
		var p modernProject
		if err := node.Decode(&p); err != nil {
			return ProjectSnapshot{}, err
		}
		return ProjectSnapshot{
			Dependencies: &ModernDependencies{
				Dependencies:         nilIfEmpty(p.Dependencies),
				OptionalDependencies: nilIfEmpty(p.OptionalDependencies),
				DevDependencies:      nilIfEmpty(p.DevDependencies),
			},
			DependenciesMeta: nilIfEmpty(p.DependenciesMeta),
			PublishDirectory: p.PublishDirectory,
			Other:            p.Other,
		}, nil
	default:
		return ProjectSnapshot{}, zerr.With(domain.ErrUnsupportedLockfileVersion, "format", format.String())
	}
}

// MarshalYAML implements yaml.Marshaler.
func (p ProjectSnapshot) MarshalYAML() (any, error) {
	switch deps := p.Dependencies.(type) {
	case *LegacyDependencies:
		return legacyProject{
			Specifiers:           deps.Specifiers,
			Dependencies:         deps.Dependencies,
			OptionalDependencies: deps.OptionalDependencies,
			DevDependencies:      deps.DevDependencies,
			DependenciesMeta:     p.DependenciesMeta,
			PublishDirectory:     p.PublishDirectory,
			Other:                p.Other,
		}, nil
	case *ModernDependencies:
		return modernProject{
			Dependencies:         deps.Dependencies,
			OptionalDependencies: deps.OptionalDependencies,
			DevDependencies:      deps.DevDependencies,
			DependenciesMeta:     p.DependenciesMeta,
			PublishDirectory:     p.PublishDirectory,
			Other:                p.Other,
		}, nil
	default:
		return nil, zerr.With(domain.ErrLockfileEncodeFailed, "reason", "workspace without dependency information")
	}
}

func (p ProjectSnapshot) clone() ProjectSnapshot {
	out := ProjectSnapshot{
		PublishDirectory: p.PublishDirectory,
		Other:            cloneAnyMap(p.Other),
	}
	if p.Dependencies != nil {
		out.Dependencies = p.Dependencies.clone()
	}
	if p.DependenciesMeta != nil {
		out.DependenciesMeta = make(map[string]DependenciesMeta, len(p.DependenciesMeta))
		for name, meta := range p.DependenciesMeta {
			out.DependenciesMeta[name] = meta.clone()
		}
	}
	return out
}

// IsInjected reports whether the dependency is copied into the workspace
// rather than symlinked.
func (m DependenciesMeta) IsInjected() bool {
	return m.Injected != nil && *m.Injected
}

func (m DependenciesMeta) clone() DependenciesMeta {
	out := DependenciesMeta{Node: m.Node, Patch: m.Patch, Other: cloneAnyMap(m.Other)}
	if m.Injected != nil {
		injected := *m.Injected
		out.Injected = &injected
	}
	return out
}

// PackageResolution records where a package came from. It is opaque to the resolver.
type PackageResolution struct {
	Type      string         `yaml:"type,omitempty"`
	Integrity string         `yaml:"integrity,omitempty"`
	Tarball   string         `yaml:"tarball,omitempty"`
	Dir       string         `yaml:"dir,omitempty"`
	Repo      string         `yaml:"repo,omitempty"`
	Commit    string         `yaml:"commit,omitempty"`
	Other     map[string]any `yaml:",inline"`
}

// PackageSnapshot is an entry of the packages section.
type PackageSnapshot struct {
	Resolution           PackageResolution `yaml:"resolution"`
	ID                   string            `yaml:"id,omitempty"`
	Name                 string            `yaml:"name,omitempty"`
	Version              string            `yaml:"version,omitempty"`
	Dependencies         map[string]string `yaml:"dependencies,omitempty"`
	OptionalDependencies map[string]string `yaml:"optionalDependencies,omitempty"`
	Patched              *bool             `yaml:"patched,omitempty"`
	Other                map[string]any    `yaml:",inline"`
}

func (p PackageSnapshot) clone() PackageSnapshot {
	out := p
	out.Resolution.Other = cloneAnyMap(p.Resolution.Other)
	out.Dependencies = maps.Clone(p.Dependencies)
	out.OptionalDependencies = maps.Clone(p.OptionalDependencies)
	out.Other = cloneAnyMap(p.Other)
	if p.Patched != nil {
		patched := *p.Patched
		out.Patched = &patched
	}
	return out
}

func nilIfEmpty[M ~map[K]V, K comparable, V any](m M) M {
	if len(m) == 0 {
		return nil
	}
	return m
}

func nilIfEmptySlice[S ~[]E, E any](s S) S {
	if len(s) == 0 {
		return nil
	}
	return s
}
