package pnpm

import (
	"bytes"
	"io"
	"maps"
	"slices"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

var _ ports.Lockfile = (*Lockfile)(nil)

// Lockfile is a decoded pnpm-lock.yaml. It is never mutated after decoding, so
// a single instance may be shared between goroutines.
type Lockfile struct {
	LockfileVersion           LockfileVersion
	NeverBuiltDependencies    []string
	OnlyBuiltDependencies     []string
	Overrides                 map[string]string
	PackageExtensionsChecksum string
	PatchedDependencies       map[string]PatchFile
	Importers                 map[string]ProjectSnapshot
	Packages                  map[string]PackageSnapshot
	Time                      map[string]string
	Other                     map[string]any
}

// document is the on-disk layout. Importers are decoded in a second pass since
// their shape depends on lockfileVersion.
type document[I any] struct {
	LockfileVersion           *LockfileVersion           `yaml:"lockfileVersion"`
	NeverBuiltDependencies    []string                   `yaml:"neverBuiltDependencies,omitempty"`
	OnlyBuiltDependencies     []string                   `yaml:"onlyBuiltDependencies,omitempty"`
	Overrides                 map[string]string          `yaml:"overrides,omitempty"`
	PackageExtensionsChecksum string                     `yaml:"packageExtensionsChecksum,omitempty"`
	PatchedDependencies       map[string]PatchFile       `yaml:"patchedDependencies,omitempty"`
	Importers                 map[string]I               `yaml:"importers"`
	Packages                  map[string]PackageSnapshot `yaml:"packages,omitempty"`
	Time                      map[string]string          `yaml:"time,omitempty"`
	Other                     map[string]any             `yaml:",inline"`
}

// DecodeLockfile parses the contents of a pnpm-lock.yaml.
func DecodeLockfile(data []byte) (*Lockfile, error) {
	var l Lockfile
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
	}
	if l.LockfileVersion.Version == "" {
		return nil, zerr.With(domain.ErrLockfileParseFailed, "reason", "missing lockfileVersion")
	}
	return &l, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Lockfile) UnmarshalYAML(node *yaml.Node) error {
	var raw document[yaml.Node]
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.LockfileVersion == nil {
		*l = Lockfile{}
		return nil
	}

	importers := make(map[string]ProjectSnapshot, len(raw.Importers))
	for path, importerNode := range raw.Importers {
		project, err := decodeProject(&importerNode, raw.LockfileVersion.Format)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to decode workspace"), "workspace", path)
		}
		importers[path] = project
	}

	packages := nilIfEmpty(raw.Packages)
	for key, pkg := range packages {
		pkg.Dependencies = nilIfEmpty(pkg.Dependencies)
		pkg.OptionalDependencies = nilIfEmpty(pkg.OptionalDependencies)
		packages[key] = pkg
	}

	// Empty sections are omitted on encode, so they decode as nil.
	*l = Lockfile{
		LockfileVersion:           *raw.LockfileVersion,
		NeverBuiltDependencies:    nilIfEmptySlice(raw.NeverBuiltDependencies),
		OnlyBuiltDependencies:     nilIfEmptySlice(raw.OnlyBuiltDependencies),
		Overrides:                 nilIfEmpty(raw.Overrides),
		PackageExtensionsChecksum: raw.PackageExtensionsChecksum,
		PatchedDependencies:       nilIfEmpty(raw.PatchedDependencies),
		Importers:                 importers,
		Packages:                  packages,
		Time:                      nilIfEmpty(raw.Time),
		Other:                     raw.Other,
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l *Lockfile) MarshalYAML() (any, error) {
	version := l.LockfileVersion
	return document[ProjectSnapshot]{
		LockfileVersion:           &version,
		NeverBuiltDependencies:    l.NeverBuiltDependencies,
		OnlyBuiltDependencies:     l.OnlyBuiltDependencies,
		Overrides:                 l.Overrides,
		PackageExtensionsChecksum: l.PackageExtensionsChecksum,
		PatchedDependencies:       l.PatchedDependencies,
		Importers:                 l.Importers,
		Packages:                  l.Packages,
		Time:                      l.Time,
		Other:                     l.Other,
	}, nil
}

// Encode writes the lockfile as YAML.
func (l *Lockfile) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(l); err != nil {
		return zerr.Wrap(err, domain.ErrLockfileEncodeFailed.Error())
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrLockfileEncodeFailed.Error())
	}
	return nil
}

// Bytes returns the encoded lockfile.
func (l *Lockfile) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AllDependencies returns the regular and optional dependencies of a package.
// A regular dependency wins over an optional one of the same name.
func (l *Lockfile) AllDependencies(key string) (map[string]string, bool) {
	entry, ok := l.Packages[key]
	if !ok {
		return nil, false
	}
	deps := make(map[string]string, len(entry.Dependencies)+len(entry.OptionalDependencies))
	maps.Copy(deps, entry.OptionalDependencies)
	maps.Copy(deps, entry.Dependencies)
	return deps, true
}

// Patches returns the patch files referenced by the lockfile, sorted.
func (l *Lockfile) Patches() []string {
	patches := make([]string, 0, len(l.PatchedDependencies))
	for _, patch := range l.PatchedDependencies {
		patches = append(patches, patch.Path)
	}
	slices.Sort(patches)
	return patches
}

// GlobalChange reports whether other differs in a field that affects every workspace.
func (l *Lockfile) GlobalChange(other ports.Lockfile) bool {
	o, ok := other.(*Lockfile)
	if !ok || o == nil {
		return true
	}
	return l.LockfileVersion != o.LockfileVersion ||
		l.PackageExtensionsChecksum != o.PackageExtensionsChecksum ||
		!maps.Equal(l.Overrides, o.Overrides) ||
		!maps.Equal(l.PatchedDependencies, o.PatchedDependencies) ||
		!slices.Equal(l.NeverBuiltDependencies, o.NeverBuiltDependencies) ||
		!slices.Equal(l.OnlyBuiltDependencies, o.OnlyBuiltDependencies)
}

// Workspace returns the snapshot of a workspace; "" is the root.
func (l *Lockfile) Workspace(path string) (ProjectSnapshot, error) {
	if path == "" {
		path = domain.RootImporter
	}
	project, ok := l.Importers[path]
	if !ok {
		return ProjectSnapshot{}, zerr.With(domain.ErrMissingWorkspace, "workspace", path)
	}
	return project, nil
}

func (l *Lockfile) formatKey(name, version string) string {
	if l.LockfileVersion.Modern() {
		return "/" + name + "@" + version
	}
	return "/" + name + "/" + version
}

// extractVersion returns the version of a key including its peer suffix.
func (l *Lockfile) extractVersion(key string) (string, bool) {
	dp, err := ParseDepPath(key)
	if err != nil {
		return "", false
	}
	if dp.PeerSuffix == "" {
		return dp.Version, true
	}
	if l.LockfileVersion.Modern() {
		return dp.Version + dp.PeerSuffix, true
	}
	return dp.Version + "_" + dp.PeerSuffix, true
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneAnyMap(val)
	case map[any]any:
		out := make(map[any]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
