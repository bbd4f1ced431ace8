package domain

import "path/filepath"

const (
	// LockfileName is the name of the pnpm lockfile.
	LockfileName = "pnpm-lock.yaml"

	// WorkspaceFileName is the name of the pnpm workspace manifest.
	WorkspaceFileName = "pnpm-workspace.yaml"

	// ManifestFileName is the name of a workspace package manifest.
	ManifestFileName = "package.json"

	// ConfigFileName is the name of the optional pnprune configuration file.
	ConfigFileName = "pnprune.yaml"

	// RootImporter is the importer key pnpm uses for the workspace root.
	RootImporter = "."

	// PnpruneDirName is the name of the internal metadata directory.
	PnpruneDirName = ".pnprune"

	// CacheDirName is the name of the closure cache directory.
	CacheDirName = "cache"

	// DefaultOutDir is the default directory pruned output is written to.
	DefaultOutDir = "out"

	// DockerJSONDir holds manifests and the lockfile for the dependency-install layer.
	DockerJSONDir = "json"

	// DockerFullDir holds complete workspace sources.
	DockerFullDir = "full"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the closure cache directory relative to the workspace root.
// It joins .pnprune and cache.
func DefaultCachePath() string {
	return filepath.Join(PnpruneDirName, CacheDirName)
}
