package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingWorkspace is returned when a workspace path has no importer entry in the lockfile.
	ErrMissingWorkspace = zerr.New("workspace not found in lockfile")

	// ErrMissingPackage is returned when a requested package key is absent from the lockfile.
	ErrMissingPackage = zerr.New("package not found in lockfile")

	// ErrUnresolvedInjectedDependency is returned when an injected dependency cannot be
	// resolved through the declaring workspace's own dependency maps.
	ErrUnresolvedInjectedDependency = zerr.New("injected dependency has no resolution in its workspace")

	// ErrInvalidDependencyKey is returned when a dependency key does not follow the key grammar.
	ErrInvalidDependencyKey = zerr.New("invalid dependency key")

	// ErrLockfileParseFailed is returned when the lockfile cannot be decoded.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrUnsupportedLockfileVersion is returned when lockfileVersion is neither a string nor a number.
	ErrUnsupportedLockfileVersion = zerr.New("unsupported lockfileVersion")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read from disk.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileEncodeFailed is returned when the lockfile cannot be serialized.
	ErrLockfileEncodeFailed = zerr.New("failed to encode lockfile")

	// ErrWorkspaceRootNotFound is returned when no pnpm-workspace.yaml or pnpm-lock.yaml is found.
	ErrWorkspaceRootNotFound = zerr.New("could not find pnpm-workspace.yaml or pnpm-lock.yaml")

	// ErrWorkspaceNotFound is returned when a requested workspace does not exist.
	ErrWorkspaceNotFound = zerr.New("workspace not found")

	// ErrDuplicateWorkspaceName is returned when two workspaces share the same package name.
	ErrDuplicateWorkspaceName = zerr.New("duplicate workspace name")

	// ErrWorkspaceAlreadyExists is returned when a workspace is added to the graph twice.
	ErrWorkspaceAlreadyExists = zerr.New("workspace already exists")

	// ErrNoWorkspacesSpecified is returned when prune is invoked without any workspace.
	ErrNoWorkspacesSpecified = zerr.New("no workspaces specified")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrManifestReadFailed is returned when a package.json cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package.json")

	// ErrManifestParseFailed is returned when a package.json cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package.json")

	// ErrCacheReadFailed is returned when a closure record cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read closure cache")

	// ErrCacheUnmarshalFailed is returned when a closure record cannot be unmarshaled.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal closure cache")

	// ErrCacheMarshalFailed is returned when a closure record cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal closure cache")

	// ErrCacheWriteFailed is returned when a closure record cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write closure cache")

	// ErrOutputWriteFailed is returned when a pruned artifact cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrInvalidOutDir is returned when the output directory would overwrite the workspace root.
	ErrInvalidOutDir = zerr.New("output directory must differ from the workspace root")

	// ErrClosureFailed is returned when computing the package closure of a workspace fails.
	ErrClosureFailed = zerr.New("failed to compute package closure")
)
