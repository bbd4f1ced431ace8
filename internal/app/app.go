// Package app implements the application layer for pnprune.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel"
	"go.trai.ch/pnprune/internal/adapters/linear"
	"go.trai.ch/pnprune/internal/adapters/telemetry"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/pnprune/internal/engine/closure"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader ports.WorkspaceLoader
	reader ports.LockfileReader
	hasher ports.Hasher
	cache  ports.ClosureCache
	output ports.OutputWriter
	logger ports.Logger

	cwd     string
	verbose bool
	stderr  io.Writer
}

// New creates a new App instance.
func New(
	loader ports.WorkspaceLoader,
	reader ports.LockfileReader,
	hasher ports.Hasher,
	cache ports.ClosureCache,
	output ports.OutputWriter,
	log ports.Logger,
) *App {
	return &App{
		loader: loader,
		reader: reader,
		hasher: hasher,
		cache:  cache,
		output: output,
		logger: log,
		stderr: os.Stderr,
	}
}

// WithStderr sets the writer step progress is reported to.
// This is primarily used for testing.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// Options holds the global CLI settings.
type Options struct {
	// Cwd is the directory the workspace root is discovered from. Empty means the process cwd.
	Cwd string
	// JSON switches logs to JSON lines.
	JSON bool
	// Verbose enables debug logs and step progress.
	Verbose bool
}

type configurableLogger interface {
	SetJSON(enabled bool)
	SetVerbose(enabled bool)
}

// Configure applies the global options.
func (a *App) Configure(opts Options) {
	a.cwd = opts.Cwd
	a.verbose = opts.Verbose
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetJSON(opts.JSON)
		l.SetVerbose(opts.Verbose)
	}
}

// PruneOptions configuration for the Prune method.
// Boolean flags combine with pnprune.yaml: either source can enable them.
type PruneOptions struct {
	OutDir     string
	Docker     bool
	Production bool
	NoCache    bool
}

// PruneResult summarizes a completed prune.
type PruneResult struct {
	OutDir       string
	Workspaces   []string
	Packages     int
	LockfileSize int64
	CacheHit     bool
}

// Prune writes the subset of the monorepo the requested workspaces need to the output directory.
//
//nolint:cyclop,funlen // orchestration function
func (a *App) Prune(ctx context.Context, requested []string, opts PruneOptions) (*PruneResult, error) {
	if len(requested) == 0 {
		return nil, domain.ErrNoWorkspacesSpecified
	}

	// 1. Load the workspace graph and settings
	s, err := a.load()
	if err != nil {
		return nil, err
	}
	opts = mergeSettings(opts, s.settings)

	layout, err := outputLayout(s.root, opts)
	if err != nil {
		return nil, err
	}

	// 2. Expand the requested workspaces to their internal closure
	selected, err := s.graph.Closure(append([]string{domain.RootImporter}, requested...)...)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to select workspaces")
	}
	paths := make([]string, 0, len(selected))
	for i := range selected {
		paths = append(paths, selected[i].Path)
	}

	// 3. Initialize telemetry
	tracer, shutdown := a.newTracer()
	defer shutdown(ctx)

	ctx, span := tracer.Start(ctx, "prune",
		ports.WithAttribute("pnprune.docker", opts.Docker),
		ports.WithAttribute("pnprune.production", opts.Production),
	)
	defer span.End()
	tracer.EmitPlan(ctx, paths)

	// 4. Read the lockfile
	lockfile, data, err := a.reader.Read(filepath.Join(s.root, s.lockfileName()))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 5. Compute or restore the package closure
	packages, hit, err := a.packageClosure(ctx, tracer, s.root, lockfile, data, selected, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 6. Restrict the lockfile
	pruned, err := lockfile.Subgraph(paths, packages)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to prune lockfile")
	}

	// 7. Write the output tree
	size, err := a.output.WriteLockfile(layout, pruned)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := a.output.WriteWorkspaces(layout, selected); err != nil {
		span.RecordError(err)
		return nil, err
	}

	files := existingFiles(s.root, domain.ManifestFileName, domain.WorkspaceFileName)
	files = append(files, pruned.Patches()...)
	if err := a.output.CopyFiles(layout, files); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("pnprune.packages", len(packages))
	a.logger.Info(fmt.Sprintf("pruned %d workspace(s) and %d package(s) into %s (lockfile %s)",
		len(paths), len(packages), layout.OutDir, humanize.Bytes(uint64(size)))) //nolint:gosec // size is non-negative

	return &PruneResult{
		OutDir:       layout.OutDir,
		Workspaces:   paths,
		Packages:     len(packages),
		LockfileSize: size,
		CacheHit:     hit,
	}, nil
}

// manifestDigests hashes the package.json of every selected workspace, keyed by
// workspace path. A missing manifest hashes to the empty string.
func (a *App) manifestDigests(root string, selected []domain.Workspace) (map[string]string, error) {
	digests := make(map[string]string, len(selected))
	for i := range selected {
		path := filepath.Join(root, filepath.FromSlash(selected[i].Path), domain.ManifestFileName)
		digest, err := a.hasher.HashFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		digests[selected[i].Path] = digest
	}
	return digests, nil
}

// packageClosure returns the lockfile keys the selected workspaces need.
// Records are looked up and stored in the closure cache unless NoCache is set.
func (a *App) packageClosure(
	ctx context.Context,
	tracer ports.Tracer,
	root string,
	lockfile ports.Lockfile,
	data []byte,
	selected []domain.Workspace,
	opts PruneOptions,
) ([]string, bool, error) {
	paths := make([]string, 0, len(selected))
	for i := range selected {
		paths = append(paths, selected[i].Path)
	}

	var key, digest string
	var manifests map[string]string
	if !opts.NoCache {
		digest = a.hasher.HashBytes(data)

		var err error
		manifests, err = a.manifestDigests(root, selected)
		if err != nil {
			return nil, false, err
		}

		key, err = a.cache.Key(digest, manifests, opts.Production)
		if err != nil {
			return nil, false, err
		}

		record, err := a.cache.Get(root, key)
		if err != nil {
			return nil, false, err
		}
		if record != nil {
			a.logger.Debug(fmt.Sprintf("closure cache hit (%s)", key))
			return record.Packages, true, nil
		}
	}

	engine := closure.New(a.logger, tracer)
	packages, err := engine.Closure(ctx, lockfile, selected, closure.Options{Production: opts.Production})
	if err != nil {
		return nil, false, err
	}

	if !opts.NoCache {
		record := domain.ClosureRecord{
			Key:            key,
			LockfileDigest: digest,
			Workspaces:     paths,
			Manifests:      manifests,
			Production:     opts.Production,
			Packages:       packages,
		}
		if err := a.cache.Put(root, record); err != nil {
			a.logger.Warn(fmt.Sprintf("could not store closure cache: %v", err))
		}
	}

	return packages, false, nil
}

// Resolve returns the locked package a workspace gets for name@specifier.
// The workspace may be given as a package name or a relative path.
func (a *App) Resolve(_ context.Context, workspace, name, specifier string) (domain.Package, error) {
	s, err := a.load()
	if err != nil {
		return domain.NotFound, err
	}

	lockfile, _, err := a.reader.Read(filepath.Join(s.root, s.lockfileName()))
	if err != nil {
		return domain.NotFound, err
	}

	path := workspace
	if ws, ok := s.graph.Lookup(workspace); ok {
		path = ws.Path
	}

	return lockfile.ResolvePackage(path, name, specifier)
}

// Deps returns the regular and optional dependencies of a locked package.
func (a *App) Deps(_ context.Context, key string) (map[string]string, error) {
	lockfile, err := a.readLockfile()
	if err != nil {
		return nil, err
	}

	deps, ok := lockfile.AllDependencies(key)
	if !ok {
		return nil, zerr.With(domain.ErrMissingPackage, "key", key)
	}
	return deps, nil
}

// Patches returns the patch files the lockfile references.
func (a *App) Patches(_ context.Context) ([]string, error) {
	lockfile, err := a.readLockfile()
	if err != nil {
		return nil, err
	}
	return lockfile.Patches(), nil
}

// Diff reports whether the lockfile at otherPath differs from the workspace
// lockfile in a setting that affects every workspace.
func (a *App) Diff(_ context.Context, otherPath string) (bool, error) {
	lockfile, err := a.readLockfile()
	if err != nil {
		return false, err
	}

	if !filepath.IsAbs(otherPath) {
		otherPath = filepath.Join(a.workingDir(), otherPath)
	}
	other, _, err := a.reader.Read(otherPath)
	if err != nil {
		return false, err
	}

	return lockfile.GlobalChange(other), nil
}

// session is the state every command loads from the workspace root.
type session struct {
	root     string
	graph    *domain.WorkspaceGraph
	settings ports.Settings
}

func (s *session) lockfileName() string {
	if s.settings.Lockfile != "" {
		return filepath.FromSlash(s.settings.Lockfile)
	}
	return domain.LockfileName
}

func (a *App) load() (*session, error) {
	root, err := a.loader.DiscoverRoot(a.workingDir())
	if err != nil {
		return nil, err
	}

	graph, err := a.loader.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load workspaces")
	}

	settings, err := a.loader.LoadSettings(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	return &session{root: root, graph: graph, settings: settings}, nil
}

func (a *App) readLockfile() (ports.Lockfile, error) {
	s, err := a.load()
	if err != nil {
		return nil, err
	}
	lockfile, _, err := a.reader.Read(filepath.Join(s.root, s.lockfileName()))
	return lockfile, err
}

func (a *App) workingDir() string {
	if a.cwd != "" {
		if abs, err := filepath.Abs(a.cwd); err == nil {
			return abs
		}
		return a.cwd
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// newTracer returns a tracer reporting step progress when verbose output is on.
func (a *App) newTracer() (ports.Tracer, func(context.Context)) {
	if !a.verbose {
		return telemetry.NewNoOpTracer(), func(context.Context) {}
	}

	tracer := telemetry.NewOTelTracer("pnprune", linear.NewReporter(a.stderr))
	otel.SetTracerProvider(tracer.Provider())
	return tracer, func(ctx context.Context) {
		_ = tracer.Shutdown(ctx)
	}
}

func mergeSettings(opts PruneOptions, settings ports.Settings) PruneOptions {
	if opts.OutDir == "" {
		opts.OutDir = settings.OutDir
	}
	if opts.OutDir == "" {
		opts.OutDir = domain.DefaultOutDir
	}
	opts.Docker = opts.Docker || settings.Docker
	opts.Production = opts.Production || settings.Production
	opts.NoCache = opts.NoCache || settings.NoCache
	return opts
}

// outputLayout resolves the output directory against the workspace root.
func outputLayout(root string, opts PruneOptions) (ports.OutputLayout, error) {
	outDir := filepath.FromSlash(opts.OutDir)
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}
	outDir = filepath.Clean(outDir)

	if outDir == filepath.Clean(root) {
		return ports.OutputLayout{}, zerr.With(domain.ErrInvalidOutDir, "out_dir", outDir)
	}

	return ports.OutputLayout{Root: root, OutDir: outDir, Docker: opts.Docker}, nil
}

// existingFiles returns the root-relative names that exist below root.
func existingFiles(root string, names ...string) []string {
	return slices.DeleteFunc(slices.Clone(names), func(name string) bool {
		_, err := os.Stat(filepath.Join(root, name))
		return err != nil
	})
}
