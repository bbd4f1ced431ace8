// Package closure computes the lockfile packages a set of workspaces needs.
package closure

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options controls which declared dependencies seed the closure.
type Options struct {
	// Production skips devDependencies.
	Production bool
}

// Engine walks lockfile dependency edges for many workspaces in parallel.
type Engine struct {
	logger ports.Logger
	tracer ports.Tracer
}

// New creates a new Engine.
func New(logger ports.Logger, tracer ports.Tracer) *Engine {
	return &Engine{logger: logger, tracer: tracer}
}

// Closure returns the sorted union of the lockfile keys reachable from each
// workspace's declared dependencies. Workspaces are processed concurrently
// against the shared, read-only lockfile.
func (e *Engine) Closure(
	ctx context.Context,
	lockfile ports.Lockfile,
	workspaces []domain.Workspace,
	opts Options,
) ([]string, error) {
	ctx, span := e.tracer.Start(ctx, "Computing closure",
		ports.WithAttribute("pnprune.workspaces", len(workspaces)),
		ports.WithAttribute("pnprune.production", opts.Production),
	)
	defer span.End()

	union := mapset.NewSet[string]()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range workspaces {
		ws := &workspaces[i]
		g.Go(func() error {
			keys, err := e.workspaceClosure(gctx, lockfile, ws, opts)
			if err != nil {
				return err
			}
			union.Append(keys.ToSlice()...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrClosureFailed.Error())
	}

	keys := union.ToSlice()
	slices.Sort(keys)
	span.SetAttribute("pnprune.packages", len(keys))
	return keys, nil
}

func (e *Engine) workspaceClosure(
	ctx context.Context,
	lockfile ports.Lockfile,
	ws *domain.Workspace,
	opts Options,
) (mapset.Set[string], error) {
	ctx, span := e.tracer.Start(ctx, ws.Path, ports.WithAttribute("pnprune.workspace", ws.Name))
	defer span.End()

	queue, err := e.directPackages(lockfile, ws, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	keys := mapset.NewThreadUnsafeSet[string]()
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pkg := queue[0]
		queue = queue[1:]
		if !keys.Add(pkg.Key) {
			continue
		}

		deps, ok := lockfile.AllDependencies(pkg.Key)
		if !ok {
			continue
		}
		for _, name := range domain.SortedKeys(deps) {
			dep := lockfile.LookupPackage(name, deps[name])
			if !dep.Found {
				e.logger.Debug(fmt.Sprintf("%s: %s@%s required by %s is not in the lockfile", ws.Path, name, deps[name], pkg.Key))
				continue
			}
			if !keys.Contains(dep.Key) {
				queue = append(queue, dep)
			}
		}
	}

	span.SetAttribute("pnprune.packages", keys.Cardinality())
	return keys, nil
}

// directPackages resolves the workspace's declared dependencies. Local
// protocols are workspace links and never lockfile packages.
func (e *Engine) directPackages(lockfile ports.Lockfile, ws *domain.Workspace, opts Options) ([]domain.Package, error) {
	deps := ws.ExternalDependencies(opts.Production)

	var direct []domain.Package
	for _, name := range domain.SortedKeys(deps) {
		specifier := deps[name]
		if domain.IsLocalSpecifier(specifier) {
			continue
		}

		pkg, err := lockfile.ResolvePackage(ws.Path, name, specifier)
		if err != nil {
			return nil, err
		}
		if !pkg.Found {
			e.logger.Debug(fmt.Sprintf("%s: %s@%s is not in the lockfile", ws.Path, name, specifier))
			continue
		}
		direct = append(direct, pkg)
	}
	return direct, nil
}
