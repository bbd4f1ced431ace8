// Package domain contains the core domain models for workspaces and lockfile resolution.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// WorkspaceGraph is the set of workspaces in a monorepo keyed by package name.
type WorkspaceGraph struct {
	root       string
	workspaces map[string]Workspace
	byPath     map[string]string
}

// NewWorkspaceGraph creates a new empty WorkspaceGraph.
func NewWorkspaceGraph() *WorkspaceGraph {
	return &WorkspaceGraph{
		workspaces: make(map[string]Workspace),
		byPath:     make(map[string]string),
	}
}

// SetRoot sets the absolute directory of the monorepo root.
func (g *WorkspaceGraph) SetRoot(root string) {
	g.root = root
}

// Root returns the absolute directory of the monorepo root.
func (g *WorkspaceGraph) Root() string {
	return g.root
}

// AddWorkspace adds a workspace to the graph.
// It returns an error if a workspace with the same name already exists.
func (g *WorkspaceGraph) AddWorkspace(w *Workspace) error {
	if existing, exists := g.workspaces[w.Name]; exists {
		err := zerr.With(ErrWorkspaceAlreadyExists, "workspace_name", w.Name)
		err = zerr.With(err, "first_occurrence", existing.Path)
		return zerr.With(err, "duplicate_at", w.Path)
	}
	g.workspaces[w.Name] = *w
	g.byPath[w.Path] = w.Name
	return nil
}

// Workspace returns the workspace with the given package name.
func (g *WorkspaceGraph) Workspace(name string) (Workspace, bool) {
	w, ok := g.workspaces[name]
	return w, ok
}

// Lookup returns the workspace matching either a package name or a relative path.
func (g *WorkspaceGraph) Lookup(nameOrPath string) (Workspace, bool) {
	if w, ok := g.workspaces[nameOrPath]; ok {
		return w, true
	}
	if name, ok := g.byPath[nameOrPath]; ok {
		return g.workspaces[name], true
	}
	return Workspace{}, false
}

// Len returns the number of workspaces in the graph.
func (g *WorkspaceGraph) Len() int {
	return len(g.workspaces)
}

// InternalDependencies returns the names of workspaces the given workspace depends on,
// sorted by name. A dependency whose range the workspace of that name does not
// satisfy is installed from the registry and is not internal.
func (g *WorkspaceGraph) InternalDependencies(w *Workspace) []string {
	var deps []string
	for name, specifier := range w.ExternalDependencies(false) {
		if name == w.Name {
			continue
		}
		if dep, ok := g.workspaces[name]; ok && dep.Satisfies(specifier) {
			deps = append(deps, name)
		}
	}
	slices.Sort(deps)
	return deps
}

// Closure returns the requested workspaces together with every workspace they
// transitively depend on, sorted by path. Each entry may be a name or a path.
func (g *WorkspaceGraph) Closure(requested ...string) ([]Workspace, error) {
	visited := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		w := g.workspaces[name]
		for _, dep := range g.InternalDependencies(&w) {
			visit(dep)
		}
	}

	for _, r := range requested {
		w, ok := g.Lookup(r)
		if !ok {
			return nil, zerr.With(ErrWorkspaceNotFound, "workspace", r)
		}
		visit(w.Name)
	}

	result := make([]Workspace, 0, len(visited))
	for name := range visited {
		result = append(result, g.workspaces[name])
	}
	slices.SortFunc(result, func(a, b Workspace) int {
		return strings.Compare(a.Path, b.Path)
	})
	return result, nil
}

// Walk returns an iterator that yields workspaces sorted by path.
func (g *WorkspaceGraph) Walk() iter.Seq[Workspace] {
	return func(yield func(Workspace) bool) {
		for _, path := range SortedKeys(g.byPath) {
			if !yield(g.workspaces[g.byPath[path]]) {
				return
			}
		}
	}
}
