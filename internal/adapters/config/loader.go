// Package config discovers the monorepo root and loads its workspaces.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// skippedDirs are never searched for workspaces.
var skippedDirs = map[string]bool{
	"node_modules":        true,
	".git":                true,
	domain.PnpruneDirName: true,
}

// Loader implements ports.WorkspaceLoader for pnpm workspaces.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd to the nearest directory holding
// pnpm-workspace.yaml. If there is none, the nearest directory holding
// pnpm-lock.yaml is used.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir := cwd
	var lockfileCandidate string

	for {
		if fileExists(filepath.Join(currentDir, domain.WorkspaceFileName)) {
			return currentDir, nil
		}

		if lockfileCandidate == "" && fileExists(filepath.Join(currentDir, domain.LockfileName)) {
			lockfileCandidate = currentDir
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if lockfileCandidate != "" {
		return lockfileCandidate, nil
	}

	return "", zerr.With(domain.ErrWorkspaceRootNotFound, "cwd", cwd)
}

// Load reads pnpm-workspace.yaml and the package.json of the root and of every
// matched directory below root.
func (l *Loader) Load(root string) (*domain.WorkspaceGraph, error) {
	g := domain.NewWorkspaceGraph()
	g.SetRoot(root)

	rootWorkspace, err := readManifest(root, domain.RootImporter)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		l.Logger.Warn(fmt.Sprintf("%s missing at workspace root", domain.ManifestFileName))
		rootWorkspace = &domain.Workspace{Path: domain.RootImporter}
	}
	if rootWorkspace.Name == "" {
		rootWorkspace.Name = domain.RootImporter
	}
	if err := g.AddWorkspace(rootWorkspace); err != nil {
		return nil, err
	}

	var workspaceFile WorkspaceFile
	workspaceFilePath := filepath.Join(root, domain.WorkspaceFileName)
	if fileExists(workspaceFilePath) {
		if err := readAndUnmarshalYAML(workspaceFilePath, &workspaceFile); err != nil {
			return nil, zerr.With(err, "file", domain.WorkspaceFileName)
		}
	}
	if len(workspaceFile.Packages) == 0 {
		return g, nil
	}

	matcher, err := newPatternMatcher(workspaceFile.Packages)
	if err != nil {
		return nil, err
	}

	dirs, err := l.matchWorkspaceDirs(root, matcher)
	if err != nil {
		return nil, err
	}

	workspaceNames := map[string]string{rootWorkspace.Name: domain.RootImporter}
	for _, dir := range dirs {
		if err := l.processWorkspace(g, root, dir, workspaceNames); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// LoadSettings reads pnprune.yaml from root. A missing file yields zero Settings.
func (l *Loader) LoadSettings(root string) (ports.Settings, error) {
	path := filepath.Join(root, domain.ConfigFileName)
	if !fileExists(path) {
		return ports.Settings{}, nil
	}

	var file SettingsFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return ports.Settings{}, zerr.With(err, "file", domain.ConfigFileName)
	}

	return ports.Settings{
		OutDir:     file.OutDir,
		Lockfile:   file.Lockfile,
		Docker:     file.Docker,
		Production: file.Production,
		NoCache:    file.Cache != nil && !*file.Cache,
	}, nil
}

// matchWorkspaceDirs returns the slash-separated relative directories matched
// by the workspace patterns, in lexical order.
func (l *Loader) matchWorkspaceDirs(root string, matcher *patternMatcher) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if matcher.Match(rel) {
			dirs = append(dirs, rel)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk workspace directories"), "root", root)
	}
	return dirs, nil
}

func (l *Loader) processWorkspace(
	g *domain.WorkspaceGraph,
	root, dir string,
	workspaceNames map[string]string,
) error {
	workspace, err := readManifest(filepath.Join(root, filepath.FromSlash(dir)), dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Logger.Debug(fmt.Sprintf("%s missing in %s, skipping", domain.ManifestFileName, dir))
			return nil
		}
		return err
	}

	if workspace.Name == "" {
		l.Logger.Warn(fmt.Sprintf("%s in %s has no name, skipping", domain.ManifestFileName, dir))
		return nil
	}

	if existingPath, exists := workspaceNames[workspace.Name]; exists {
		err := zerr.With(domain.ErrDuplicateWorkspaceName, "workspace_name", workspace.Name)
		err = zerr.With(err, "first_occurrence", existingPath)
		err = zerr.With(err, "duplicate_at", dir)
		return err
	}
	workspaceNames[workspace.Name] = dir

	return g.AddWorkspace(workspace)
}

// readManifest reads the package.json in dir. A missing manifest is returned
// as an error matching fs.ErrNotExist.
func readManifest(dir, relPath string) (*domain.Workspace, error) {
	// #nosec G304 -- dir is a workspace directory below the discovered root
	data, err := os.ReadFile(filepath.Join(dir, domain.ManifestFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		err = zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return nil, zerr.With(err, "directory", relPath)
	}

	var manifest PackageJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		err = zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
		return nil, zerr.With(err, "directory", relPath)
	}

	return &domain.Workspace{
		Name:                 manifest.Name,
		Path:                 relPath,
		Version:              manifest.Version,
		Dependencies:         manifest.Dependencies,
		DevDependencies:      manifest.DevDependencies,
		OptionalDependencies: manifest.OptionalDependencies,
	}, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
