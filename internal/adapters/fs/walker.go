// Package fs provides file system adapters for hashing files and writing pruned output.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/pnprune/internal/core/domain"
)

// skippedDirs are never copied into pruned output.
var skippedDirs = map[string]bool{
	".git":                true,
	".jj":                 true,
	"node_modules":        true,
	domain.PnpruneDirName: true,
}

// Walker yields the files of a workspace directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root, skipping VCS metadata,
// installed dependencies and directories whose name matches one of ignores.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.skip(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func (w *Walker) skip(d fs.DirEntry, ignores []string) bool {
	name := d.Name()
	if d.IsDir() && skippedDirs[name] {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
