package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*OutputWriter)(nil)

// OutputWriter materializes a pruned monorepo below an output directory.
type OutputWriter struct {
	walker *Walker
}

// NewOutputWriter creates a new OutputWriter.
func NewOutputWriter(walker *Walker) *OutputWriter {
	return &OutputWriter{walker: walker}
}

// WriteLockfile encodes lockfile to <out>/pnpm-lock.yaml.
func (o *OutputWriter) WriteLockfile(layout ports.OutputLayout, lockfile ports.Lockfile) (int64, error) {
	var buf bytes.Buffer
	if err := lockfile.Encode(&buf); err != nil {
		return 0, err
	}

	path := filepath.Join(layout.OutDir, domain.LockfileName)
	if err := writeFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

// WriteWorkspaces copies each workspace directory into the output. The root
// workspace is skipped: its manifest is copied with CopyFiles.
func (o *OutputWriter) WriteWorkspaces(layout ports.OutputLayout, workspaces []domain.Workspace) error {
	for i := range workspaces {
		ws := &workspaces[i]
		if ws.IsRoot() {
			continue
		}

		rel := filepath.FromSlash(ws.Path)
		src := filepath.Join(layout.Root, rel)

		if !layout.Docker {
			if err := o.copyDir(src, filepath.Join(layout.OutDir, rel)); err != nil {
				return err
			}
			continue
		}

		manifest := filepath.Join(rel, domain.ManifestFileName)
		if err := copyFile(filepath.Join(layout.Root, manifest), filepath.Join(layout.OutDir, domain.DockerJSONDir, manifest)); err != nil {
			return err
		}
		if err := o.copyDir(src, filepath.Join(layout.OutDir, domain.DockerFullDir, rel)); err != nil {
			return err
		}
	}
	return nil
}

// CopyFiles copies root-relative files into the output, preserving their paths.
func (o *OutputWriter) CopyFiles(layout ports.OutputLayout, paths []string) error {
	targets := []string{layout.OutDir}
	if layout.Docker {
		targets = []string{
			filepath.Join(layout.OutDir, domain.DockerJSONDir),
			filepath.Join(layout.OutDir, domain.DockerFullDir),
		}
	}

	for _, p := range paths {
		rel := filepath.FromSlash(p)
		for _, target := range targets {
			if err := copyFile(filepath.Join(layout.Root, rel), filepath.Join(target, rel)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *OutputWriter) copyDir(src, dst string) error {
	for path, err := range o.walker.WalkFiles(src, nil) {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", src)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Paths come from the loaded workspace graph
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", dst)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // Output path is derived from the out dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", dst)
	}
	return nil
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return nil
}
