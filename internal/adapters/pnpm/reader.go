// Package pnpm reads, resolves and prunes pnpm lockfiles.
package pnpm

import (
	"os"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reader implements ports.LockfileReader.
type Reader struct{}

// NewReader creates a new lockfile reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads and decodes the lockfile at path. The raw bytes are returned for hashing.
func (r *Reader) Read(path string) (ports.Lockfile, []byte, error) {
	//nolint:gosec // Path is the lockfile of the discovered workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", path)
	}

	lockfile, err := DecodeLockfile(data)
	if err != nil {
		return nil, nil, zerr.With(err, "path", path)
	}
	return lockfile, data, nil
}
