// Package cas stores computed package closures in content-addressed files.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/jonboulle/clockwork"
	"github.com/mitchellh/hashstructure/v2"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ClosureCache = (*Store)(nil)

// closureKey is the identity of a closure. Manifests maps each selected
// workspace path to the digest of its package.json.
type closureKey struct {
	LockfileDigest string
	Manifests      map[string]string
	Production     bool
}

// Store implements ports.ClosureCache using a file-per-key strategy below
// <root>/.pnprune/cache.
type Store struct {
	clock clockwork.Clock
}

// NewStore creates a Store stamping records with the wall clock.
func NewStore() *Store {
	return NewStoreWithClock(clockwork.NewRealClock())
}

// NewStoreWithClock creates a Store stamping records with clock.
func NewStoreWithClock(clock clockwork.Clock) *Store {
	return &Store{clock: clock}
}

// Key derives the closure key.
func (s *Store) Key(lockfileDigest string, manifests map[string]string, production bool) (string, error) {
	sum, err := hashstructure.Hash(closureKey{
		LockfileDigest: lockfileDigest,
		Manifests:      manifests,
		Production:     production,
	}, hashstructure.FormatV2, &hashstructure.HashOptions{Hasher: xxhash.New()})
	if err != nil {
		return "", zerr.Wrap(err, "failed to compute closure key")
	}
	return strconv.FormatUint(sum, 16), nil
}

// Get retrieves the closure record stored under key. A missing record, or one
// stored under a different key, yields nil, nil.
func (s *Store) Get(root, key string) (*domain.ClosureRecord, error) {
	filename := s.getFilename(root, key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", filename)
	}

	var record domain.ClosureRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "path", filename)
	}

	if record.Key != key {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record, stamping it with the current time when unset.
func (s *Store) Put(root string, record domain.ClosureRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = s.clock.Now().UTC()
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	filename := s.getFilename(root, record.Key)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", filename)
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", filename)
	}

	return nil
}

func (s *Store) getFilename(root, key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(root, domain.DefaultCachePath(), hex.EncodeToString(hash[:])+".json")
}
