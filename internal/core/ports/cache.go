package ports

import "go.trai.ch/pnprune/internal/core/domain"

// ClosureCache stores computed package closures between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ClosureCache interface {
	// Key derives the cache key of a closure from the lockfile digest, the
	// manifest digest of every selected workspace (path -> digest) and the
	// production flag.
	Key(lockfileDigest string, manifests map[string]string, production bool) (string, error)

	// Get retrieves the closure record stored under key below root.
	// Returns nil, nil if not found.
	Get(root, key string) (*domain.ClosureRecord, error)

	// Put stores the closure record below root.
	Put(root string, record domain.ClosureRecord) error
}
