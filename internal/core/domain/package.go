package domain

// Package is the outcome of resolving a specifier against a lockfile.
// A zero Package with Found unset means the dependency is legitimately absent.
type Package struct {
	// Key is the dependency key under which the package is locked (e.g., "/react@18.2.0").
	Key string

	// Version is the locked version, including any peer-dependency suffix.
	Version string

	// Found reports whether the specifier resolved to a locked package.
	Found bool
}

// NotFound is the Package returned for dependencies that have no lock entry.
var NotFound = Package{}
