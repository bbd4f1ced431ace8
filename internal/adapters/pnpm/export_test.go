package pnpm

// ResolveSpecifier exposes resolveSpecifier for testing.
func (l *Lockfile) ResolveSpecifier(workspacePath, name, specifier string) (string, bool, error) {
	return l.resolveSpecifier(workspacePath, name, specifier)
}

// ExtractVersion exposes extractVersion for testing.
func (l *Lockfile) ExtractVersion(key string) (string, bool) {
	return l.extractVersion(key)
}
