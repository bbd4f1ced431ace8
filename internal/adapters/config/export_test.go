package config

// MatchPatterns exposes the workspace pattern matcher for testing.
func MatchPatterns(patterns []string, dir string) (bool, error) {
	m, err := newPatternMatcher(patterns)
	if err != nil {
		return false, err
	}
	return m.Match(dir), nil
}
