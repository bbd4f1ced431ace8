package config

import (
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/zerr"
)

// patternMatcher selects workspace directories from pnpm-workspace.yaml patterns.
// Patterns prefixed with "!" exclude directories matched by earlier patterns.
type patternMatcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func newPatternMatcher(patterns []string) (*patternMatcher, error) {
	m := &patternMatcher{}
	for _, raw := range patterns {
		negated := strings.HasPrefix(raw, "!")
		pattern := normalizePattern(strings.TrimPrefix(raw, "!"))
		if pattern == "" {
			continue
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			err = zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
			return nil, zerr.With(err, "pattern", raw)
		}
		if negated {
			m.exclude = append(m.exclude, g)
			// "!**/test/**" also drops the test directory itself.
			if base, ok := strings.CutSuffix(pattern, "/**"); ok && base != "" {
				baseGlob, err := glob.Compile(base, '/')
				if err != nil {
					err = zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
					return nil, zerr.With(err, "pattern", raw)
				}
				m.exclude = append(m.exclude, baseGlob)
			}
		} else {
			m.include = append(m.include, g)
		}
	}
	return m, nil
}

// Match reports whether the slash-separated relative directory is a workspace.
func (m *patternMatcher) Match(dir string) bool {
	matched := false
	for _, g := range m.include {
		if g.Match(dir) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, g := range m.exclude {
		if g.Match(dir) {
			return false
		}
	}
	return true
}

func normalizePattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	pattern = strings.TrimPrefix(pattern, "./")
	return strings.TrimSuffix(pattern, "/")
}
