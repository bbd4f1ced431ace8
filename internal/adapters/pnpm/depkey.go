package pnpm

import (
	"strings"

	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/zerr"
)

const patchHashPrefix = "(patch_hash="

// DepPath is a dependency key split into its components.
//
// Legacy keys look like "/@babel/core/7.20.12_3hyn7hbvzkemudbydlwjmrb65y" and
// modern keys like "/next@13.0.4(react-dom@18.2.0)(react@18.2.0)". Keys of
// packages not fetched from the registry carry a host prefix instead of the
// leading slash (e.g., "github.com/peerigon/dashboard-icons/ce27ef9").
type DepPath struct {
	Host    string
	Name    string
	Version string

	// PeerSuffix is the peer/patch disambiguation. For legacy keys it excludes the
	// leading underscore; for modern keys it keeps the parenthesized groups.
	PeerSuffix string
}

// ParseDepPath splits a dependency key into host, name, version and suffix.
func ParseDepPath(key string) (DepPath, error) {
	var dp DepPath

	rest := key
	if rest == "" {
		return dp, invalidKey(key, "empty key")
	}
	if rest[0] != '/' {
		slash := strings.IndexByte(rest, '/')
		if slash <= 0 {
			return dp, invalidKey(key, "missing leading slash")
		}
		dp.Host = rest[:slash]
		rest = rest[slash:]
	}
	rest = rest[1:]

	nameStart := 0
	if strings.HasPrefix(rest, "@") {
		scopeEnd := strings.IndexByte(rest, '/')
		if scopeEnd < 0 {
			return dp, invalidKey(key, "scope without package name")
		}
		nameStart = scopeEnd + 1
	}

	sep := strings.IndexAny(rest[nameStart:], "/@")
	if sep <= 0 {
		return dp, invalidKey(key, "missing version separator")
	}
	sep += nameStart
	dp.Name = rest[:sep]
	if strings.ContainsAny(dp.Name, "()") {
		return dp, invalidKey(key, "parentheses in package name")
	}

	versionAndSuffix := rest[sep+1:]
	end := strings.IndexAny(versionAndSuffix, "_(")
	if end < 0 {
		dp.Version = versionAndSuffix
	} else {
		dp.Version = versionAndSuffix[:end]
	}
	if dp.Version == "" {
		return dp, invalidKey(key, "empty version")
	}
	if end < 0 {
		return dp, nil
	}

	suffix := versionAndSuffix[end:]
	if suffix[0] == '_' {
		dp.PeerSuffix = suffix[1:]
		if dp.PeerSuffix == "" {
			return dp, invalidKey(key, "empty peer suffix")
		}
		return dp, nil
	}

	if !balancedGroups(suffix) {
		return dp, invalidKey(key, "unbalanced parentheses in suffix")
	}
	dp.PeerSuffix = suffix
	return dp, nil
}

// PatchHash returns the patch hash encoded in the key, or "" if the key is not patched.
// Modern keys carry it in a "(patch_hash=...)" group; legacy keys carry it as the
// first underscore separated segment of the suffix.
func (dp DepPath) PatchHash() string {
	if dp.PeerSuffix == "" {
		return ""
	}
	if strings.HasPrefix(dp.PeerSuffix, "(") {
		start := strings.Index(dp.PeerSuffix, patchHashPrefix)
		if start < 0 {
			return ""
		}
		hash := dp.PeerSuffix[start+len(patchHashPrefix):]
		end := strings.IndexByte(hash, ')')
		if end < 0 {
			return ""
		}
		return hash[:end]
	}
	hash, _, _ := strings.Cut(dp.PeerSuffix, "_")
	return hash
}

// balancedGroups reports whether s is a sequence of one or more balanced "(...)" groups.
func balancedGroups(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		default:
			if depth == 0 {
				return false
			}
		}
	}
	return depth == 0
}

func invalidKey(key, reason string) error {
	err := zerr.With(domain.ErrInvalidDependencyKey, "key", key)
	return zerr.With(err, "reason", reason)
}
