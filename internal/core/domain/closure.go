package domain

import "time"

// ClosureRecord is a cached package closure for a set of workspaces at one lockfile revision.
type ClosureRecord struct {
	Key            string            `json:"key,omitzero"`
	LockfileDigest string            `json:"lockfile_digest,omitzero"`
	Workspaces     []string          `json:"workspaces,omitzero"`
	Manifests      map[string]string `json:"manifests,omitzero"`
	Production     bool              `json:"production,omitzero"`
	Packages       []string          `json:"packages,omitzero"`
	Timestamp      time.Time         `json:"timestamp,omitzero"`
}
