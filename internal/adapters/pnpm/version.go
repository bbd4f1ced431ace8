package pnpm

import (
	"go.trai.ch/pnprune/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// VersionFormat is the schema generation of a lockfile.
type VersionFormat int

const (
	// VersionFormatFloat marks legacy lockfiles, whose version is a YAML number (5.4).
	VersionFormatFloat VersionFormat = iota
	// VersionFormatString marks modern lockfiles, whose version is a quoted string ('6.0').
	VersionFormatString
)

func (f VersionFormat) String() string {
	if f == VersionFormatString {
		return "string"
	}
	return "float"
}

// LockfileVersion is the lockfileVersion field. How it was written decides how
// importers and package keys are shaped for the whole document.
type LockfileVersion struct {
	Version string
	Format  VersionFormat
}

// Modern reports whether the document uses "/name@version" keys.
func (v LockfileVersion) Modern() bool {
	return v.Format == VersionFormatString
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *LockfileVersion) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return zerr.With(domain.ErrUnsupportedLockfileVersion, "line", node.Line)
	}

	switch node.ShortTag() {
	case "!!str":
		v.Format = VersionFormatString
	case "!!float", "!!int":
		v.Format = VersionFormatFloat
	default:
		return zerr.With(domain.ErrUnsupportedLockfileVersion, "tag", node.ShortTag())
	}
	v.Version = node.Value
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v LockfileVersion) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: v.Version}
	if v.Format == VersionFormatString {
		node.Tag = "!!str"
		node.Style = yaml.SingleQuotedStyle
	}
	return node, nil
}
