// Package version compares semantic versions for the self-updater.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Relation describes how the current version relates to the latest release.
type Relation int

const (
	// Equal means the current version matches the latest release.
	Equal Relation = iota
	// Older means an update is available.
	Older
	// Newer means the current build is ahead of the latest release.
	Newer
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case Older:
		return "older"
	case Newer:
		return "newer"
	default:
		return "unknown"
	}
}

// Compare parses both versions (tolerating a leading "v") and reports how
// current relates to latest.
func Compare(current, latest string) (Relation, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return Equal, fmt.Errorf("invalid current version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return Equal, fmt.Errorf("invalid latest version %q: %w", latest, err)
	}

	switch cur.Compare(lat) {
	case 0:
		return Equal, nil
	case -1:
		return Older, nil
	default:
		return Newer, nil
	}
}

// IsDev reports whether the version string marks an unreleased build.
func IsDev(v string) bool {
	return v == "" || v == "dev"
}
