package validators

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IsVersionToken reports whether token is syntactically valid as a version
// binding: either an exact semantic version ("1.2.3", "2.0.0-rc.1") or a
// semver range expression ("^1.0.0", ">=2.0.0 <3.0.0", "1.2.x").
func IsVersionToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	if _, err := semver.StrictNewVersion(token); err == nil {
		return true
	}
	if _, err := semver.NewConstraint(token); err == nil {
		return true
	}

	return false
}

// TokenMatches reports whether the requested version satisfies the given
// version token. An exact token matches only on semver equality (build
// metadata ignored, per semver precedence rules); a range token matches on
// containment. Tokens that parse as neither never match.
func TokenMatches(token string, requested *semver.Version) bool {
	token = strings.TrimSpace(token)
	if token == "" || requested == nil {
		return false
	}

	if exact, err := semver.StrictNewVersion(token); err == nil {
		return exact.Equal(requested)
	}

	if rng, err := semver.NewConstraint(token); err == nil {
		return rng.Check(requested)
	}

	return false
}
