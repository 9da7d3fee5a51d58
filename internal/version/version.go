package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// IsNewerVersion compares two version strings and returns true if
// newVersion is newer. Python release pins like "11.2.1" are close
// enough to semver that normalized comparison covers them; anything
// else (post/dev releases) falls back to string comparison.
func IsNewerVersion(currentVersion, newVersion string) bool {
	current := normalizeVersion(currentVersion)
	next := normalizeVersion(newVersion)

	if semver.IsValid(current) && semver.IsValid(next) {
		return semver.Compare(next, current) > 0
	}

	return newVersion > currentVersion
}

// normalizeVersion ensures the version has a 'v' prefix for semver
// compatibility.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
