// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time with -ldflags "-X .../version.Version=1.4.0".
var (
	Version = "dev"
	Commit  = ""
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a valid semver release without a
// prerelease suffix.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

// String renders the build version, e.g. "v1.4.0 (a1b2c3d)" or "dev".
func String() string {
	v := Version
	if semver.IsValid(Normalize(v)) {
		v = semver.Canonical(Normalize(v))
	}
	if Commit != "" {
		v += " (" + Commit + ")"
	}
	return v
}
