// Package version exposes the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with -ldflags "-X .../version.Version=v1.2.3".
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// IsRelease reports whether v is a valid semantic version without a prerelease part.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

// Info describes the running build.
type Info struct {
	Version string `json:"version"`
	Major   string `json:"major,omitempty"`
	Release bool   `json:"release"`
}

// Current returns the build info of the running binary.
func Current() Info {
	n := Normalize(Version)
	info := Info{Version: Version, Release: IsRelease(Version)}
	if semver.IsValid(n) {
		info.Major = semver.Major(n)
	}
	return info
}
