package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// revision is overwritten with the git commit hash at release build.
//
//go:embed revision
var revision string

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

// VERSION is the release version of hbnb tools.
func VERSION() string {
	return version
}

func GIT_REVISION() string {
	return revision
}

// VersionString is "<version> (commit: <revision>)".
func VersionString() string {
	return version + " (commit: " + revision + ")"
}
