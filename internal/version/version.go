// Package version reports build metadata stamped in via ldflags:
//
//	go build -ldflags "-X github.com/example/deckforge/internal/version.Commit=$(git rev-parse HEAD)"
package version

import "fmt"

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line shown by `deckforge --version`.
func String() string {
	return fmt.Sprintf("deckforge dev (commit: %s, built: %s)", ShortCommit(), BuildTime)
}

// ShortCommit returns the first seven characters of the build commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
