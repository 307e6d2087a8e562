// Package version reports build information set via ldflags:
//
//	go build -ldflags "-X github.com/example/rollcall/internal/version.Commit=$(git rev-parse HEAD)"
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the full version line shown by `rollcall version`.
func String() string {
	return fmt.Sprintf("rollcall %s (commit: %s, built: %s)", Version, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
