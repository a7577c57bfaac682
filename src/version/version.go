package version

import "fmt"

// These variables are injected at build time via -ldflags, e.g.
//
//	-X github.com/sofmeright/lintrc/src/version.Version=v1.2.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("lintrc %s (%s, %s)", Version, Commit, BuildDate)
}
