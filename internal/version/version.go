// Package version carries build metadata stamped in via ldflags.
package version

import "fmt"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line version description for CLI output.
func String() string {
	return fmt.Sprintf("mlswarp %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
