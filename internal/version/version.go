// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X zoomview/internal/version.Version=...".
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version for logs and the About dialog.
func String() string {
	if GitCommit == "unknown" {
		return "v" + Version
	}
	return fmt.Sprintf("v%s (%s, built %s)", Version, GitCommit, BuildTime)
}
