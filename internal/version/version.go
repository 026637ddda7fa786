// Package version carries the build identity stamped in by ldflags.
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "0.1.0-dev"                      // overridden at release, ex: v0.3.1
	Commit    = "none"                           // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339)  // ex: 2026-08-28T18:42:00Z
	GoVersion = runtime.Version()                // go version
)

// String renders the full build identity for startup logs.
func String() string {
	return fmt.Sprintf("marque %s (commit=%s, built=%s, go=%s)",
		Version, Commit, BuildDate, GoVersion)
}
