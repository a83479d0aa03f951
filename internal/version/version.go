package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via ldflags during build
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Name is the program name printed by Info
const Name = "simscan"

// Info returns version information as a formatted string
func Info() string {
	return fmt.Sprintf(
		"%s %s\nCommit: %s\nBuilt: %s\nGo: %s\nOS/Arch: %s/%s",
		Name,
		Short(),
		Commit,
		Date,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// Short returns the version string. Binaries installed with go install have
// no ldflags, so the module version from the build info is used instead.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
