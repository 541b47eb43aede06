package version

import "fmt"

var (
	// Version is the release version, set at build time.
	Version = "0.1.0"

	// GitCommit is the commit the binary was built from, set with
	// -ldflags "-X .../internal/version.GitCommit=<sha>".
	GitCommit = ""
)

// FullVersion returns the version with the commit when known.
func FullVersion() string {
	if GitCommit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
