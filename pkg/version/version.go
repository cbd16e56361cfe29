// Package version holds build information set by the linker.
package version

var (
	// Version is the release tag, set with -ldflags "-X".
	Version = "v0.0.0-dev"
	// GitCommit is the short commit hash of the build.
	GitCommit = "unknown"
)
