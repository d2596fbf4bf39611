// Package version exposes build metadata injected at link time.
package version

// Build metadata, overridden with -ldflags "-X github.com/oshokin/ncm-player/internal/version.Version=...".
//
//nolint:gochecknoglobals // Link-time variables must be package-level vars.
var (
	// Version is the semantic version of the build.
	Version = "0.3.0"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns version, commit and build time in one line.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
