// Package version carries build metadata for the price overlay binary,
// injected at build time via -ldflags.
package version

var (
	// Version is the overlay release, "0.2.0" when built from source.
	Version = "0.2.0"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// GitCommit identifies the commit the binary was built from.
	GitCommit = "unknown"
)

// String returns "version (commit)" for log banners.
func String() string {
	return Version + " (" + GitCommit + ")"
}
