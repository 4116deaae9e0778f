// Package version holds build information for tabctx, set through -ldflags.
package version

var (
	// Version is the released version.
	Version = "dev"
	// BuildTime is when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)
