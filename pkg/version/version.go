package version

var (
	// Version is the version of battinfo, set at build time with -ldflags.
	Version = "v0.0.0-dev"
	// GitCommit is the commit battinfo was built from.
	GitCommit = "unknown"
)
