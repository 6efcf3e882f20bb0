package scan

// Build information, set via -ldflags at release time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
