package version

// Version is overridden at build time via -ldflags "-X"
var Version = "v0.1.0"

// GetVersion returns the version string
func GetVersion() string {
	return Version
}
