// Package version carries the SDK release identity. The variables are
// overwritten with -ldflags "-X" at build time.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent is sent with every outbound request.
func UserAgent() string {
	return "saucenao-go/" + Version
}

// Long describes the build for --version output.
func Long() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
