// Package version carries build information, overridden at link time with
// -ldflags "-X github.com/ChristianF88/sortx/version.Version=...".
package version

var (
	Version = "dev"
	Date    = ""
)
