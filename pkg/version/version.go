// Package version exposes the build version of gitlab-toolbox.
package version

// Version is set at build time via -ldflags "-X ...". It defaults to "dev"
// for local builds.
var Version = "dev" //nolint:gochecknoglobals // Set by the linker at build time

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}
