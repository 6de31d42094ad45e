// Package version reports the famengine build version, set via
// -ldflags at release build time and falling back to "dev" for local
// builds.
package version

// version is overridden at build time with
// -ldflags "-X github.com/takrawm/famengine/pkg/version.version=vX.Y.Z".
//
//nolint:gochecknoglobals // set via -ldflags at build time
var version = "dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}
