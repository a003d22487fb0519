// Package version reports the build version.
package version

// version is overridden at build time with
// -ldflags "-X menugen/pkg/version.version=1.2.3".
var version = "dev"

// Version returns the build version.
func Version() string {
	return version
}
