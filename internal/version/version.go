// Package version provides the current version of purlkit.
package version

// Version is the current release version of purlkit
var Version = "0.1.0"
