// Package build holds build-time information about the smelt binary itself.
package build

// Version is the smelt version reported by the version command.
// It defaults to "dev" and is overwritten by linker flags in release builds.
var Version = "dev"
