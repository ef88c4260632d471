package domain

// NativeDependency is an external library or tool required at build or run
// time, outside the package ecosystem of the source language.
type NativeDependency struct {
	// Name is the canonical package or framework name (e.g. "mold",
	// "Security", "libiconv").
	Name string
	// Platform is the platform this dependency applies to. A dependency only
	// ever appears in the profile of its own platform.
	Platform Platform
}

// LinkerFlag is a single ordered token passed to the linking stage.
// Declaration order is significant: flags are concatenated in order into one
// invocation string.
type LinkerFlag string
