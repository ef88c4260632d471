package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownIntent is returned when a requested build intent is not one
	// of the recognized values.
	ErrUnknownIntent = zerr.New("unknown build intent")

	// ErrUnknownPlatform is returned when an explicitly passed platform
	// value is not recognized. A detected-but-unrecognized OS is not an
	// error; it resolves to PlatformOther.
	ErrUnknownPlatform = zerr.New("unknown platform")

	// ErrBadExclusionRule is returned when an exclusion pattern fails to
	// compile. This is fatal before any filtering begins.
	ErrBadExclusionRule = zerr.New("invalid exclusion rule")

	// ErrUnknownShell is returned when a configured completion shell is not
	// one of the supported shells.
	ErrUnknownShell = zerr.New("unknown completion shell")

	// ErrIncompleteConfig is returned when the configuration is missing a
	// required field.
	ErrIncompleteConfig = zerr.New("incomplete configuration")
)
