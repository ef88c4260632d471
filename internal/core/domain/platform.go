// Package domain contains the pure types and resolution rules for smelt.
package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// Platform identifies the host operating system family used for profile
// resolution. It is determined once per invocation and never changes for the
// lifetime of a resolution.
type Platform string

const (
	// PlatformLinux covers Linux hosts.
	PlatformLinux Platform = "linux"
	// PlatformDarwin covers the macOS family.
	PlatformDarwin Platform = "darwin"
	// PlatformOther covers every OS without a dedicated profile. It resolves
	// to empty dependency and flag sets rather than failing.
	PlatformOther Platform = "other"
)

// DetectPlatform maps the running operating system onto a Platform.
// An OS without a dedicated profile maps to PlatformOther.
func DetectPlatform() Platform {
	return platformFromGOOS(runtime.GOOS)
}

func platformFromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformOther
	}
}

// ParsePlatform validates an explicitly requested platform value.
// Unlike DetectPlatform, an unrecognized value here is a configuration error:
// the caller asked for something smelt does not know about.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformLinux, PlatformDarwin, PlatformOther:
		return Platform(s), nil
	default:
		return "", zerr.With(ErrUnknownPlatform, "platform", s)
	}
}

// String returns the platform name.
func (p Platform) String() string {
	return string(p)
}
