package domain

import (
	"slices"
	"strings"
)

// Profile is the platform-specific slice of a build: the native dependencies
// to provision and the ordered linker flags to emit. Profiles are resolved by
// a pure table lookup keyed by Platform; adding a platform is a single table
// entry.
type Profile struct {
	Deps        []NativeDependency
	LinkerFlags []LinkerFlag
}

// linkArgPrefix is the "pass this token to the linker" marker the external
// toolchain expects in front of every linker flag.
const linkArgPrefix = "-C link-arg="

var profiles = map[Platform]Profile{
	PlatformLinux: {
		Deps: []NativeDependency{
			{Name: "mold", Platform: PlatformLinux},
		},
		// Order matters: the linker selector must precede the debug-section
		// compression flag it configures.
		LinkerFlags: []LinkerFlag{
			"-fuse-ld=mold",
			"-Wl,--compress-debug-sections=zstd",
		},
	},
	PlatformDarwin: {
		Deps: []NativeDependency{
			{Name: "Security", Platform: PlatformDarwin},
			{Name: "SystemConfiguration", Platform: PlatformDarwin},
			{Name: "libiconv", Platform: PlatformDarwin},
		},
		LinkerFlags: []LinkerFlag{
			"-ld_new",
		},
	},
	PlatformOther: {},
}

// ProfileFor returns the dependency set and ordered linker flags for the
// given platform. The lookup is pure: two calls with the same platform yield
// identical sets and identically ordered flags. Callers receive copies, so a
// resolved profile can never leak mutations back into the table.
func ProfileFor(p Platform) Profile {
	prof := profiles[p]
	return Profile{
		Deps:        slices.Clone(prof.Deps),
		LinkerFlags: slices.Clone(prof.LinkerFlags),
	}
}

// LinkerArgs renders the flags as marker/flag pairs concatenated in
// declaration order into the single string consumed by the recipe builder.
// An empty profile renders as the empty string.
func (p Profile) LinkerArgs() string {
	parts := make([]string, 0, len(p.LinkerFlags))
	for _, flag := range p.LinkerFlags {
		parts = append(parts, linkArgPrefix+string(flag))
	}
	return strings.Join(parts, " ")
}
