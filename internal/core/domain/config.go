package domain

// Config is the validated build configuration for the package under build.
// It is the domain-side result of loading smelt.yaml; the raw file schema
// lives in the config adapter.
type Config struct {
	// PackageName is the name of the package being resolved.
	PackageName string
	// Command is the single distributed binary. Release builds are
	// restricted to this target.
	Command string
	// AuxiliaryBinaries are helper binaries used only for testing. They are
	// never selected by a release build.
	AuxiliaryBinaries []string
	// Features are the optional feature groups enabled for release builds.
	Features []string
	// RevisionEnv is the environment variable that carries the revision
	// identifier into the binary's version string.
	RevisionEnv string
	// ToolchainCommand is the external build tool executable.
	ToolchainCommand string
	// ExcludeRules are anchored regular expressions over root-relative paths
	// forming the source filter.
	ExcludeRules []string
	// Shells are the completion-script targets for post-build artifact
	// generation.
	Shells []string
	// DevTools are extra developer utilities merged into the dev shell's
	// availability requirements.
	DevTools []string
	// EnvFiles are optional dotenv overlays applied to the dev shell
	// environment.
	EnvFiles []string
}
