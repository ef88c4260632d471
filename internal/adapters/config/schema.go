package config

// Smeltfile represents the structure of the smelt.yaml configuration file.
type Smeltfile struct {
	Version   string       `yaml:"version"`
	Package   PackageDTO   `yaml:"package"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
	Exclude   []string     `yaml:"exclude"`
	Shells    []string     `yaml:"shells"`
	DevTools  []string     `yaml:"devTools"`
	EnvFiles  []string     `yaml:"envFiles"`
}

// PackageDTO describes the package under build.
type PackageDTO struct {
	Name              string   `yaml:"name"`
	Command           string   `yaml:"command"`
	AuxiliaryBinaries []string `yaml:"auxiliaryBinaries"`
	Features          []string `yaml:"features"`
	RevisionEnv       string   `yaml:"revisionEnv"`
}

// ToolchainDTO describes the external build tool.
type ToolchainDTO struct {
	Command string `yaml:"command"`
}
