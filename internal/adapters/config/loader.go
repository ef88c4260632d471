// Package config provides the configuration loader for smelt.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.smelt.dev/smelt/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file smelt looks for in the working
// directory.
const DefaultFilename = "smelt.yaml"

// defaultToolchain is used when the configuration does not name one.
const defaultToolchain = "cargo"

// defaultShells are the completion targets when the configuration names none.
var defaultShells = []string{"bash", "fish", "zsh"}

// supportedShells are the shells the artifact generator knows how to register
// completion scripts for.
var supportedShells = map[string]bool{
	"bash": true,
	"fish": true,
	"zsh":  true,
}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader reading DefaultFilename.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load reads the configuration from the given working directory.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	return Load(filepath.Join(cwd, l.Filename))
}

// Load reads a configuration file from the given path, validates it, and
// returns the domain configuration with defaults applied. Every problem found
// here is a configuration error: it is reported before anything external
// runs.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Smeltfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if file.Package.Name == "" {
		return nil, zerr.With(domain.ErrIncompleteConfig, "missing", "package.name")
	}
	if file.Package.Command == "" {
		return nil, zerr.With(domain.ErrIncompleteConfig, "missing", "package.command")
	}

	// Exclusion rules must compile before any filtering begins.
	for _, rule := range file.Exclude {
		if _, err := regexp.Compile(rule); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrBadExclusionRule.Error()), "rule", rule)
		}
	}

	shells := file.Shells
	if len(shells) == 0 {
		shells = defaultShells
	}
	for _, shell := range shells {
		if !supportedShells[shell] {
			return nil, zerr.With(domain.ErrUnknownShell, "shell", shell)
		}
	}

	toolchain := file.Toolchain.Command
	if toolchain == "" {
		toolchain = defaultToolchain
	}

	revisionEnv := file.Package.RevisionEnv
	if revisionEnv == "" {
		revisionEnv = defaultRevisionEnv(file.Package.Name)
	}

	return &domain.Config{
		PackageName:       file.Package.Name,
		Command:           file.Package.Command,
		AuxiliaryBinaries: file.Package.AuxiliaryBinaries,
		Features:          file.Package.Features,
		RevisionEnv:       revisionEnv,
		ToolchainCommand:  toolchain,
		ExcludeRules:      file.Exclude,
		Shells:            shells,
		DevTools:          file.DevTools,
		EnvFiles:          file.EnvFiles,
	}, nil
}

// defaultRevisionEnv derives the revision variable from the package name,
// e.g. "jj" becomes "JJ_GIT_HASH".
func defaultRevisionEnv(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.ToUpper(sanitized) + "_GIT_HASH"
}
