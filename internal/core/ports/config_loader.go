package ports

import "go.smelt.dev/smelt/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory.
	// Malformed configuration, including an exclusion rule that does not
	// compile, is a fatal error reported here, before anything runs.
	Load(cwd string) (*domain.Config, error)
}
