package app

import (
	"go.smelt.dev/smelt/internal/adapters/config"
	"go.smelt.dev/smelt/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI
// layer.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader *config.Loader
}
