// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.smelt.dev/smelt/internal/adapters/config"
	_ "go.smelt.dev/smelt/internal/adapters/fs"
	_ "go.smelt.dev/smelt/internal/adapters/logger"
	_ "go.smelt.dev/smelt/internal/adapters/manifest"
	_ "go.smelt.dev/smelt/internal/adapters/shell"
	_ "go.smelt.dev/smelt/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.smelt.dev/smelt/internal/app"
	_ "go.smelt.dev/smelt/internal/artifacts"
	_ "go.smelt.dev/smelt/internal/devshell"
	_ "go.smelt.dev/smelt/internal/recipe"
)
