// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/embedder-rs/devshell/internal/adapters/config"
	_ "github.com/embedder-rs/devshell/internal/adapters/fs"
	_ "github.com/embedder-rs/devshell/internal/adapters/lock"
	_ "github.com/embedder-rs/devshell/internal/adapters/logger"
	_ "github.com/embedder-rs/devshell/internal/adapters/nix"
	_ "github.com/embedder-rs/devshell/internal/adapters/shell"
	_ "github.com/embedder-rs/devshell/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/embedder-rs/devshell/internal/app"
	_ "github.com/embedder-rs/devshell/internal/engine/provisioner"
)
