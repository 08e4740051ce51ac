package tui

import (
	"log/slog"

	"github.com/Absolentia/aif-core/internal/ports"
)

// Workspace is what the TUI needs from an opened workspace.
type Workspace struct {
	Root  string
	Store ports.SchemaStore
}

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	// OpenWorkspace loads config and wires the schema store for root.
	OpenWorkspace func(root string) (Workspace, error)

	Logger *slog.Logger
	Debug  bool
}
