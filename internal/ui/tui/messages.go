package tui

import "github.com/Absolentia/aif-core/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root    string
	written int
	err     error
}

type schemasLoadedMsg struct {
	ws   Workspace
	refs []domain.SchemaRef
	err  error
}

type schemaShownMsg struct {
	ref  domain.SchemaRef
	body string
	err  error
}

type diffDoneMsg struct {
	a, b domain.SchemaRef
	res  domain.DiffResult
	err  error
}
