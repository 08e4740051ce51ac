package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		res, err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root})
		return initWorkspaceDoneMsg{root: root, written: len(res.Written), err: err}
	}
}

func cmdLoadSchemas(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.OpenWorkspace == nil {
			return schemasLoadedMsg{err: errors.New("OpenWorkspace is nil")}
		}
		ws, err := deps.OpenWorkspace(root)
		if err != nil {
			return schemasLoadedMsg{err: err}
		}

		refs, err := ws.Store.ListSchemas()
		return schemasLoadedMsg{ws: ws, refs: refs, err: err}
	}
}

func cmdShowSchema(ws Workspace, ref domain.SchemaRef) tea.Cmd {
	return func() tea.Msg {
		body, err := ws.Store.LoadSchema(ref.ID)
		return schemaShownMsg{ref: ref, body: body, err: err}
	}
}

func cmdDiffSchemas(ws Workspace, a, b domain.SchemaRef, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		sa, err := ws.Store.LoadSchema(a.ID)
		if err != nil {
			return diffDoneMsg{a: a, b: b, err: err}
		}
		sb, err := ws.Store.LoadSchema(b.ID)
		if err != nil {
			return diffDoneMsg{a: a, b: b, err: err}
		}

		res, err := diff.DefaultEngine.Compare(sa, sb)
		if err != nil {
			log.Error("tui.diff.failed", "a", a.ID, "b", b.ID, "err", err)
			return diffDoneMsg{a: a, b: b, err: err}
		}
		log.Info("tui.diff", "a", a.ID, "b", b.ID, "added", len(res.Added), "removed", len(res.Removed))
		return diffDoneMsg{a: a, b: b, res: res}
	}
}

func workingDir() (string, error) { return os.Getwd() }
