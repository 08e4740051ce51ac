package tui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Absolentia/aif-core/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenShow
	screenDiff
)

const maxMarked = 2

type schemaItem struct {
	ref    domain.SchemaRef
	marked bool
}

func (i schemaItem) Title() string {
	if i.marked {
		return "● " + i.ref.Name
	}
	return i.ref.Name
}
func (i schemaItem) Description() string { return i.ref.ID }
func (i schemaItem) FilterValue() string { return i.ref.Name + " " + i.ref.ID }

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	scr  screen
	list list.Model
	view viewport.Model

	workspaceFound bool
	workspaceRoot  string
	ws             Workspace

	refs   []domain.SchemaRef
	marked []string // ids, oldest first

	busy  bool
	toast string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Schemas"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme: themeFromEnv(),
		deps:  deps,
		log:   log,
		scr:   screenHome,
		list:  l,
		view:  viewport.New(0, 0),
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.list.SetSize(w-4, h-10)
		m.view.Width = w - 8
		m.view.Height = h - 12
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if !msg.found {
			return m, nil
		}
		m.busy = true
		return m, cmdLoadSchemas(m.deps, msg.root)

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.log.Error("tui.init.failed", "root", msg.root, "err", msg.err)
			return m, nil
		}
		m.toast = fmt.Sprintf("Workspace created (%d files)", msg.written)
		return m, cmdRefreshWorkspace(m.deps)

	case schemasLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.log.Error("tui.schemas.load_failed", "err", msg.err)
			return m, nil
		}
		m.ws = msg.ws
		m.refs = msg.refs
		m.marked = nil
		m.syncItems()
		return m, nil

	case schemaShownMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.view.SetContent(prettySchema(msg.body))
		m.view.GotoTop()
		m.scr = screenShow
		return m, nil

	case diffDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.view.SetContent(renderDiff(m.theme, msg.a, msg.b, msg.res))
		m.view.GotoTop()
		m.scr = screenDiff
		return m, nil

	case tea.KeyMsg:
		if m.scr == screenHome && m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			return m, nil

		case "esc", "b":
			if m.scr != screenHome {
				m.scr = screenHome
				return m, nil
			}
		}

		if m.scr == screenHome {
			if next, cmd, handled := m.homeKey(msg.String()); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	if m.scr == screenHome {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.view, cmd = m.view.Update(msg)
	}
	return m, cmd
}

func (m model) homeKey(key string) (model, tea.Cmd, bool) {
	switch key {
	case "i":
		if m.workspaceFound {
			return m, nil, true
		}
		root := "."
		if wd, err := workingDir(); err == nil {
			root = wd
		}
		return m, cmdInitWorkspaceHere(m.deps, root), true

	case "r":
		m.toast = ""
		return m, cmdRefreshWorkspace(m.deps), true

	case "enter":
		it, ok := m.list.SelectedItem().(schemaItem)
		if !ok || m.ws.Store == nil {
			return m, nil, true
		}
		m.busy = true
		return m, cmdShowSchema(m.ws, it.ref), true

	case " ", "space":
		it, ok := m.list.SelectedItem().(schemaItem)
		if !ok {
			return m, nil, true
		}
		m.toggleMark(it.ref.ID)
		m.syncItems()
		return m, nil, true

	case "d":
		if len(m.marked) != maxMarked || m.ws.Store == nil {
			m.toast = "Mark two schemas with space, then press d"
			return m, nil, true
		}
		a, okA := m.refByID(m.marked[0])
		b, okB := m.refByID(m.marked[1])
		if !okA || !okB {
			return m, nil, true
		}
		m.toast = ""
		m.busy = true
		return m, cmdDiffSchemas(m.ws, a, b, m.log), true
	}
	return m, nil, false
}

// toggleMark keeps at most maxMarked ids; marking a third drops the oldest.
func (m *model) toggleMark(id string) {
	for i, x := range m.marked {
		if x == id {
			m.marked = append(m.marked[:i:i], m.marked[i+1:]...)
			return
		}
	}
	m.marked = append(m.marked, id)
	if len(m.marked) > maxMarked {
		m.marked = m.marked[len(m.marked)-maxMarked:]
	}
}

func (m *model) syncItems() {
	set := map[string]bool{}
	for _, id := range m.marked {
		set[id] = true
	}
	items := make([]list.Item, 0, len(m.refs))
	for _, r := range m.refs {
		items = append(items, schemaItem{ref: r, marked: set[r.ID]})
	}
	m.list.SetItems(items)
}

func (m model) refByID(id string) (domain.SchemaRef, bool) {
	for _, r := range m.refs {
		if r.ID == id {
			return r, true
		}
	}
	return domain.SchemaRef{}, false
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("aif") + "\n" +
		m.theme.Subtitle.Render("JSON Schema inference and drift") + "\n"

	var banner string
	if m.workspaceFound {
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		banner = m.theme.Card.Render("No workspace found.\n\nPress i to create one here.")
	}
	if m.toast != "" {
		banner += "\n" + m.theme.Toast.Render(m.toast)
	}
	if m.busy {
		banner += "\n" + m.theme.Help.Render("working…")
	}

	switch m.scr {
	case screenShow, screenDiff:
		help := m.theme.Help.Render("↑/↓ scroll • esc/b back • q home")
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(m.view.View()) + "\n" + help)

	default:
		body := m.list.View()
		if m.workspaceFound && len(m.refs) == 0 {
			body = "No stored schemas yet.\n\nRun `aif infer --save` to add one."
		}
		help := m.theme.Help.Render(fmt.Sprintf("enter show • space mark (%d/%d) • d diff • r refresh • / search • q quit", len(m.marked), maxMarked))
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(body) + "\n" + help)
	}
}
