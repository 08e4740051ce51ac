package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicToast = "Unexpected error (see logs)"

// safeModel recovers panics from the wrapped model so the terminal is restored
// and the user lands back on the schema list.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

var _ tea.Model = safeModel{}

func (s safeModel) Init() tea.Cmd { return s.m.Init() }

func (s safeModel) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if s.caught(recover(), "update") {
			s.m = s.m.afterPanic()
			next, cmd = s, nil
		}
	}()

	inner, c := s.m.Update(msg)
	switch v := inner.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if s.caught(recover(), "view") {
			out = panicToast
		}
	}()
	return s.m.View()
}

func (s safeModel) caught(r any, where string) bool {
	if r == nil {
		return false
	}
	s.log.Error("panic.recovered",
		"where", "tui."+where,
		"screen", s.m.scr,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
	return true
}

// afterPanic drops in-flight state that may be inconsistent.
func (m model) afterPanic() model {
	m.scr = screenHome
	m.busy = false
	m.marked = nil
	m.toast = panicToast
	return m
}
