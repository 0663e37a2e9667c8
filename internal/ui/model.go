// internal/ui/model.go
// Root Model struct, constructor, Init and Update
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/tabsql/internal/app"
	"github.com/nhath/tabsql/internal/config"
	"github.com/nhath/tabsql/internal/keymap"
	"github.com/nhath/tabsql/internal/tabular"
	datatable "github.com/nhath/tabsql/internal/ui/components/table"
	"github.com/nhath/tabsql/internal/ui/highlight"
)

// frameInterval is how often queued actions are drained without input
const frameInterval = 100 * time.Millisecond

// chromeHeight is the tab bar, the status line and the table borders and header
const chromeHeight = 6

// frameMsg drives the per-frame queue drain
type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model is the root Bubble Tea model
type Model struct {
	ctx     context.Context
	session *app.Session
	keys    keymap.Bindings
	help    help.Model

	highlightStyle string
	width, height  int
}

// NewModel creates the UI for session. Styles are taken from cfg.
func NewModel(ctx context.Context, session *app.Session, cfg *config.Config) Model {
	InitStyles(cfg.Theme)
	datatable.Init(cfg.Theme)

	style := cfg.HighlightStyle
	if style == "" {
		style = highlight.DefaultStyle
	}
	return Model{
		ctx:            ctx,
		session:        session,
		keys:           keymap.New(cfg.Keys),
		help:           help.New(),
		highlightStyle: style,
	}
}

// Init starts the frame ticker
func (m Model) Init() tea.Cmd {
	return frame()
}

// Update applies one message. Every key press and every frame drains the
// queue first.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.session.App.Tabs.SetPageLen(max(msg.Height-chromeHeight, 1))
		m.syncScroll()
		return m, nil

	case frameMsg:
		m.session.Drain(m.ctx)
		if m.session.App.Quitting() {
			return m, tea.Quit
		}
		return m, frame()

	case tea.KeyMsg:
		m.session.Drain(m.ctx)
		for _, act := range m.keys.Resolve(msg, m.keyContext()) {
			m.syncScroll()
			m.session.Invoke(m.ctx, act)
		}
		m.syncScroll()
		if m.session.App.Quitting() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// bodyHeight is what is left between the tab bar and the status line
func (m Model) bodyHeight() int { return max(m.height-2, 1) }

// syncScroll tells the active tab how far its sheet can scroll at the
// current size
func (m Model) syncScroll() {
	s := m.session.App.Tabs.Active()
	if s == nil || m.width == 0 || s.View() != tabular.SheetView {
		return
	}
	s.SetScrollLimit(len(sheetLines(s, m.width)) - m.bodyHeight())
}

func (m Model) keyContext() keymap.Context {
	a := m.session.App
	ctx := keymap.Context{
		Palette: a.Palette.Visible(),
		Mode:    a.StatusBar.Mode(),
		View:    tabular.TableView,
		Prompt:  a.StatusBar.Value(),
	}
	if s := a.Tabs.Active(); s != nil {
		ctx.View = s.View()
	}
	return ctx
}
