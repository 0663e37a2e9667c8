package ui

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/app"
	"github.com/nhath/tabsql/internal/config"
	"github.com/nhath/tabsql/internal/dataset"
	"github.com/nhath/tabsql/internal/db"
	"github.com/nhath/tabsql/internal/statusbar"
	"github.com/nhath/tabsql/internal/tabular"
	"github.com/nhath/tabsql/internal/testutil"
)

func newModel(t *testing.T) Model {
	t.Helper()
	backend, err := db.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	session := app.NewSession(app.New(nil, testutil.NewTestLogger(t)), backend)
	m := NewModel(context.Background(), session, config.DefaultConfig())
	return update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		m = update(m, k)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func withNumbers(t *testing.T, m Model, n int) Model {
	t.Helper()
	content := "a\n"
	for i := 1; i <= n; i++ {
		content += strconv.Itoa(i) + "\n"
	}
	path := filepath.Join(t.TempDir(), "numbers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, m.session.Run(context.Background(), action.ImportDsv{
		Path: path, Separator: ',', Quote: '"', HasHeader: true,
	}))
	return m
}

func TestWindowSizeSetsPageLength(t *testing.T) {
	m := withNumbers(t, newModel(t), 5)
	assert.Equal(t, 30-chromeHeight, m.session.App.Tabs.Active().PageLen())

	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 3})
	assert.Equal(t, 1, m.session.App.Tabs.Active().PageLen())
}

func TestKeysMoveCursorAndSwitchView(t *testing.T) {
	m := withNumbers(t, newModel(t), 5)
	s := m.session.App.Tabs.Active()

	m = press(m, runes("j"), runes("j"))
	assert.Equal(t, 2, s.Cursor())
	m = press(m, runes("G"))
	assert.Equal(t, 4, s.Cursor())
	m = press(m, runes("k"))
	assert.Equal(t, 3, s.Cursor())

	m = press(m, keyOf(tea.KeyEnter), runes("j"))
	assert.Equal(t, tabular.SheetView, s.View())
	assert.Equal(t, 0, s.Scroll(), "a sheet that fits has nothing to scroll")
	assert.Equal(t, 3, s.Cursor())

	m = press(m, keyOf(tea.KeyEsc))
	assert.Equal(t, tabular.TableView, s.View())
}

func TestPromptRunsCommand(t *testing.T) {
	m := withNumbers(t, newModel(t), 5)

	m = press(m, runes(":"))
	assert.Equal(t, statusbar.Prompt, m.session.App.StatusBar.Mode())
	m = press(m, runes("F a > 2"), keyOf(tea.KeyEnter))

	assert.Equal(t, statusbar.Info, m.session.App.StatusBar.Mode())
	assert.Equal(t, 3, m.session.App.Tabs.Active().Dataset().Len())
}

func TestCommandErrorIsShown(t *testing.T) {
	m := newModel(t)
	m = press(m, runes(":"), runes("bogus"), keyOf(tea.KeyEnter))

	assert.Equal(t, statusbar.Error, m.session.App.StatusBar.Mode())
	assert.Contains(t, m.View(), "unknown command")
}

func TestSearchKeys(t *testing.T) {
	m := withNumbers(t, newModel(t), 5)

	m = press(m, runes("/"), runes("3"))
	assert.Equal(t, 1, m.session.App.Tabs.Active().Dataset().Len())
	assert.Contains(t, m.View(), "1 matches")

	m = press(m, keyOf(tea.KeyEsc))
	assert.Equal(t, 5, m.session.App.Tabs.Active().Dataset().Len())
	assert.Equal(t, statusbar.Info, m.session.App.StatusBar.Mode())
}

func TestFrameDrainsQueue(t *testing.T) {
	m := newModel(t)
	require.True(t, m.session.Queue.Post(action.StatusBarError{Msg: "boom"}))

	next, cmd := m.Update(frameMsg{})
	m = next.(Model)
	assert.Equal(t, statusbar.Error, m.session.App.StatusBar.Mode())
	assert.Equal(t, "boom", m.session.App.StatusBar.Message())
	assert.NotNil(t, cmd)
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(keyOf(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = withNumbers(t, newModel(t), 1)
	_, cmd = m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPaletteOverlay(t *testing.T) {
	m := newModel(t)
	m = press(m, keyOf(tea.KeyCtrlP), runes("schem"))

	require.True(t, m.session.App.Palette.Visible())
	view := m.View()
	assert.Contains(t, view, "schem")
	assert.Contains(t, view, "schema")

	m = press(m, keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	assert.False(t, m.session.App.Palette.Visible())
	assert.Equal(t, tabular.FromSchema, m.session.App.Tabs.Active().Source().Kind)
}

func TestViewWithoutTabs(t *testing.T) {
	m := newModel(t)
	assert.Contains(t, m.View(), "no tabs")
}

func TestViewShowsTabsAndRows(t *testing.T) {
	m := withNumbers(t, newModel(t), 3)
	require.NoError(t, m.session.Run(context.Background(), action.Help{}))

	view := m.View()
	assert.Contains(t, view, "1 ")
	assert.Contains(t, view, "numbers")
	assert.Contains(t, view, "help")
	assert.Equal(t, 30, strings.Count(view, "\n")+1)
}

func TestSheetWrapsAndClampsScroll(t *testing.T) {
	InitStyles(config.DefaultConfig().Theme)
	ds := dataset.New(
		[]dataset.Column{{Name: "id"}, {Name: "text"}},
		[][]any{{"1", strings.Repeat("word ", 20)}},
	)
	s := tabular.New(tabular.Source{Kind: tabular.FromName, Text: "t"}, ds)

	lines := sheetLines(s, 30)
	assert.Greater(t, len(lines), 3)
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 30)
	}

	for range 100 {
		s.ScrollDown()
	}
	out := renderSheet(s, 30, 2)
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
	assert.Equal(t, strings.Join(lines[len(lines)-2:], "\n"), out)
}

func TestSheetScrollStopsAtLastLine(t *testing.T) {
	m := newModel(t)
	path := filepath.Join(t.TempDir(), "notes.csv")
	text := strings.TrimSpace(strings.Repeat("word ", 80))
	require.NoError(t, os.WriteFile(path, []byte("id,text\n1,"+text+"\n"), 0o644))
	require.NoError(t, m.session.Run(context.Background(), action.ImportDsv{
		Path: path, Separator: ',', Quote: '"', HasHeader: true,
	}))
	m = update(m, tea.WindowSizeMsg{Width: 30, Height: 8})
	s := m.session.App.Tabs.Active()

	m = press(m, keyOf(tea.KeyEnter))
	limit := len(sheetLines(s, 30)) - m.bodyHeight()
	require.Positive(t, limit)

	for range limit + 20 {
		m = press(m, runes("j"))
	}
	assert.Equal(t, limit, s.Scroll())

	m = press(m, runes("k"))
	assert.Equal(t, limit-1, s.Scroll())
}
