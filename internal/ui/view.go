package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/tabsql/internal/statusbar"
	"github.com/nhath/tabsql/internal/tabular"
	"github.com/nhath/tabsql/internal/ui/components/suggestions"
	datatable "github.com/nhath/tabsql/internal/ui/components/table"
	"github.com/nhath/tabsql/internal/ui/highlight"
	"github.com/nhath/tabsql/internal/ui/icons"
)

const (
	maxTabTitle       = 24
	paletteCandidates = 10
	maxPaletteWidth   = 80
)

// View renders the tab bar, the active tab and the status line, with the
// palette on top when it is open
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	bodyHeight := m.bodyHeight()
	body := lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderBody(bodyHeight))

	main := lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), body, m.renderStatusLine())
	if m.session.App.Palette.Visible() {
		main = overlay.Composite(m.renderPalette(), main, overlay.Center, overlay.Center, 0, 0)
	}
	return main
}

func (m Model) renderTabBar() string {
	tabs := m.session.App.Tabs
	active := tabs.Idx()
	var parts []string
	for i, s := range tabs.All() {
		title := truncate.StringWithTail(s.Title(), maxTabTitle, "…")
		label := fmt.Sprintf("%d %s %s", i+1, icons.ForSource(s.Source().Kind), title)
		if i == active {
			parts = append(parts, TabActiveStyle.Render(label))
		} else {
			parts = append(parts, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m Model) renderBody(height int) string {
	s := m.session.App.Tabs.Active()
	if s == nil {
		return MetaStyle.Render("no tabs, press " + m.keys.Command.Help().Key + " to run a command")
	}
	if s.View() == tabular.SheetView {
		return renderSheet(s, m.width, height)
	}

	view := datatable.FromState(s, m.width).View()
	if s.Source().Kind == tabular.FromHelp {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.help.FullHelpView(m.keys.FullHelp()))
	}
	return view
}

func (m Model) renderStatusLine() string {
	bar := m.session.App.StatusBar
	var left string
	switch bar.Mode() {
	case statusbar.Prompt:
		left = PromptModeStyle.Render("COMMAND") + " " + bar.InputView()
	case statusbar.Search:
		left = SearchModeStyle.Render("SEARCH") + " " + bar.InputView()
	case statusbar.Error:
		left = ErrorStyle.Render(icons.IconError + " " + bar.Message())
	default:
		left = m.renderInfo()
	}

	right := m.renderPosition()
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := truncate.String(left+strings.Repeat(" ", gap)+right, uint(m.width))
	return StatusBarStyle.Width(m.width).Render(line)
}

// renderInfo shows the view mode and the last notice, or where the active
// tab's data came from
func (m Model) renderInfo() string {
	s := m.session.App.Tabs.Active()
	mode := "TABLE"
	if s != nil && s.View() == tabular.SheetView {
		mode = "SHEET"
	}
	out := ModeStyle.Render(mode) + " "

	if msg := m.session.App.StatusBar.Message(); msg != "" {
		return out + SuccessStyle.Render(icons.IconSuccess+" "+msg)
	}
	if s == nil {
		return out
	}
	switch src := s.Source(); src.Kind {
	case tabular.FromQuery:
		return out + highlight.SQL(src.Text, m.highlightStyle)
	case tabular.FromName:
		return out + src.Text
	default:
		return out + MetaStyle.Render(s.Title())
	}
}

// renderPosition shows the search pattern and the cursor row
func (m Model) renderPosition() string {
	s := m.session.App.Tabs.Active()
	if s == nil {
		return ""
	}
	var parts []string
	if pattern, ok := s.Searching(); ok {
		parts = append(parts, fmt.Sprintf("%s %q %d matches", icons.IconSearch, pattern, len(s.Matches())))
	}
	n := s.Dataset().Len()
	row := 0
	if n > 0 {
		row = s.Cursor() + 1
	}
	parts = append(parts, fmt.Sprintf("%d/%d", row, n))
	return MetaStyle.Render(strings.Join(parts, "  ") + " ")
}

func (m Model) renderPalette() string {
	p := m.session.App.Palette
	width := min(max(m.width-4, 20), maxPaletteWidth)

	input := []rune(p.Input())
	cur := p.Cursor()
	cursorChar := " "
	after := ""
	if cur < len(input) {
		cursorChar = string(input[cur])
		after = string(input[cur+1:])
	}
	var content strings.Builder
	content.WriteString(PromptStyle.Render("> "))
	content.WriteString(string(input[:cur]))
	content.WriteString(lipgloss.NewStyle().Reverse(true).Render(cursorChar))
	content.WriteString(after)

	list := suggestions.List{
		Items:    p.Candidates(),
		Selected: p.Selected(),
		MaxShow:  paletteCandidates,
		Width:    width - 2,
		Marker:   icons.IconSelect,
		Styles: suggestions.Styles{
			Item:     SuggestionItemStyle,
			Selected: SuggestionSelectedStyle,
			Empty:    MetaStyle,
		},
	}
	content.WriteString("\n" + list.View())

	return PopupStyle.
		Width(width).
		BorderForeground(BorderColor()).
		Background(PopupBg()).
		Render(content.String())
}
