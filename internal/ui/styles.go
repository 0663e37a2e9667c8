// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/tabsql/internal/config"
)

var (
	textPrimary    lipgloss.Color
	textFaint      lipgloss.Color
	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	bgPrimary      lipgloss.Color
	bgSecondary    lipgloss.Color
	cardBg         lipgloss.Color
	popupBg        lipgloss.Color
	borderColor    lipgloss.Color
	selectedBg     lipgloss.Color

	// Styles
	StatusBarStyle          lipgloss.Style
	ModeStyle               lipgloss.Style
	PromptModeStyle         lipgloss.Style
	SearchModeStyle         lipgloss.Style
	TabActiveStyle          lipgloss.Style
	TabInactiveStyle        lipgloss.Style
	MetaStyle               lipgloss.Style
	SuccessStyle            lipgloss.Style
	ErrorStyle              lipgloss.Style
	PromptStyle             lipgloss.Style
	SheetKeyStyle           lipgloss.Style
	SuggestionItemStyle     lipgloss.Style
	SuggestionSelectedStyle lipgloss.Style
	PopupStyle              lipgloss.Style
)

// Color getter functions for use in components
func PopupBg() lipgloss.Color     { return popupBg }
func BorderColor() lipgloss.Color { return borderColor }

// InitStyles initializes the global styles based on the provided configuration theme
func InitStyles(theme config.Theme) {
	// Initialize Colors
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textFaint = lipgloss.Color(theme.TextFaint)
	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	bgPrimary = lipgloss.Color(theme.BgPrimary)
	bgSecondary = lipgloss.Color(theme.BgSecondary)
	cardBg = lipgloss.Color(theme.CardBg)
	popupBg = lipgloss.Color(theme.PopupBg)
	borderColor = lipgloss.Color(theme.Border)
	selectedBg = lipgloss.Color(theme.SelectedBg)

	// Initialize Styles
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgPrimary)

	PromptModeStyle = ModeStyle.
		Background(accentColor)

	SearchModeStyle = ModeStyle.
		Background(highlightColor)

	TabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(successColor).
		Background(cardBg)

	TabInactiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(textFaint)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	SheetKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(highlightColor)

	SuggestionItemStyle = lipgloss.NewStyle().
		Foreground(textPrimary)

	SuggestionSelectedStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(selectedBg).
		Bold(true)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(0, 1)
}
