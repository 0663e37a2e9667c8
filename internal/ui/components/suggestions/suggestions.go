// Package suggestions renders a scrolling list of candidates with one
// optionally selected.
package suggestions

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Styles for the suggestions list
type Styles struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282A36")).
			Background(lipgloss.Color("#8BE9FD")),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Italic(true),
	}
}

// List is a window onto items. Selected is -1 when nothing is selected.
// Marker prefixes the selected item and defaults to ">".
type List struct {
	Items    []string
	Selected int
	MaxShow  int
	Width    int
	Marker   string
	Styles   Styles
}

// Window returns the half-open range of items shown, keeping the selected
// item in view
func (l List) Window() (start, end int) {
	maxShow := max(l.MaxShow, 1)
	if l.Selected >= maxShow {
		start = l.Selected - maxShow + 1
	}
	end = min(start+maxShow, len(l.Items))
	return start, end
}

// View renders the visible items, one per line, truncated to Width
func (l List) View() string {
	if len(l.Items) == 0 {
		return l.Styles.Empty.Render("no matches")
	}

	marker := l.Marker
	if marker == "" {
		marker = ">"
	}
	pad := strings.Repeat(" ", lipgloss.Width(marker)+1)

	start, end := l.Window()
	views := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := l.Items[i]
		if l.Width > 2 {
			item = truncate.StringWithTail(item, uint(l.Width-2), "…")
		}
		style := l.Styles.Item
		prefix := pad
		if i == l.Selected {
			style = l.Styles.Selected
			prefix = marker + " "
		}
		views = append(views, style.Render(prefix+item))
	}
	return strings.Join(views, "\n")
}
