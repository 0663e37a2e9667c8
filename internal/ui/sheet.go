package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/nhath/tabsql/internal/tabular"
)

// sheetLines lays out the cursor row as one labelled block per column.
// Values are word wrapped to width; words longer than a line are broken.
func sheetLines(s *tabular.State, width int) []string {
	ds := s.Dataset()
	if ds.Len() == 0 {
		return []string{MetaStyle.Render("no rows")}
	}
	i := s.Cursor()

	keyWidth := 0
	for _, c := range ds.Columns {
		keyWidth = max(keyWidth, lipgloss.Width(c.Name))
	}
	valueWidth := max(width-keyWidth-2, 10)

	lines := []string{MetaStyle.Render(fmt.Sprintf("row %d of %d", i+1, ds.Len()))}
	for j, c := range ds.Columns {
		value := wrap.String(wordwrap.String(ds.Cell(i, j), valueWidth), valueWidth)
		for k, part := range strings.Split(value, "\n") {
			label := ""
			if k == 0 {
				label = c.Name
			}
			lines = append(lines, SheetKeyStyle.Render(padding.String(label, uint(keyWidth)))+"  "+part)
		}
	}
	return lines
}

// renderSheet shows height lines of the sheet starting at the tab's scroll
// offset. The offset is clamped so the last line stays reachable.
func renderSheet(s *tabular.State, width, height int) string {
	lines := sheetLines(s, width)
	offset := min(s.Scroll(), max(len(lines)-height, 0))
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n")
}
