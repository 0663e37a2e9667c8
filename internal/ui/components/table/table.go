package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/nhath/tabsql/internal/config"
	"github.com/nhath/tabsql/internal/dataset"
	"github.com/nhath/tabsql/internal/tabular"
)

// Nord colors (matching OpenCode theme)
const (
	ColorForeground = "#D8DEE9" // Nord4: Light gray
	ColorComment    = "#4C566A" // Nord3: Dark gray
	ColorGreen      = "#A3BE8C" // Nord14: Green
	ColorOrange     = "#D08770" // Nord12: Orange
	ColorPink       = "#B48EAD" // Nord15: Pink
	ColorPurple     = "#B48EAD" // Nord15: Purple
	ColorYellow     = "#EBCB8B" // Nord13: Yellow
	ColorTeal       = "#8FBCBB" // Nord7: Teal
)

// RowNumberKey is the column key of the leading row number column
const RowNumberKey = "#"

// maxColumnWidth caps a column so one long value does not push the rest off screen
const maxColumnWidth = 40

var (
	foreground = lipgloss.Color(ColorForeground)
	header     = lipgloss.Color(ColorTeal)
	highlight  = lipgloss.Color(ColorGreen)
	faint      = lipgloss.Color(ColorComment)
)

// Init applies theme colors to every table built afterwards
func Init(theme config.Theme) {
	if theme.TextPrimary != "" {
		foreground = lipgloss.Color(theme.TextPrimary)
	}
	if theme.Highlight != "" {
		header = lipgloss.Color(theme.Highlight)
	}
	if theme.Success != "" {
		highlight = lipgloss.Color(theme.Success)
	}
	if theme.TextFaint != "" {
		faint = lipgloss.Color(theme.TextFaint)
	}
}

// New creates a new bubble-table with the current theme (no background)
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(foreground)).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(header).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)).
		Focused(true).
		BorderRounded()
}

// Window returns the half-open range of rows on the page holding cursor
func Window(cursor, pageLen, total int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	pageLen = max(pageLen, 1)
	cursor = min(max(cursor, 0), total-1)
	start = cursor / pageLen * pageLen
	return start, min(start+pageLen, total)
}

// ColumnKey is the bubble-table key of dataset column j. Names are not used
// as keys because they may repeat.
func ColumnKey(j int) string { return "c" + strconv.Itoa(j) }

// FromState builds the page of s that holds its cursor, with the cursor row
// highlighted and a leading row number column.
func FromState(s *tabular.State, maxWidth int) bbtable.Model {
	ds := s.Dataset()
	start, end := Window(s.Cursor(), s.PageLen(), ds.Len())

	numWidth := len(strconv.Itoa(max(end, 1))) + 2
	cols := []bbtable.Column{
		bbtable.NewColumn(RowNumberKey, RowNumberKey, numWidth).
			WithStyle(lipgloss.NewStyle().Foreground(faint).Align(lipgloss.Right)),
	}
	widths := calculateColumnWidths(ds, start, end)
	for j, c := range ds.Columns {
		cols = append(cols, bbtable.NewColumn(ColumnKey(j), c.Name, widths[j]))
	}

	rows := make([]bbtable.Row, 0, end-start)
	for i := start; i < end; i++ {
		data := bbtable.RowData{RowNumberKey: strconv.Itoa(i + 1)}
		for j := range ds.Columns {
			v := cellValue(ds, i, j)
			data[ColumnKey(j)] = bbtable.NewStyledCell(dataset.Format(v), GetValueStyle(v))
		}
		rows = append(rows, bbtable.NewRow(data))
	}

	t := New(cols).
		WithRows(rows).
		WithNoPagination().
		WithHorizontalFreezeColumnCount(1)
	if maxWidth > 0 {
		t = t.WithMaxTotalWidth(maxWidth)
	}
	if len(rows) > 0 {
		t = t.WithHighlightedRow(s.Cursor() - start)
	}
	if ds.Len() == 0 {
		t = t.WithStaticFooter(fmt.Sprintf("no rows, %d columns", ds.Width()))
	}
	return t
}

func cellValue(ds *dataset.Dataset, i, j int) any {
	if j >= len(ds.Rows[i]) {
		return nil
	}
	return ds.Rows[i][j]
}

// calculateColumnWidths sizes every column to its header and the visible rows
func calculateColumnWidths(ds *dataset.Dataset, start, end int) []int {
	widths := make([]int, len(ds.Columns))
	for j, c := range ds.Columns {
		widths[j] = lipgloss.Width(c.Name)
	}
	for i := start; i < end; i++ {
		for j := range ds.Columns {
			if w := lipgloss.Width(ds.Cell(i, j)); w > widths[j] {
				widths[j] = w
			}
		}
	}

	// Add padding
	for j := range widths {
		widths[j] = min(widths[j]+2, maxColumnWidth)
	}
	return widths
}

// GetValueStyle returns a lipgloss style based on the value type
func GetValueStyle(v any) lipgloss.Style {
	switch v.(type) {
	case nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPink)).Italic(true)
	case int64, float64:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPurple))
	case bool:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange))
	case time.Time:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	}
}
