package table

import (
	"testing"

	bbtable "github.com/evertras/bubble-table/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/tabsql/internal/dataset"
	"github.com/nhath/tabsql/internal/tabular"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name                   string
		cursor, pageLen, total int
		wantStart, wantEnd     int
	}{
		{"empty", 0, 10, 0, 0, 0},
		{"first page", 3, 10, 25, 0, 10},
		{"second page", 10, 10, 25, 10, 20},
		{"short last page", 24, 10, 25, 20, 25},
		{"cursor past end", 99, 10, 25, 20, 25},
		{"zero page length", 2, 0, 5, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.cursor, tt.pageLen, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func state(n, pageLen int) *tabular.State {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{int64(i), nil}
	}
	ds := dataset.New([]dataset.Column{
		{Name: "n", Type: dataset.Int},
		{Name: "n", Type: dataset.String},
	}, rows)
	s := tabular.New(tabular.Source{Kind: tabular.FromName, Text: "t"}, ds)
	s.SetPageLen(pageLen)
	return s
}

func TestFromStateShowsCursorPage(t *testing.T) {
	s := state(25, 10)
	s.Select(13)

	m := FromState(s, 80)
	rows := m.GetVisibleRows()
	require.Len(t, rows, 10)
	assert.Equal(t, "11", rows[0].Data[RowNumberKey])
	assert.Equal(t, "20", rows[9].Data[RowNumberKey])
	assert.Equal(t, 3, m.GetHighlightedRowIndex())

	cell, ok := rows[0].Data[ColumnKey(0)].(bbtable.StyledCell)
	require.True(t, ok)
	assert.Equal(t, "10", cell.Data)
	assert.Contains(t, rows[0].Data, ColumnKey(1))
}

func TestFromStateEmptyDataset(t *testing.T) {
	s := state(0, 10)
	m := FromState(s, 0)
	assert.Empty(t, m.GetVisibleRows())
	assert.NotEmpty(t, m.View())
}

func TestColumnWidthsAreCapped(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	ds := dataset.New([]dataset.Column{{Name: "a"}, {Name: "b"}}, [][]any{{string(long), "yy"}})
	assert.Equal(t, []int{maxColumnWidth, 3}, calculateColumnWidths(ds, 0, 1))
}

func TestGetValueStyle(t *testing.T) {
	assert.True(t, GetValueStyle(nil).GetItalic())
	assert.Equal(t, GetValueStyle(int64(1)).GetForeground(), GetValueStyle(2.5).GetForeground())
	assert.NotEqual(t, GetValueStyle(true).GetForeground(), GetValueStyle("x").GetForeground())
}
