package tabular

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/tabsql/internal/dataset"
)

func numbers(n int) *dataset.Dataset {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{int64(i), fmt.Sprintf("row %d", i)}
	}
	return dataset.New(
		[]dataset.Column{{Name: "n", Type: dataset.Int}, {Name: "label", Type: dataset.String}},
		rows,
	)
}

func TestSelectIsClampedAndIdempotent(t *testing.T) {
	for _, size := range []int{0, 1, 2, 17} {
		for _, n := range []int{math.MinInt, -5, -1, 0, 1, 3, 16, 17, 100, math.MaxInt} {
			t.Run(fmt.Sprintf("size=%d/n=%d", size, n), func(t *testing.T) {
				s := New(Source{Kind: FromName, Text: "t"}, numbers(size))
				s.Select(n)
				first := s.Cursor()
				s.Select(n)

				assert.Equal(t, first, s.Cursor())
				assert.GreaterOrEqual(t, s.Cursor(), 0)
				assert.LessOrEqual(t, s.Cursor(), max(size-1, 0))
			})
		}
	}
}

func TestRelativeSelectionSaturates(t *testing.T) {
	s := New(Source{}, numbers(10))

	s.SelectUp(3)
	assert.Equal(t, 0, s.Cursor())
	s.SelectDown(4)
	assert.Equal(t, 4, s.Cursor())
	s.SelectDown(math.MaxInt)
	assert.Equal(t, 9, s.Cursor())
	s.SelectUp(math.MaxInt)
	assert.Equal(t, 0, s.Cursor())

	s.SetPageLen(6)
	s.SelectDownHalfPage()
	assert.Equal(t, 3, s.Cursor())
	s.SelectDownFullPage()
	assert.Equal(t, 9, s.Cursor())
	s.SelectUpFullPage()
	assert.Equal(t, 3, s.Cursor())
	s.SelectUpHalfPage()
	assert.Equal(t, 0, s.Cursor())

	s.SelectLast()
	assert.Equal(t, 9, s.Cursor())
	s.SelectFirst()
	assert.Equal(t, 0, s.Cursor())
}

func TestSelectRandomOnEmptyDataset(t *testing.T) {
	s := New(Source{}, numbers(0))
	assert.NotPanics(t, s.SelectRandom)
	assert.Equal(t, 0, s.Cursor())

	s = New(Source{}, numbers(5))
	for range 20 {
		s.SelectRandom()
		assert.True(t, s.Cursor() >= 0 && s.Cursor() < 5)
	}
}

func TestViewSwitching(t *testing.T) {
	s := New(Source{}, numbers(1))
	assert.Equal(t, TableView, s.View())
	s.SwitchView()
	assert.Equal(t, SheetView, s.View())
	s.SwitchView()
	assert.Equal(t, TableView, s.View())
	s.ShowSheet()
	assert.Equal(t, SheetView, s.View())
	s.ShowTable()
	assert.Equal(t, TableView, s.View())
}

func TestSheetScrollSaturatesAtZero(t *testing.T) {
	s := New(Source{}, numbers(1))
	s.ScrollUp()
	assert.Equal(t, 0, s.Scroll())
	s.ScrollDown()
	s.ScrollDown()
	s.ScrollUp()
	assert.Equal(t, 1, s.Scroll())
}

func TestSheetScrollStopsAtLimit(t *testing.T) {
	s := New(Source{}, numbers(1))
	s.SetScrollLimit(3)
	for range 10 {
		s.ScrollDown()
	}
	assert.Equal(t, 3, s.Scroll())
	s.ScrollUp()
	assert.Equal(t, 2, s.Scroll())

	s.SetScrollLimit(1)
	assert.Equal(t, 1, s.Scroll())
	s.SetScrollLimit(-4)
	assert.Equal(t, 0, s.Scroll())
	s.ScrollDown()
	assert.Equal(t, 0, s.Scroll())
}

func TestCancelSearchRestoresDatasetAndCursor(t *testing.T) {
	for _, pattern := range []string{"", "row 1", "ROW", "nothing"} {
		t.Run(pattern, func(t *testing.T) {
			s := New(Source{}, numbers(12))
			s.Select(7)
			want := s.Committed().Clone()

			s.SearchPattern(pattern)
			s.SearchPattern(pattern + "")
			s.CancelSearch()

			assert.Equal(t, want, s.Dataset())
			assert.Equal(t, 7, s.Cursor())
			_, searching := s.Searching()
			assert.False(t, searching)
		})
	}
}

func TestSearchPresentsMatchesWithoutCommitting(t *testing.T) {
	s := New(Source{}, numbers(12))
	s.SearchPattern("row 1")

	assert.Equal(t, []int{1, 10, 11}, s.Matches())
	assert.Equal(t, 3, s.Dataset().Len())
	assert.Equal(t, 12, s.Committed().Len())
	pattern, searching := s.Searching()
	assert.True(t, searching)
	assert.Equal(t, "row 1", pattern)
}

func TestCommitSearchKeepsMatchingSubsequence(t *testing.T) {
	s := New(Source{}, numbers(25))
	s.SearchPattern("row 2")
	s.CommitSearch()

	got := s.Committed()
	require.Equal(t, 6, got.Len())
	assert.Equal(t, int64(2), got.Rows[0][0])
	assert.Equal(t, int64(20), got.Rows[1][0])
	assert.Equal(t, int64(24), got.Rows[5][0])

	once := got.Clone()
	s.SearchPattern("row 2")
	s.CommitSearch()
	assert.Equal(t, once, s.Committed())
}

func TestRollbackRestoresCreationDataset(t *testing.T) {
	original := numbers(5)
	s := New(Source{}, original)

	s.SetDataset(numbers(2))
	s.SearchPattern("row 1")
	s.CommitSearch()
	s.Select(0)
	s.ScrollDown()
	s.Rollback()

	assert.Equal(t, original, s.Dataset())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 0, s.Scroll())
}

func TestSetDatasetDropsSearchAndClampsCursor(t *testing.T) {
	s := New(Source{}, numbers(10))
	s.Select(8)
	s.SetDataset(numbers(3))
	assert.Equal(t, 2, s.Cursor())

	s.SearchPattern("row")
	s.SetDataset(numbers(3))
	_, searching := s.Searching()
	assert.False(t, searching)
	assert.Equal(t, 3, s.Dataset().Len())
}

func TestStateOwnsItsData(t *testing.T) {
	ds := numbers(2)
	s := New(Source{}, ds)
	ds.Rows[0][1] = "mutated"

	assert.Equal(t, "row 0", s.Dataset().Rows[0][1])
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "data", New(Source{Kind: FromName, Text: "data"}, nil).Title())
	assert.Equal(t, "SELECT 1", New(Source{Kind: FromQuery, Text: "SELECT 1"}, nil).Title())
	assert.Equal(t, "schema", New(Source{Kind: FromSchema}, nil).Title())

	s := New(Source{Kind: FromHelp}, nil)
	assert.Equal(t, "help", s.Title())
	s.Rename("docs")
	assert.Equal(t, "docs", s.Title())
	assert.Equal(t, FromHelp, s.Source().Kind)
}

func TestRollbackDuringSearchRestoresPreSearchCursor(t *testing.T) {
	for _, pattern := range []string{"", "row", "row 9", "nothing"} {
		t.Run(pattern, func(t *testing.T) {
			original := numbers(10)
			s := New(Source{}, original)
			s.Select(5)
			s.SearchPattern(pattern)
			s.SelectLast()
			s.Rollback()

			assert.Equal(t, original, s.Dataset())
			assert.Equal(t, 5, s.Cursor())
		})
	}
}

func TestRollbackDuringSearchClampsCursorToBase(t *testing.T) {
	s := New(Source{}, numbers(3))
	s.SetDataset(numbers(10))
	s.Select(8)
	s.SearchPattern("row")
	s.Rollback()

	assert.Equal(t, 3, s.Dataset().Len())
	assert.Equal(t, 2, s.Cursor())
}

func TestResetReplacesRollbackSnapshot(t *testing.T) {
	s := New(Source{Kind: FromSchema}, numbers(2))
	s.Reset(numbers(6))
	s.SetDataset(numbers(1))
	s.Rollback()

	assert.Equal(t, numbers(6), s.Dataset())
}
