package suggestions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowFollowsSelection(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}

	tests := []struct {
		selected  int
		wantStart int
		wantEnd   int
	}{
		{-1, 0, 3},
		{0, 0, 3},
		{2, 0, 3},
		{3, 1, 4},
		{5, 3, 6},
	}
	for _, tt := range tests {
		start, end := List{Items: items, Selected: tt.selected, MaxShow: 3}.Window()
		assert.Equal(t, tt.wantStart, start, "selected %d", tt.selected)
		assert.Equal(t, tt.wantEnd, end, "selected %d", tt.selected)
	}
}

func TestView(t *testing.T) {
	l := List{
		Items:    []string{"schema", "select <expr>", "sheet"},
		Selected: 1,
		MaxShow:  5,
		Width:    10,
		Styles:   DefaultStyles(),
	}
	lines := strings.Split(l.View(), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "  schema")
	assert.Contains(t, lines[1], "> select")
	assert.Contains(t, lines[1], "…")

	assert.Contains(t, List{Styles: DefaultStyles()}.View(), "no matches")
}
