package palette

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHistory []string

func (h fakeHistory) Search(substr string, limit int) []string {
	var out []string
	for i := len(h) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(h[i]), substr) {
			out = append(out, h[i])
		}
	}
	return out
}

var usages = []string{"schema", "goto <row>", "filter <expr>"}

func TestEditing(t *testing.T) {
	p := New(nil, usages)
	assert.False(t, p.Visible())

	p.Show("ab")
	assert.True(t, p.Visible())
	assert.Equal(t, 2, p.Cursor())

	p.Insert('c')
	p.Start()
	p.Insert('x')
	assert.Equal(t, "xabc", p.Input())

	p.Next()
	p.DeleteNext()
	assert.Equal(t, "xac", p.Input())
	p.DeletePrev()
	assert.Equal(t, "xc", p.Input())
	assert.Equal(t, 1, p.Cursor())

	p.Prev()
	p.DeletePrev()
	assert.Equal(t, 0, p.Cursor())
	p.End()
	p.Next()
	p.DeleteNext()
	assert.Equal(t, 2, p.Cursor())
	assert.Equal(t, "xc", p.Input())

	p.Hide()
	assert.False(t, p.Visible())
	assert.Equal(t, "", p.Input())
}

func TestCandidatesPutHistoryFirst(t *testing.T) {
	p := New(fakeHistory{"filter a > 1", "schema", "Q SELECT 1"}, usages)
	p.Show("")

	assert.Equal(t, []string{"Q SELECT 1", "schema", "filter a > 1", "goto <row>", "filter <expr>"}, p.Candidates())

	p.Show("FIL")
	assert.Equal(t, []string{"filter a > 1", "filter <expr>"}, p.Candidates())
}

func TestSelection(t *testing.T) {
	p := New(fakeHistory{"filter a > 1"}, usages)
	p.Show("fil")
	assert.Equal(t, "fil", p.Value())

	p.SelectBelow()
	assert.Equal(t, "filter a > 1", p.Value())
	p.SelectBelow()
	assert.Equal(t, "filter", p.Value())
	p.SelectBelow()
	assert.Equal(t, 1, p.Selected())

	p.SelectAbove()
	p.SelectAbove()
	p.SelectAbove()
	assert.Equal(t, -1, p.Selected())

	p.SelectBelow()
	p.Insert('t')
	assert.Equal(t, -1, p.Selected())
	assert.Equal(t, "filt", p.Value())
}
