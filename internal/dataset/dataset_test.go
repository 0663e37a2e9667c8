package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Dataset {
	return New(
		[]Column{{Name: "a", Type: Int}, {Name: "b", Type: String}},
		[][]any{{int64(1), "Alpha"}, {int64(2), "beta"}, {int64(3), nil}},
	)
}

func TestCloneIsIndependent(t *testing.T) {
	d := sample()
	c := d.Clone()
	c.Rows[0][1] = "changed"
	c.Columns[0].Name = "z"

	assert.Equal(t, "Alpha", d.Rows[0][1])
	assert.Equal(t, "a", d.Columns[0].Name)
}

func TestTake(t *testing.T) {
	d := sample()
	got := d.Take([]int{2, 0})

	require.Equal(t, 2, got.Len())
	assert.Equal(t, int64(3), got.Rows[0][0])
	assert.Equal(t, int64(1), got.Rows[1][0])
	assert.Equal(t, d.Columns, got.Columns)
}

func TestMatch(t *testing.T) {
	d := sample()

	tests := []struct {
		pattern string
		want    []int
	}{
		{"", []int{0, 1, 2}},
		{"alpha", []int{0}},
		{"BETA", []int{1}},
		{"3", []int{2}},
		{"nothing", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Match(tt.pattern))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "42", Format(int64(42)))
	assert.Equal(t, "1.5", Format(1.5))
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "2024-03-01", Format(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-01 10:30:00", Format(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "7", Format(int32(7)))
}

func TestFromStringsInfersTypes(t *testing.T) {
	d := FromStrings(
		[]string{"id", "score", "name", "flag", "mixed"},
		[][]string{
			{"1", "2.5", "x", "true", "1"},
			{"2", "3", "y", "false", "a"},
			{"", "", "", "", ""},
		},
	)

	assert.Equal(t, []Column{
		{Name: "id", Type: Int},
		{Name: "score", Type: Float},
		{Name: "name", Type: String},
		{Name: "flag", Type: Bool},
		{Name: "mixed", Type: String},
	}, d.Columns)
	assert.Equal(t, []any{int64(1), 2.5, "x", true, "1"}, d.Rows[0])
	assert.Equal(t, []any{int64(2), 3.0, "y", false, "a"}, d.Rows[1])
	assert.Equal(t, []any{nil, nil, nil, nil, nil}, d.Rows[2])
}

func TestInferNormalizesDriverValues(t *testing.T) {
	d := Infer([]string{"n", "raw"}, [][]any{
		{int32(4), []byte("bytes")},
		{uint64(5), nil},
	})

	assert.Equal(t, Int, d.Columns[0].Type)
	assert.Equal(t, String, d.Columns[1].Type)
	assert.Equal(t, int64(4), d.Rows[0][0])
	assert.Equal(t, "bytes", d.Rows[0][1])
	assert.Nil(t, d.Rows[1][1])
}

func TestNormalizeBinaryAsHex(t *testing.T) {
	assert.Equal(t, "plain", Normalize([]byte("plain")))
	assert.Equal(t, `\xfffe00`, Normalize([]byte{0xFF, 0xFE, 0x00}))
	assert.Equal(t, "", Normalize([]byte{}))
}

func TestInferMakesColumnNamesUnique(t *testing.T) {
	d := Infer([]string{"a", "A", "b", "a", "a_1"}, [][]any{{1, 2, 3, 4, 5}})

	var names []string
	for _, c := range d.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "A_1", "b", "a_2", "a_1_1"}, names)
}
