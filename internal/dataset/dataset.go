// Package dataset holds the in-memory tabular values shared by tabs, the SQL
// backend and the format adapters.
package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Type is the logical type of a column.
type Type int

const (
	String Type = iota
	Int
	Float
	Bool
	Time
)

// String returns the display name of the type
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	default:
		return "str"
	}
}

// SQL returns the DuckDB column type used when registering a column.
func (t Type) SQL() string {
	switch t {
	case Int:
		return "BIGINT"
	case Float:
		return "DOUBLE"
	case Bool:
		return "BOOLEAN"
	case Time:
		return "TIMESTAMP"
	default:
		return "VARCHAR"
	}
}

// Column describes one column of a Dataset
type Column struct {
	Name string
	Type Type
}

// Dataset is a rectangular table of normalized values. Every cell is nil,
// string, int64, float64, bool or time.Time, matching its column Type.
type Dataset struct {
	Columns []Column
	Rows    [][]any
}

// New creates a dataset from columns and rows. Rows are used as-is.
func New(cols []Column, rows [][]any) *Dataset {
	if rows == nil {
		rows = [][]any{}
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy, so the result can be mutated without affecting d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	cols := make([]Column, len(d.Columns))
	copy(cols, d.Columns)
	rows := make([][]any, len(d.Rows))
	for i, r := range d.Rows {
		row := make([]any, len(r))
		copy(row, r)
		rows[i] = row
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// Take returns a new dataset holding copies of the rows at the given indices.
func (d *Dataset) Take(indices []int) *Dataset {
	cols := make([]Column, len(d.Columns))
	copy(cols, d.Columns)
	rows := make([][]any, 0, len(indices))
	for _, i := range indices {
		row := make([]any, len(d.Rows[i]))
		copy(row, d.Rows[i])
		rows = append(rows, row)
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// Cell returns the formatted value at row i, column j.
func (d *Dataset) Cell(i, j int) string {
	if i < 0 || i >= len(d.Rows) || j < 0 || j >= len(d.Rows[i]) {
		return ""
	}
	return Format(d.Rows[i][j])
}

// Match returns the indices of rows where any formatted cell contains
// pattern, ignoring case. An empty pattern matches every row.
func (d *Dataset) Match(pattern string) []int {
	needle := strings.ToLower(pattern)
	matches := make([]int, 0, len(d.Rows))
	for i, row := range d.Rows {
		if needle == "" {
			matches = append(matches, i)
			continue
		}
		for _, v := range row {
			if strings.Contains(strings.ToLower(Format(v)), needle) {
				matches = append(matches, i)
				break
			}
		}
	}
	return matches
}

// Format renders a cell value for display and matching. Nil renders empty.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	default:
		return Format(Normalize(v))
	}
}
