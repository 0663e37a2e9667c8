package dataset

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Normalize converts a value produced by a database driver or decoder into
// one of the cell representations a Dataset holds.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint:
		return fromUint(uint64(x))
	case uint64:
		return fromUint(x)
	case float32:
		return float64(x)
	case []byte:
		if utf8.Valid(x) {
			return string(x)
		}
		return `\x` + hex.EncodeToString(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// UniqueNames returns names with repeats suffixed _1, _2, ... in order of
// appearance. Names are compared ignoring case, as SQL identifiers are.
func UniqueNames(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	for j, name := range names {
		candidate := name
		for n := 1; taken[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		taken[strings.ToLower(candidate)] = true
		out[j] = candidate
	}
	return out
}

func fromUint(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return float64(u)
}

// Infer builds a dataset from column names and raw rows, normalizing every
// value and settling each column on a single Type. Integer columns that also
// hold floats become Float; any other mix becomes String.
func Infer(names []string, rows [][]any) *Dataset {
	for _, row := range rows {
		for j, v := range row {
			row[j] = Normalize(v)
		}
	}
	names = UniqueNames(names)
	cols := make([]Column, len(names))
	for j, name := range names {
		t := columnType(rows, j)
		cols[j] = Column{Name: name, Type: t}
		for _, row := range rows {
			if j < len(row) {
				row[j] = coerce(row[j], t)
			}
		}
	}
	return New(cols, rows)
}

func columnType(rows [][]any, j int) Type {
	seen := false
	t := String
	for _, row := range rows {
		if j >= len(row) || row[j] == nil {
			continue
		}
		vt := valueType(row[j])
		if !seen {
			t, seen = vt, true
			continue
		}
		if t == vt {
			continue
		}
		if (t == Int && vt == Float) || (t == Float && vt == Int) {
			t = Float
			continue
		}
		return String
	}
	return t
}

func valueType(v any) Type {
	switch v.(type) {
	case int64:
		return Int
	case float64:
		return Float
	case bool:
		return Bool
	case time.Time:
		return Time
	default:
		return String
	}
}

func coerce(v any, t Type) any {
	if v == nil {
		return nil
	}
	switch t {
	case Float:
		if i, ok := v.(int64); ok {
			return float64(i)
		}
	case String:
		if _, ok := v.(string); !ok {
			return Format(v)
		}
	}
	return v
}

// FromStrings builds a dataset from text records, inferring Int, Float and
// Bool columns. Empty fields become nil. Short records are padded with nil.
func FromStrings(names []string, records [][]string) *Dataset {
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(names))
		for j := range names {
			if j < len(rec) {
				row[j] = parseField(rec[j])
			}
		}
		rows[i] = row
	}
	return Infer(names, rows)
}

func parseField(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
