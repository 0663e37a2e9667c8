package formats

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nhath/tabsql/internal/dataset"
)

// FWFReader reads fixed-width text. Column j spans Widths[j] characters and
// consecutive columns are SeparatorLength characters apart. With no Widths
// the columns start wherever a word starts in the first line, and the last
// column runs to the end of each line. FlexibleWidth accepts lines whose
// last column is shorter than its width.
type FWFReader struct {
	Widths          []int
	SeparatorLength int
	FlexibleWidth   bool
	NoHeader        bool
}

// NewFWFReader returns a reader with a one character separator
func NewFWFReader() FWFReader {
	return FWFReader{SeparatorLength: 1}
}

func (r FWFReader) NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error) {
	path, cleanup, err := localPath(in)
	if err != nil {
		return nil, &ReadError{Format: "fwf", Path: in.Path, Err: err}
	}
	defer cleanup()

	lines, err := readLines(path)
	if err != nil {
		return nil, &ReadError{Format: "fwf", Path: in.Path, Err: err}
	}
	ds, err := r.parse(lines)
	if err != nil {
		return nil, &ReadError{Format: "fwf", Path: in.Path, Err: err}
	}
	return []NamedFrame{{Data: ds}}, nil
}

func readLines(path string) ([][]rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines [][]rune
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, []rune(strings.TrimRight(sc.Text(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(string(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

type span struct {
	start, end int
}

func (r FWFReader) parse(lines [][]rune) (*dataset.Dataset, error) {
	if len(lines) == 0 {
		return nil, errors.New("empty input")
	}
	if r.SeparatorLength < 0 {
		return nil, fmt.Errorf("negative separator length %d", r.SeparatorLength)
	}

	spans, openEnded, err := r.spans(lines[0])
	if err != nil {
		return nil, err
	}
	flexible := r.FlexibleWidth || openEnded

	var names []string
	body := lines
	if r.NoHeader {
		names = make([]string, len(spans))
		for j := range spans {
			names[j] = fmt.Sprintf("column%d", j)
		}
	} else {
		names, err = cut(lines[0], spans, true)
		if err != nil {
			return nil, fmt.Errorf("line 1: %w", err)
		}
		body = lines[1:]
	}

	records := make([][]string, 0, len(body))
	offset := len(lines) - len(body)
	for i, line := range body {
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		fields, err := cut(line, spans, flexible)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+offset+1, err)
		}
		records = append(records, fields)
	}
	return dataset.FromStrings(names, records), nil
}

// spans returns column bounds. openEnded is set when the bounds were
// inferred, in which case the last span runs to the end of each line.
func (r FWFReader) spans(first []rune) ([]span, bool, error) {
	if len(r.Widths) == 0 {
		starts := wordStarts(first)
		if len(starts) == 0 {
			return nil, false, errors.New("cannot infer column widths from a blank line")
		}
		spans := make([]span, len(starts))
		for j, s := range starts {
			end := -1
			if j+1 < len(starts) {
				end = max(starts[j+1]-r.SeparatorLength, s)
			}
			spans[j] = span{start: s, end: end}
		}
		return spans, true, nil
	}

	spans := make([]span, len(r.Widths))
	pos := 0
	for j, w := range r.Widths {
		if w <= 0 {
			return nil, false, fmt.Errorf("width %d of column %d is not positive", w, j+1)
		}
		spans[j] = span{start: pos, end: pos + w}
		pos += w + r.SeparatorLength
	}
	return spans, false, nil
}

func wordStarts(line []rune) []int {
	var starts []int
	for i, c := range line {
		if c == ' ' || c == '\t' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			starts = append(starts, i)
		}
	}
	return starts
}

// cut slices one line into trimmed fields. Only the last field may be cut
// short, and only when flexible is set.
func cut(line []rune, spans []span, flexible bool) ([]string, error) {
	fields := make([]string, len(spans))
	for j, sp := range spans {
		last := j == len(spans)-1
		end := sp.end
		if end < 0 || end > len(line) {
			if end > len(line) && !(last && flexible) {
				return nil, fmt.Errorf("expected %d characters, got %d", sp.end, len(line))
			}
			end = len(line)
		}
		if sp.start >= end {
			if !(last && flexible) {
				return nil, fmt.Errorf("expected %d characters, got %d", sp.end, len(line))
			}
			continue
		}
		fields[j] = strings.TrimSpace(string(line[sp.start:end]))
	}
	return fields, nil
}
