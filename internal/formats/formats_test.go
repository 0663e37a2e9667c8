package formats

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/tabsql/internal/dataset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mixed() *dataset.Dataset {
	return dataset.New(
		[]dataset.Column{
			{Name: "id", Type: dataset.Int},
			{Name: "name", Type: dataset.String},
			{Name: "score", Type: dataset.Float},
			{Name: "ok", Type: dataset.Bool},
			{Name: "at", Type: dataset.Time},
		},
		[][]any{
			{int64(1), "ann", 2.5, true, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
			{int64(2), "bob, jr", 0.25, false, time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)},
		},
	)
}

func readOne(t *testing.T, r Reader, path string) *dataset.Dataset {
	t.Helper()
	frames, err := r.NamedFrames(context.Background(), Input{Path: path})
	require.NoError(t, err)
	require.Len(t, frames, 1)
	return frames[0].Data
}

func TestDSVReadsHeaderAndRows(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b\n1,2\n3,4\n")

	ds := readOne(t, DSVReader{}, path)
	assert.Equal(t, []string{"a", "b"}, ds.ColumnNames())
	assert.Equal(t, [][]any{{int64(1), int64(2)}, {int64(3), int64(4)}}, ds.Rows)
}

func TestDSVCustomSeparatorWithoutHeader(t *testing.T) {
	path := writeFile(t, "data.tsv", "x\t1\ny\t2\n")

	ds := readOne(t, DSVReader{Separator: '\t', NoHeader: true}, path)
	assert.Equal(t, 2, ds.Width())
	assert.Equal(t, [][]any{{"x", int64(1)}, {"y", int64(2)}}, ds.Rows)
}

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		file string
		w    Writer
		r    Reader
	}{
		{"csv", "out.csv", DSVWriter{}, DSVReader{}},
		{"psv", "out.psv", DSVWriter{Separator: '|', Quote: '\''}, DSVReader{Separator: '|', Quote: '\''}},
		{"parquet", "out.parquet", ParquetWriter{}, ParquetReader{}},
		{"json", "out.json", JSONWriter{}, JSONReader{}},
		{"jsonl", "out.jsonl", JSONWriter{Format: JSONLines}, JSONReader{Format: JSONLines}},
		{"arrow", "out.arrow", ArrowWriter{}, ArrowReader{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			want := mixed()

			require.NoError(t, tt.w.Write(context.Background(), path, want))
			got := readOne(t, tt.r, path)

			assert.Equal(t, want.ColumnNames(), got.ColumnNames())
			require.Equal(t, want.Len(), got.Len())
			for i := range want.Rows {
				for j := range want.Columns {
					assert.Equal(t, want.Cell(i, j), got.Cell(i, j), "row %d column %d", i, j)
				}
			}
		})
	}
}

func TestDSVWriterWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, DSVWriter{NoHeader: true}.Write(context.Background(), path, dataset.New(
		[]dataset.Column{{Name: "a", Type: dataset.Int}},
		[][]any{{int64(7)}},
	)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7", strings.TrimSpace(string(raw)))
}

func TestReadErrorsAbortImport(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	readers := map[string]Reader{
		"dsv":     DSVReader{},
		"parquet": ParquetReader{},
		"json":    JSONReader{},
		"arrow":   ArrowReader{},
		"sqlite":  SQLiteReader{},
		"fwf":     NewFWFReader(),
	}
	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			frames, err := r.NamedFrames(context.Background(), Input{Path: missing})
			require.Error(t, err)
			assert.Nil(t, frames)

			var re *ReadError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, missing, re.Path)
		})
	}
}

func TestJSONRejectsUnknownLayout(t *testing.T) {
	_, err := JSONReader{Format: "xml"}.NamedFrames(context.Background(), Input{Path: "x"})
	assert.ErrorContains(t, err, "unknown json format")
}

func TestSQLiteReaderYieldsOneFramePerTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE users (id INTEGER, name TEXT);
		INSERT INTO users VALUES (1, 'ann');
		CREATE TABLE orders (total REAL);
		INSERT INTO orders VALUES (9.5), (1.25);`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	frames, err := SQLiteReader{}.NamedFrames(context.Background(), Input{Path: path})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, "users", frames[0].Name)
	assert.Equal(t, "orders", frames[1].Name)
	assert.Equal(t, [][]any{{9.5}, {1.25}}, frames[1].Data.Rows)
}

func TestFWFInfersWidthsFromHeader(t *testing.T) {
	path := writeFile(t, "people.txt", ""+
		"id   name  score\n"+
		"1    ann   12\n"+
		"2    bob   7.5 extra\n")

	ds := readOne(t, NewFWFReader(), path)
	assert.Equal(t, []string{"id", "name", "score"}, ds.ColumnNames())
	assert.Equal(t, []any{int64(1), "ann", "12"}, ds.Rows[0])
	assert.Equal(t, []any{int64(2), "bob", "7.5 extra"}, ds.Rows[1])
}

func TestFWFExplicitWidths(t *testing.T) {
	content := "aaa|bb\n123|45\n678|9\n"
	path := writeFile(t, "data.fwf", content)

	strict := FWFReader{Widths: []int{3, 2}, SeparatorLength: 1}
	_, err := strict.NamedFrames(context.Background(), Input{Path: path})
	require.Error(t, err)
	assert.ErrorContains(t, err, "line 3")

	flexible := strict
	flexible.FlexibleWidth = true
	ds := readOne(t, flexible, path)
	assert.Equal(t, []string{"aaa", "bb"}, ds.ColumnNames())
	assert.Equal(t, [][]any{{int64(123), int64(45)}, {int64(678), int64(9)}}, ds.Rows)
}

func TestFWFWithoutHeader(t *testing.T) {
	path := writeFile(t, "data.fwf", "ab12\ncd34\n")

	ds := readOne(t, FWFReader{Widths: []int{2, 2}, NoHeader: true}, path)
	assert.Equal(t, []string{"column0", "column1"}, ds.ColumnNames())
	assert.Equal(t, [][]any{{"ab", int64(12)}, {"cd", int64(34)}}, ds.Rows)
}

func TestStdinIsSpooled(t *testing.T) {
	frames, err := DSVReader{}.NamedFrames(context.Background(), Input{
		Path:  StdinPath,
		Stdin: strings.NewReader("a\n1\n2\n"),
	})
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "", frames[0].Name)
	assert.Equal(t, 2, frames[0].Data.Len())
}

func TestStem(t *testing.T) {
	assert.Equal(t, "data", Stem("/tmp/data.csv"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.gz"))
	assert.Equal(t, "stdin", Stem(StdinPath))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "csv", FormatFromPath("a.csv"))
	assert.Equal(t, "tsv", FormatFromPath("a.TSV"))
	assert.Equal(t, "parquet", FormatFromPath("a.parquet"))
	assert.Equal(t, "jsonl", FormatFromPath("a.ndjson"))
	assert.Equal(t, "arrow", FormatFromPath("a.feather"))
	assert.Equal(t, "sqlite", FormatFromPath("a.db"))
	assert.Equal(t, "csv", FormatFromPath("noext"))
}
