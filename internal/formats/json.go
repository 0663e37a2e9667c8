package formats

import (
	"context"
	"fmt"

	"github.com/nhath/tabsql/internal/dataset"
)

// JSON layouts
const (
	JSONDocument = "json"
	JSONLines    = "jsonl"
)

// JSONReader reads either one JSON array of records (Format "json", the
// default) or one record per line (Format "jsonl").
type JSONReader struct {
	Format string
}

func (r JSONReader) NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error) {
	layout, err := jsonLayout(r.Format)
	if err != nil {
		return nil, &ReadError{Format: "json", Path: in.Path, Err: err}
	}
	return readWithDuckDB(ctx, layout, in, func(path string) string {
		if layout == JSONLines {
			return "read_json(" + path + ", format='newline_delimited')"
		}
		return "read_json(" + path + ", format='array')"
	})
}

// JSONWriter writes either a JSON array or JSON lines
type JSONWriter struct {
	Format string
}

func (w JSONWriter) Write(ctx context.Context, path string, ds *dataset.Dataset) error {
	layout, err := jsonLayout(w.Format)
	if err != nil {
		return &WriteError{Format: "json", Path: path, Err: err}
	}
	if layout == JSONLines {
		return writeWithDuckDB(ctx, JSONLines, path, ds, "FORMAT json")
	}
	return writeWithDuckDB(ctx, JSONDocument, path, ds, "FORMAT json, ARRAY true")
}

func jsonLayout(format string) (string, error) {
	switch format {
	case "", JSONDocument:
		return JSONDocument, nil
	case JSONLines, "ndjson":
		return JSONLines, nil
	default:
		return "", fmt.Errorf("unknown json format %q", format)
	}
}
