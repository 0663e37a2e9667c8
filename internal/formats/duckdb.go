package formats

import (
	"context"
	"fmt"

	"github.com/nhath/tabsql/internal/dataset"
	"github.com/nhath/tabsql/internal/db"
)

// readWithDuckDB evaluates a table function over the input in a throwaway
// database and returns its single frame.
func readWithDuckDB(ctx context.Context, format string, in Input, tableFunc func(path string) string) ([]NamedFrame, error) {
	path, cleanup, err := localPath(in)
	if err != nil {
		return nil, &ReadError{Format: format, Path: in.Path, Err: err}
	}
	defer cleanup()

	b, err := db.Open(ctx)
	if err != nil {
		return nil, &ReadError{Format: format, Path: in.Path, Err: err}
	}
	defer b.Close()

	ds, err := b.Execute(ctx, "SELECT * FROM "+tableFunc(db.QuoteLiteral(path)))
	if err != nil {
		return nil, &ReadError{Format: format, Path: in.Path, Err: err}
	}
	return []NamedFrame{{Data: ds}}, nil
}

// writeWithDuckDB registers ds in a throwaway database and copies it out
// with the given COPY options.
func writeWithDuckDB(ctx context.Context, format, path string, ds *dataset.Dataset, options string) error {
	b, err := db.Open(ctx)
	if err != nil {
		return &WriteError{Format: format, Path: path, Err: err}
	}
	defer b.Close()

	name, err := b.Register(ctx, "df", ds, path)
	if err != nil {
		return &WriteError{Format: format, Path: path, Err: err}
	}
	query := fmt.Sprintf("COPY %s TO %s (%s)", db.QuoteIdent(name), db.QuoteLiteral(path), options)
	if _, err := b.Execute(ctx, query); err != nil {
		return &WriteError{Format: format, Path: path, Err: err}
	}
	return nil
}

func boolSQL(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
