package formats

import (
	"context"
	"errors"

	"github.com/nhath/tabsql/internal/db"
)

// SQLiteReader reads every table of a SQLite database, one frame per table
// named after it.
type SQLiteReader struct{}

func (SQLiteReader) NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error) {
	path, cleanup, err := localPath(in)
	if err != nil {
		return nil, &ReadError{Format: "sqlite", Path: in.Path, Err: err}
	}
	defer cleanup()

	frames, err := readSQLite(ctx, path)
	if err != nil {
		return nil, &ReadError{Format: "sqlite", Path: in.Path, Err: err}
	}
	return frames, nil
}

func readSQLite(ctx context.Context, path string) ([]NamedFrame, error) {
	src, err := db.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tables, err := src.GetTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, errors.New("database has no tables")
	}

	frames := make([]NamedFrame, 0, len(tables))
	for _, table := range tables {
		ds, err := src.ReadTable(ctx, table)
		if err != nil {
			return nil, err
		}
		frames = append(frames, NamedFrame{Name: table, Data: ds})
	}
	return frames, nil
}
