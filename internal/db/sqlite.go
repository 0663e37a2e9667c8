// internal/db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nhath/tabsql/internal/dataset"
)

// SQLiteSource reads tables out of a SQLite database file
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens path read-only
func OpenSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, WrapConnectionError(err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 10000"); err != nil {
		_ = db.Close()
		return nil, WrapConnectionError(fmt.Errorf("pragma busy_timeout: %w", err))
	}
	return &SQLiteSource{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetTables returns table names in sqlite_master order
func (s *SQLiteSource) GetTables(ctx context.Context) ([]string, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(query, err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, WrapQueryError(query, err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// ReadTable loads every row of a table
func (s *SQLiteSource) ReadTable(ctx context.Context, table string) (*dataset.Dataset, error) {
	return executeQuery(ctx, s.db, TableQuery(table))
}
