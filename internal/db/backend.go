// internal/db/backend.go
package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/marcboeker/go-duckdb"

	"github.com/nhath/tabsql/internal/dataset"
)

// Table is one registered dataset as seen by the backend registry
type Table struct {
	Name    string
	Columns []dataset.Column
	Origin  string
}

// Backend is an in-memory DuckDB database holding registered datasets.
// It is not safe for concurrent use.
type Backend struct {
	db     *sql.DB
	tables []Table
	byName map[string]int
}

// Open creates a fresh in-memory backend
func Open(ctx context.Context) (*Backend, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, WrapConnectionError(err)
	}
	// Every connection to "" is its own database, so keep a single one.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, WrapConnectionError(err)
	}
	return &Backend{db: db, byName: make(map[string]int)}, nil
}

// Close releases the database
func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Register stores ds under name and returns the name actually used. A name
// that is already taken gets a numeric suffix (_2, _3, ...) instead of
// overwriting the existing table.
func (b *Backend) Register(ctx context.Context, name string, ds *dataset.Dataset, origin string) (string, error) {
	if name == "" {
		name = "df"
	}
	if ds.Width() == 0 {
		return "", fmt.Errorf("register %s: dataset has no columns", name)
	}

	actual, err := b.freeName(ctx, name)
	if err != nil {
		return "", err
	}

	conn, err := b.db.Conn(ctx)
	if err != nil {
		return "", WrapConnectionError(err)
	}
	defer conn.Close()

	create := createTableSQL(actual, ds.Columns)
	if _, err := conn.ExecContext(ctx, create); err != nil {
		return "", WrapQueryError(create, err)
	}

	err = conn.Raw(func(dc any) error {
		a, err := duckdb.NewAppenderFromConn(dc.(driver.Conn), "", actual)
		if err != nil {
			return err
		}
		for _, row := range ds.Rows {
			values := make([]driver.Value, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := a.AppendRow(values...); err != nil {
				_ = a.Close()
				return err
			}
		}
		return a.Close()
	})
	if err != nil {
		drop := "DROP TABLE IF EXISTS " + QuoteIdent(actual)
		_, _ = conn.ExecContext(ctx, drop)
		return "", fmt.Errorf("register %s: %w", actual, err)
	}

	cols := make([]dataset.Column, len(ds.Columns))
	copy(cols, ds.Columns)
	b.byName[strings.ToLower(actual)] = len(b.tables)
	b.tables = append(b.tables, Table{Name: actual, Columns: cols, Origin: origin})
	return actual, nil
}

// Drop removes a registered table from the database and the registry
func (b *Backend) Drop(ctx context.Context, name string) error {
	i, ok := b.byName[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("drop %s: not registered", name)
	}
	stmt := "DROP TABLE IF EXISTS " + QuoteIdent(b.tables[i].Name)
	if _, err := b.db.ExecContext(ctx, stmt); err != nil {
		return WrapQueryError(stmt, err)
	}

	b.tables = slices.Delete(b.tables, i, i+1)
	clear(b.byName)
	for j, t := range b.tables {
		b.byName[strings.ToLower(t.Name)] = j
	}
	return nil
}

// freeName returns name, or name with the first free numeric suffix
func (b *Backend) freeName(ctx context.Context, name string) (string, error) {
	candidate := name
	for n := 2; ; n++ {
		taken, err := b.exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", name, n)
	}
}

// exists reports whether a table or view of that name is in the database.
// DuckDB identifiers are case-insensitive.
func (b *Backend) exists(ctx context.Context, name string) (bool, error) {
	if _, ok := b.byName[strings.ToLower(name)]; ok {
		return true, nil
	}
	const query = "SELECT count(*) FROM information_schema.tables WHERE lower(table_name) = lower(?)"
	var count int
	if err := b.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return false, WrapQueryError(query, err)
	}
	return count > 0, nil
}

// Execute runs a single statement and returns its result. On error nothing
// is returned, so callers can keep their current data.
func (b *Backend) Execute(ctx context.Context, query string) (*dataset.Dataset, error) {
	return executeQuery(ctx, b.db, query)
}

// ContainsDataframe reports whether name was registered
func (b *Backend) ContainsDataframe(name string) bool {
	_, ok := b.byName[strings.ToLower(name)]
	return ok
}

// Tables returns registered names in registration order
func (b *Backend) Tables() []string {
	names := make([]string, len(b.tables))
	for i, t := range b.tables {
		names[i] = t.Name
	}
	return names
}

// Schema describes every registered column, one row each
func (b *Backend) Schema() *dataset.Dataset {
	cols := []dataset.Column{
		{Name: "table", Type: dataset.String},
		{Name: "column", Type: dataset.String},
		{Name: "type", Type: dataset.String},
		{Name: "origin", Type: dataset.String},
	}
	var rows [][]any
	for _, t := range b.tables {
		for _, c := range t.Columns {
			rows = append(rows, []any{t.Name, c.Name, c.Type.String(), t.Origin})
		}
	}
	return dataset.New(cols, rows)
}

// TableQuery selects every row of a registered table. The name is a quoted
// identifier; DuckDB reads single-quoted names as file paths.
func TableQuery(name string) string {
	return "SELECT * FROM " + QuoteIdent(name)
}

// Transform registers ds as "df" in a fresh backend, runs query against it
// and discards the backend.
func Transform(ctx context.Context, ds *dataset.Dataset, query string) (*dataset.Dataset, error) {
	b, err := Open(ctx)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if _, err := b.Register(ctx, "df", ds, ""); err != nil {
		return nil, err
	}
	return b.Execute(ctx, query)
}

func createTableSQL(name string, cols []dataset.Column) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(QuoteIdent(name))
	sb.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(QuoteIdent(c.Name))
		sb.WriteString(" ")
		sb.WriteString(c.Type.SQL())
	}
	sb.WriteString(")")
	return sb.String()
}

// QuoteIdent quotes a SQL identifier
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral quotes a SQL string literal
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// IsQueryError reports whether err came from executing SQL
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
