// internal/db/driver.go
package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/marcboeker/go-duckdb"

	"github.com/nhath/tabsql/internal/dataset"
)

// queryer is satisfied by *sql.DB and *sql.Conn
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// executeQuery runs a query and scans every row into a dataset
func executeQuery(ctx context.Context, q queryer, query string) (*dataset.Dataset, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(query, err)
	}
	defer rows.Close()

	ds, err := scanRows(rows)
	if err != nil {
		return nil, WrapQueryError(query, err)
	}
	return ds, nil
}

// scanRows drains rows into a dataset, normalizing driver values
func scanRows(rows *sql.Rows) (*dataset.Dataset, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	declared, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	var results [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}
		results = append(results, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ds := dataset.Infer(columns, results)
	// Columns without a single value keep the type the driver declared.
	for j := range ds.Columns {
		if j < len(declared) && allNil(ds.Rows, j) {
			ds.Columns[j].Type = typeFromDatabase(declared[j].DatabaseTypeName())
		}
	}
	return ds, nil
}

func allNil(rows [][]any, j int) bool {
	for _, row := range rows {
		if row[j] != nil {
			return false
		}
	}
	return true
}

// typeFromDatabase maps a DuckDB or SQLite type name to a dataset type
func typeFromDatabase(name string) dataset.Type {
	name = strings.ToUpper(name)
	switch {
	case name == "BOOLEAN" || name == "BOOL":
		return dataset.Bool
	case strings.Contains(name, "INT"):
		if name == "HUGEINT" || name == "UHUGEINT" {
			return dataset.String
		}
		return dataset.Int
	case name == "FLOAT" || name == "DOUBLE" || name == "REAL" || strings.HasPrefix(name, "DECIMAL") || strings.HasPrefix(name, "NUMERIC"):
		return dataset.Float
	case name == "DATE" || strings.HasPrefix(name, "TIMESTAMP") || name == "DATETIME":
		return dataset.Time
	default:
		return dataset.String
	}
}

// normalizeValue converts DuckDB specific values before generic normalization
func normalizeValue(v any) any {
	switch val := v.(type) {
	case duckdb.Decimal:
		return val.Float64()
	case *duckdb.Decimal:
		if val == nil {
			return nil
		}
		return val.Float64()
	default:
		return dataset.Normalize(v)
	}
}
