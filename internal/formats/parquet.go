package formats

import (
	"context"

	"github.com/nhath/tabsql/internal/dataset"
)

// ParquetReader reads a Parquet file as one frame
type ParquetReader struct{}

func (ParquetReader) NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error) {
	return readWithDuckDB(ctx, "parquet", in, func(path string) string {
		return "read_parquet(" + path + ")"
	})
}

// ParquetWriter writes a Parquet file
type ParquetWriter struct{}

func (ParquetWriter) Write(ctx context.Context, path string, ds *dataset.Dataset) error {
	return writeWithDuckDB(ctx, "parquet", path, ds, "FORMAT parquet")
}
