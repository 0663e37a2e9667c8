package formats

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/nhath/tabsql/internal/dataset"
)

var arrowMagic = []byte("ARROW1")

// ArrowReader reads Arrow IPC data in either the file or the stream format
type ArrowReader struct{}

func (ArrowReader) NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error) {
	path, cleanup, err := localPath(in)
	if err != nil {
		return nil, &ReadError{Format: "arrow", Path: in.Path, Err: err}
	}
	defer cleanup()

	ds, err := readArrow(path)
	if err != nil {
		return nil, &ReadError{Format: "arrow", Path: in.Path, Err: err}
	}
	return []NamedFrame{{Data: ds}}, nil
}

func readArrow(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, len(arrowMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()
	if n == len(arrowMagic) && bytes.Equal(head, arrowMagic) {
		return readArrowFile(f, mem)
	}
	return readArrowStream(f, mem)
}

func readArrowFile(f *os.File, mem memory.Allocator) (*dataset.Dataset, error) {
	r, err := ipc.NewFileReader(f, ipc.WithAllocator(mem))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rows [][]any
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, err
		}
		rows = appendRecord(rows, rec)
	}
	return dataset.Infer(fieldNames(r.Schema()), rows), nil
}

func readArrowStream(f *os.File, mem memory.Allocator) (*dataset.Dataset, error) {
	r, err := ipc.NewReader(f, ipc.WithAllocator(mem))
	if err != nil {
		return nil, err
	}
	defer r.Release()

	var rows [][]any
	for r.Next() {
		rows = appendRecord(rows, r.Record())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return dataset.Infer(fieldNames(r.Schema()), rows), nil
}

func fieldNames(schema *arrow.Schema) []string {
	names := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		names[i] = f.Name
	}
	return names
}

func appendRecord(rows [][]any, rec arrow.Record) [][]any {
	cols := int(rec.NumCols())
	for i := 0; i < int(rec.NumRows()); i++ {
		row := make([]any, cols)
		for j := 0; j < cols; j++ {
			row[j] = arrowValue(rec.Column(j), i)
		}
		rows = append(rows, row)
	}
	return rows
}

func arrowValue(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	default:
		return arr.ValueStr(i)
	}
}

// ArrowWriter writes the Arrow IPC file format
type ArrowWriter struct{}

func (ArrowWriter) Write(ctx context.Context, path string, ds *dataset.Dataset) error {
	if err := writeArrow(path, ds); err != nil {
		return &WriteError{Format: "arrow", Path: path, Err: err}
	}
	return nil
}

func writeArrow(path string, ds *dataset.Dataset) error {
	mem := memory.NewGoAllocator()
	schema := arrowSchema(ds.Columns)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, row := range ds.Rows {
		for j, v := range row {
			if err := appendArrow(b.Field(j), v); err != nil {
				return fmt.Errorf("column %s: %w", ds.Columns[j].Name, err)
			}
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		_ = f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func arrowSchema(cols []dataset.Column) *arrow.Schema {
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		fields[i] = arrow.Field{Name: c.Name, Type: arrowType(c.Type), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t dataset.Type) arrow.DataType {
	switch t {
	case dataset.Int:
		return arrow.PrimitiveTypes.Int64
	case dataset.Float:
		return arrow.PrimitiveTypes.Float64
	case dataset.Bool:
		return arrow.FixedWidthTypes.Boolean
	case dataset.Time:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

func appendArrow(fb array.Builder, v any) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}
	switch b := fb.(type) {
	case *array.Int64Builder:
		x, ok := v.(int64)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		b.Append(x)
	case *array.Float64Builder:
		x, ok := v.(float64)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		b.Append(x)
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		b.Append(x)
	case *array.TimestampBuilder:
		x, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		b.Append(arrow.Timestamp(x.UnixMicro()))
	case *array.StringBuilder:
		b.Append(dataset.Format(v))
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	return nil
}
