// Package formats converts files to and from named datasets.
package formats

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhath/tabsql/internal/dataset"
)

// StdinPath is the Input path that selects standard input
const StdinPath = "-"

// NamedFrame is one logical table produced by a Reader. An empty Name means
// the caller falls back to the input's stem.
type NamedFrame struct {
	Name string
	Data *dataset.Dataset
}

// Input selects what a Reader reads. Stdin is used when Path is "-" and
// defaults to os.Stdin.
type Input struct {
	Path  string
	Stdin io.Reader
}

// Reader produces every frame of an input, or an error and no frames
type Reader interface {
	NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error)
}

// Writer stores a dataset at path
type Writer interface {
	Write(ctx context.Context, path string, ds *dataset.Dataset) error
}

// ReadError reports a failed import
type ReadError struct {
	Format string
	Path   string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s %s: %v", e.Format, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed export
type WriteError struct {
	Format string
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s %s: %v", e.Format, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Stem returns the name a frame without its own name is displayed under
func Stem(path string) string {
	if path == "" || path == StdinPath {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FormatFromPath guesses a format name from the file extension. Unknown
// extensions read as csv.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return "tsv"
	case ".parquet", ".pq":
		return "parquet"
	case ".json":
		return "json"
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".arrow", ".feather", ".ipc":
		return "arrow"
	case ".sqlite", ".sqlite3", ".db":
		return "sqlite"
	case ".fwf", ".txt":
		return "fwf"
	default:
		return "csv"
	}
}

// localPath returns a file path holding the input. Standard input is spooled
// to a temporary file that cleanup removes.
func localPath(in Input) (path string, cleanup func(), err error) {
	if in.Path != StdinPath {
		return in.Path, func() {}, nil
	}
	src := in.Stdin
	if src == nil {
		src = os.Stdin
	}

	f, err := os.CreateTemp("", "tabsql-stdin-*")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { _ = os.Remove(f.Name()) }

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}
