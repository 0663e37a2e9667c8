package formats

import (
	"context"
	"fmt"

	"github.com/nhath/tabsql/internal/dataset"
	"github.com/nhath/tabsql/internal/db"
)

// DSVReader reads delimiter-separated text. Zero Separator and Quote mean
// ',' and '"'.
type DSVReader struct {
	Separator rune
	Quote     rune
	NoHeader  bool
}

func (r DSVReader) NamedFrames(ctx context.Context, in Input) ([]NamedFrame, error) {
	sep, quote := dsvDefaults(r.Separator, r.Quote)
	return readWithDuckDB(ctx, "dsv", in, func(path string) string {
		return fmt.Sprintf("read_csv(%s, delim=%s, quote=%s, escape=%s, header=%s, auto_detect=true)",
			path,
			db.QuoteLiteral(string(sep)),
			db.QuoteLiteral(string(quote)),
			db.QuoteLiteral(string(quote)),
			boolSQL(!r.NoHeader))
	})
}

// DSVWriter writes delimiter-separated text with a header line unless
// NoHeader is set.
type DSVWriter struct {
	Separator rune
	Quote     rune
	NoHeader  bool
}

func (w DSVWriter) Write(ctx context.Context, path string, ds *dataset.Dataset) error {
	sep, quote := dsvDefaults(w.Separator, w.Quote)
	options := fmt.Sprintf("FORMAT csv, DELIMITER %s, QUOTE %s, HEADER %s",
		db.QuoteLiteral(string(sep)),
		db.QuoteLiteral(string(quote)),
		boolSQL(!w.NoHeader))
	return writeWithDuckDB(ctx, "dsv", path, ds, options)
}

func dsvDefaults(sep, quote rune) (rune, rune) {
	if sep == 0 {
		sep = ','
	}
	if quote == 0 {
		quote = '"'
	}
	return sep, quote
}
