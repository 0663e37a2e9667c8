package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/db"
	"github.com/nhath/tabsql/internal/formats"
	"github.com/nhath/tabsql/internal/tabular"
)

// readerFor builds the reader configured by an import action
func readerFor(act action.Action) (formats.Reader, string) {
	switch act := act.(type) {
	case action.ImportDsv:
		return formats.DSVReader{Separator: act.Separator, Quote: act.Quote, NoHeader: !act.HasHeader}, act.Path
	case action.ImportParquet:
		return formats.ParquetReader{}, act.Path
	case action.ImportJson:
		return formats.JSONReader{Format: act.Format}, act.Path
	case action.ImportArrow:
		return formats.ArrowReader{}, act.Path
	case action.ImportSqlite:
		return formats.SQLiteReader{}, act.Path
	case action.ImportFwf:
		return formats.FWFReader{
			Widths:          act.Widths,
			SeparatorLength: act.SeparatorLength,
			FlexibleWidth:   act.FlexibleWidth,
			NoHeader:        !act.HasHeader,
		}, act.Path
	default:
		panic(fmt.Sprintf("not an import action: %T", act))
	}
}

// writerFor builds the writer configured by an export action
func writerFor(act action.Action) (formats.Writer, string) {
	switch act := act.(type) {
	case action.ExportDsv:
		return formats.DSVWriter{Separator: act.Separator, Quote: act.Quote, NoHeader: !act.Header}, act.Path
	case action.ExportParquet:
		return formats.ParquetWriter{}, act.Path
	case action.ExportJson:
		return formats.JSONWriter{Format: act.Format}, act.Path
	case action.ExportArrow:
		return formats.ArrowWriter{}, act.Path
	default:
		panic(fmt.Sprintf("not an export action: %T", act))
	}
}

// importFrames reads every frame of path, registers each under its own name
// or the file stem, and opens one tab per frame, focusing the last. The
// import is all or nothing: when any frame fails, the frames registered
// before it are dropped again.
func (a *App) importFrames(ctx context.Context, backend *db.Backend, r formats.Reader, path string) error {
	frames, err := r.NamedFrames(ctx, formats.Input{Path: path})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.Name
		if names[i] == "" {
			names[i] = formats.Stem(path)
		}
		if f.Data.Width() == 0 {
			return fmt.Errorf("import %s: no columns", names[i])
		}
	}

	registered := make([]string, 0, len(frames))
	for i, f := range frames {
		actual, err := backend.Register(ctx, names[i], f.Data, path)
		if err != nil {
			a.unregister(ctx, backend, registered)
			return fmt.Errorf("import %s: %w", names[i], err)
		}
		registered = append(registered, actual)
	}

	for i, f := range frames {
		a.Tabs.Add(tabular.New(tabular.Source{Kind: tabular.FromName, Text: registered[i]}, f.Data))
		a.log.Info("imported", "path", path, "table", registered[i], "rows", f.Data.Len())
	}
	a.Tabs.SelectLast()
	return nil
}

// unregister drops the tables of a failed import, newest first
func (a *App) unregister(ctx context.Context, backend *db.Backend, names []string) {
	for _, name := range slices.Backward(names) {
		if err := backend.Drop(ctx, name); err != nil {
			a.log.Error("drop after failed import", "table", name, "err", err)
		}
	}
}

// exportActive writes the active tab's presented data to path
func (a *App) exportActive(ctx context.Context, w formats.Writer, path string) error {
	s := a.Tabs.Active()
	if s == nil {
		return fmt.Errorf("export: %w", ErrNoActiveTab)
	}
	ds := s.Dataset()
	if err := w.Write(ctx, path, ds); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	a.StatusBar.Notify(fmt.Sprintf("exported %d rows to %s", ds.Len(), path))
	return nil
}
