package app

import (
	"context"
	"fmt"

	"github.com/nhath/tabsql/internal/dataset"
	"github.com/nhath/tabsql/internal/db"
	"github.com/nhath/tabsql/internal/tabular"
)

// transform runs query against the active tab's data, registered alone as
// df in a throwaway backend. The tab is only updated when the query works.
func (a *App) transform(ctx context.Context, query string) error {
	s := a.Tabs.Active()
	if s == nil {
		return ErrNoActiveTab
	}
	ds, err := db.Transform(ctx, s.Committed(), query)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	s.SetDataset(ds)
	return nil
}

// sqlQuery runs query against every registered table. The result replaces
// the active data tab; schema and help tabs are left alone and the result
// opens in a new tab instead.
func (a *App) sqlQuery(ctx context.Context, backend *db.Backend, query string) error {
	ds, err := backend.Execute(ctx, query)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	s := a.Tabs.Active()
	if s == nil || s.Source().Kind == tabular.FromSchema || s.Source().Kind == tabular.FromHelp {
		a.Tabs.Add(tabular.New(tabular.Source{Kind: tabular.FromQuery, Text: query}, ds))
		a.Tabs.SelectLast()
		return nil
	}
	s.SetDataset(ds)
	return nil
}

// tabNew opens a registered table by name, or runs nameOrQuery as SQL
func (a *App) tabNew(ctx context.Context, backend *db.Backend, nameOrQuery string) error {
	src := tabular.Source{Kind: tabular.FromQuery, Text: nameOrQuery}
	query := nameOrQuery
	if backend.ContainsDataframe(nameOrQuery) {
		src.Kind = tabular.FromName
		query = db.TableQuery(nameOrQuery)
	}

	ds, err := backend.Execute(ctx, query)
	if err != nil {
		return fmt.Errorf("open tab: %w", err)
	}
	a.Tabs.Add(tabular.New(src, ds))
	a.Tabs.SelectLast()
	return nil
}

// focusPseudoTab focuses the only tab of the given kind, creating it when
// missing, and refreshes it with ds
func (a *App) focusPseudoTab(kind tabular.SourceKind, ds *dataset.Dataset) {
	for i, s := range a.Tabs.All() {
		if s.Source().Kind == kind {
			s.Reset(ds)
			a.Tabs.Select(i)
			return
		}
	}
	a.Tabs.Add(tabular.New(tabular.Source{Kind: kind}, ds))
	a.Tabs.SelectLast()
}
