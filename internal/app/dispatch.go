package app

import (
	"context"
	"fmt"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/command"
	"github.com/nhath/tabsql/internal/db"
	"github.com/nhath/tabsql/internal/statusbar"
	"github.com/nhath/tabsql/internal/tabular"
)

// Dispatch applies one action and returns the action to apply next, or nil
func Dispatch(ctx context.Context, act action.Action, a *App, backend *db.Backend) (action.Action, error) {
	a.log.Debug("dispatch", "action", fmt.Sprintf("%T", act))

	switch act := act.(type) {
	case action.NoAction:
		return nil, nil
	case action.Quit:
		a.quit = true
		return nil, nil
	case action.Help:
		a.focusPseudoTab(tabular.FromHelp, command.HelpDataset())
		return nil, nil

	// Status line
	case action.StatusBarInfo:
		if a.StatusBar.Mode() == statusbar.Search {
			if s := a.Tabs.Active(); s != nil {
				s.CancelSearch()
			}
		}
		a.StatusBar.SwitchInfo()
		return nil, nil
	case action.StatusBarCommand:
		a.StatusBar.SwitchPrompt(act.Prefix)
		return nil, nil
	case action.StatusBarError:
		a.StatusBar.SwitchError(act.Msg)
		return nil, nil
	case action.StatusBarSearch:
		a.StatusBar.SwitchSearch(act.Query)
		if act.Query != "" {
			return action.SearchPattern{Pattern: act.Query}, nil
		}
		return nil, nil
	case action.StatusBarHandle:
		return a.StatusBar.Handle(act.Key), nil
	case action.PromptCommit:
		return a.promptCommit()

	// View and navigation
	case action.TabularTableView:
		a.withActive((*tabular.State).ShowTable)
	case action.TabularSheetView:
		a.withActive((*tabular.State).ShowSheet)
	case action.TabularSwitchView:
		a.withActive((*tabular.State).SwitchView)
	case action.SheetScrollUp:
		a.withActive((*tabular.State).ScrollUp)
	case action.SheetScrollDown:
		a.withActive((*tabular.State).ScrollDown)
	case action.TabularGoto:
		a.withActive(func(s *tabular.State) { s.Select(act.Row) })
	case action.TabularGotoFirst:
		a.withActive((*tabular.State).SelectFirst)
	case action.TabularGotoLast:
		a.withActive((*tabular.State).SelectLast)
	case action.TabularGotoRandom:
		a.withActive((*tabular.State).SelectRandom)
	case action.TabularGoUp:
		a.withActive(func(s *tabular.State) { s.SelectUp(act.N) })
	case action.TabularGoDown:
		a.withActive(func(s *tabular.State) { s.SelectDown(act.N) })
	case action.TabularGoUpHalfPage:
		a.withActive((*tabular.State).SelectUpHalfPage)
	case action.TabularGoDownHalfPage:
		a.withActive((*tabular.State).SelectDownHalfPage)
	case action.TabularGoUpFullPage:
		a.withActive((*tabular.State).SelectUpFullPage)
	case action.TabularGoDownFullPage:
		a.withActive((*tabular.State).SelectDownFullPage)

	// Transforms
	case action.SqlQuery:
		return nil, a.sqlQuery(ctx, backend, act.Query)
	case action.SqlSchema:
		a.focusPseudoTab(tabular.FromSchema, backend.Schema())
		return nil, nil
	case action.TabularSelect:
		return nil, a.transform(ctx, "SELECT "+act.Expr+" FROM df")
	case action.TabularOrder:
		return nil, a.transform(ctx, "SELECT * FROM df ORDER BY "+act.Expr)
	case action.TabularFilter:
		return nil, a.transform(ctx, "SELECT * FROM df WHERE "+act.Expr)
	case action.TabularReset:
		a.withActive((*tabular.State).Rollback)

	// Search
	case action.SearchPattern:
		a.withActive(func(s *tabular.State) { s.SearchPattern(act.Pattern) })
	case action.SearchRollback:
		a.withActive((*tabular.State).CancelSearch)
		return action.StatusBarInfo{}, nil
	case action.SearchCommit:
		a.withActive((*tabular.State).CommitSearch)
		return action.StatusBarInfo{}, nil

	// Tabs
	case action.TabNew:
		return nil, a.tabNew(ctx, backend, act.NameOrQuery)
	case action.TabSelect:
		if err := a.checkIndex(act.Index); err != nil {
			return nil, err
		}
		a.Tabs.Select(act.Index)
	case action.TabRemove:
		a.Tabs.Remove(act.Index)
	case action.TabRemoveSelected:
		a.Tabs.Remove(a.Tabs.Idx())
	case action.TabSelectedPrev:
		a.Tabs.SelectPrev()
	case action.TabSelectedNext:
		a.Tabs.SelectNext()
	case action.TabRemoveOrQuit:
		if a.Tabs.Len() <= 1 {
			return action.Quit{}, nil
		}
		a.Tabs.Remove(a.Tabs.Idx())
	case action.TabRename:
		if err := a.checkIndex(act.Index); err != nil {
			return nil, err
		}
		a.Tabs.At(act.Index).Rename(act.Name)

	// Import and export
	case action.ImportDsv, action.ImportParquet, action.ImportJson,
		action.ImportArrow, action.ImportSqlite, action.ImportFwf:
		r, path := readerFor(act)
		return nil, a.importFrames(ctx, backend, r, path)
	case action.ExportDsv, action.ExportParquet, action.ExportJson, action.ExportArrow:
		w, path := writerFor(act)
		return nil, a.exportActive(ctx, w, path)

	// Palette
	case action.PaletteShow:
		a.Palette.Show(act.Text)
	case action.PaletteHide:
		a.Palette.Hide()
	case action.PaletteNext:
		a.Palette.Next()
	case action.PalettePrev:
		a.Palette.Prev()
	case action.PaletteStart:
		a.Palette.Start()
	case action.PaletteEnd:
		a.Palette.End()
	case action.PaletteSelectAbove:
		a.Palette.SelectAbove()
	case action.PaletteSelectBelow:
		a.Palette.SelectBelow()
	case action.PaletteDeleteNext:
		a.Palette.DeleteNext()
	case action.PaletteDeletePrev:
		a.Palette.DeletePrev()
	case action.PaletteInsert:
		a.Palette.Insert(act.Char)

	default:
		return nil, fmt.Errorf("unhandled action %T", act)
	}
	return nil, nil
}

// withActive applies f to the active tab. Nothing happens without tabs.
func (a *App) withActive(f func(*tabular.State)) {
	if s := a.Tabs.Active(); s != nil {
		f(s)
	}
}

func (a *App) checkIndex(i int) error {
	if i < 0 || i >= a.Tabs.Len() {
		return &IndexError{Index: i, Max: a.Tabs.Len() - 1}
	}
	return nil
}

// promptCommit takes the palette text when the palette is open, the prompt
// text otherwise, and parses it into the next action
func (a *App) promptCommit() (action.Action, error) {
	var text string
	if a.Palette.Visible() {
		text = a.Palette.Value()
		a.Palette.Hide()
	} else {
		text = a.StatusBar.Value()
	}
	a.StatusBar.SwitchInfo()
	a.History.Add(text)

	next, err := command.Parse(a.expandAlias(text))
	if err != nil {
		return nil, err
	}
	return next, nil
}
