// Package action defines every intent the application can dispatch.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is one user intent. Only the types in this package implement it.
type Action interface {
	isAction()
}

type base struct{}

func (base) isAction() {}

// Status line

// StatusBarInfo returns the status line to its informational state
type StatusBarInfo struct{ base }

// StatusBarCommand opens the command prompt prefilled with Prefix
type StatusBarCommand struct {
	base
	Prefix string
}

// StatusBarError shows Msg as an error
type StatusBarError struct {
	base
	Msg string
}

// StatusBarSearch opens the search prompt prefilled with Query
type StatusBarSearch struct {
	base
	Query string
}

// StatusBarHandle feeds a key to the status line input
type StatusBarHandle struct {
	base
	Key tea.KeyMsg
}

// View

type TabularTableView struct{ base }
type TabularSheetView struct{ base }
type TabularSwitchView struct{ base }
type SheetScrollUp struct{ base }
type SheetScrollDown struct{ base }

// Navigation. Row is zero-based.

type TabularGoto struct {
	base
	Row int
}

type TabularGotoFirst struct{ base }
type TabularGotoLast struct{ base }
type TabularGotoRandom struct{ base }

type TabularGoUp struct {
	base
	N int
}

type TabularGoDown struct {
	base
	N int
}

type TabularGoUpHalfPage struct{ base }
type TabularGoDownHalfPage struct{ base }
type TabularGoUpFullPage struct{ base }
type TabularGoDownFullPage struct{ base }

// Transforms

// SqlQuery runs Query against every registered table
type SqlQuery struct {
	base
	Query string
}

// SqlSchema focuses the schema tab, creating it when missing
type SqlSchema struct{ base }

// TabularSelect projects the active tab with SELECT Expr FROM df
type TabularSelect struct {
	base
	Expr string
}

// TabularOrder sorts the active tab with ORDER BY Expr
type TabularOrder struct {
	base
	Expr string
}

// TabularFilter keeps the rows of the active tab matching WHERE Expr
type TabularFilter struct {
	base
	Expr string
}

// TabularReset restores the active tab to the data it was opened with
type TabularReset struct{ base }

// Search

type SearchPattern struct {
	base
	Pattern string
}

type SearchRollback struct{ base }
type SearchCommit struct{ base }

// Tabs. Index is zero-based.

// TabNew opens a registered table by name, or runs NameOrQuery as SQL
type TabNew struct {
	base
	NameOrQuery string
}

type TabSelect struct {
	base
	Index int
}

type TabRemove struct {
	base
	Index int
}

type TabRemoveSelected struct{ base }
type TabSelectedPrev struct{ base }
type TabSelectedNext struct{ base }

// TabRemoveOrQuit closes the active tab, or quits when it is the last one
type TabRemoveOrQuit struct{ base }

type TabRename struct {
	base
	Index int
	Name  string
}

// Import

type ImportDsv struct {
	base
	Path      string
	Separator rune
	HasHeader bool
	Quote     rune
}

type ImportParquet struct {
	base
	Path string
}

// ImportJson reads a JSON document, or JSON lines when Format is "jsonl"
type ImportJson struct {
	base
	Path   string
	Format string
}

type ImportArrow struct {
	base
	Path string
}

type ImportSqlite struct {
	base
	Path string
}

type ImportFwf struct {
	base
	Path            string
	Widths          []int
	SeparatorLength int
	FlexibleWidth   bool
	HasHeader       bool
}

// Export writes the active tab

type ExportDsv struct {
	base
	Path      string
	Separator rune
	Quote     rune
	Header    bool
}

type ExportParquet struct {
	base
	Path string
}

type ExportJson struct {
	base
	Path   string
	Format string
}

type ExportArrow struct {
	base
	Path string
}

// Command palette

// PaletteShow opens the palette with Text as its input
type PaletteShow struct {
	base
	Text string
}

type PaletteHide struct{ base }
type PaletteNext struct{ base }
type PalettePrev struct{ base }
type PaletteStart struct{ base }
type PaletteEnd struct{ base }
type PaletteSelectAbove struct{ base }
type PaletteSelectBelow struct{ base }
type PaletteDeleteNext struct{ base }
type PaletteDeletePrev struct{ base }

type PaletteInsert struct {
	base
	Char rune
}

// Misc

type Help struct{ base }
type Quit struct{ base }
type NoAction struct{ base }

// PromptCommit parses the prompt or palette text and dispatches the result
type PromptCommit struct{ base }
