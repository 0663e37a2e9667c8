// Package tabular holds the per-tab view state and the tab collection.
package tabular

import (
	"math"
	"math/rand/v2"

	"github.com/nhath/tabsql/internal/dataset"
)

// ViewMode selects how a tab is presented
type ViewMode int

const (
	TableView ViewMode = iota
	SheetView
)

// SourceKind tells where a tab's data came from
type SourceKind int

const (
	FromName SourceKind = iota
	FromQuery
	FromSchema
	FromHelp
)

func (k SourceKind) String() string {
	switch k {
	case FromQuery:
		return "query"
	case FromSchema:
		return "schema"
	case FromHelp:
		return "help"
	default:
		return "name"
	}
}

// Source is the provenance of a tab: a registered name, a query text, or
// one of the schema and help pseudo tabs.
type Source struct {
	Kind SourceKind
	Text string
}

const defaultPageLen = 20

// State is one tab. It keeps the dataset it was created with so every
// transform can be undone, the committed dataset that transforms replace,
// and an optional search overlay on top of it.
type State struct {
	source Source
	title  string
	base   *dataset.Dataset
	data   *dataset.Dataset
	view   ViewMode
	cursor int

	// scroll is the sheet offset, capped at scrollMax as reported by the
	// renderer
	scroll    int
	scrollMax int

	pageLen int
	search  *overlay
}

// New creates a tab holding a copy of ds
func New(src Source, ds *dataset.Dataset) *State {
	if ds == nil {
		ds = dataset.New(nil, nil)
	}
	return &State{
		source:    src,
		base:      ds.Clone(),
		data:      ds.Clone(),
		scrollMax: math.MaxInt,
		pageLen:   defaultPageLen,
	}
}

// Source returns the tab provenance
func (s *State) Source() Source { return s.source }

// Title is the label shown in the tab bar
func (s *State) Title() string {
	if s.title != "" {
		return s.title
	}
	switch s.source.Kind {
	case FromSchema:
		return "schema"
	case FromHelp:
		return "help"
	default:
		return s.source.Text
	}
}

// Rename changes the tab label. An empty name restores the default label.
func (s *State) Rename(name string) { s.title = name }

// Dataset returns what is presented: the search matches while searching,
// the committed dataset otherwise. Callers must not mutate it.
func (s *State) Dataset() *dataset.Dataset {
	if s.search != nil {
		return s.search.view
	}
	return s.data
}

// Committed returns the committed dataset, ignoring any search overlay
func (s *State) Committed() *dataset.Dataset { return s.data }

// SetDataset replaces the committed dataset with a copy of ds. Any search in
// progress is dropped.
func (s *State) SetDataset(ds *dataset.Dataset) {
	s.data = ds.Clone()
	s.search = nil
	s.cursor = s.clamp(s.cursor)
}

// Reset replaces both the committed dataset and the snapshot Rollback
// returns to. The cursor is kept where it still fits.
func (s *State) Reset(ds *dataset.Dataset) {
	s.base = ds.Clone()
	s.SetDataset(ds)
}

// Rollback restores the dataset the tab was created with. A search in
// progress is dropped and the cursor returns to the row selected before it
// started; otherwise the cursor moves to the first row.
func (s *State) Rollback() {
	cursor := 0
	if s.search != nil {
		cursor = s.search.cursor
	}
	s.search = nil
	s.data = s.base.Clone()
	s.cursor = s.clamp(cursor)
	s.scroll = 0
}

func (s *State) View() ViewMode { return s.view }
func (s *State) ShowTable()     { s.view = TableView }
func (s *State) ShowSheet()     { s.view = SheetView }

func (s *State) SwitchView() {
	if s.view == TableView {
		s.view = SheetView
	} else {
		s.view = TableView
	}
}

// Cursor returns the selected row of the presented dataset
func (s *State) Cursor() int { return s.cursor }

// SetPageLen records how many rows the presentation shows at once
func (s *State) SetPageLen(n int) { s.pageLen = max(n, 1) }

func (s *State) PageLen() int { return s.pageLen }

func (s *State) clamp(n int) int {
	last := s.Dataset().Len() - 1
	if n > last {
		n = last
	}
	return max(n, 0)
}

// Select moves the cursor to row n, clamped into range
func (s *State) Select(n int) { s.cursor = s.clamp(n) }

func (s *State) SelectFirst() { s.Select(0) }
func (s *State) SelectLast()  { s.Select(s.Dataset().Len() - 1) }

// SelectRandom moves to a uniformly chosen row. Empty datasets are left
// alone.
func (s *State) SelectRandom() {
	if n := s.Dataset().Len(); n > 0 {
		s.cursor = rand.IntN(n)
	}
}

func (s *State) SelectUp(n int) {
	if n >= s.cursor {
		s.cursor = 0
		return
	}
	s.cursor -= max(n, 0)
}

func (s *State) SelectDown(n int) {
	last := max(s.Dataset().Len()-1, 0)
	if n >= last-s.cursor {
		s.cursor = last
		return
	}
	s.cursor += max(n, 0)
}

func (s *State) SelectUpHalfPage()   { s.SelectUp(s.pageLen / 2) }
func (s *State) SelectDownHalfPage() { s.SelectDown(s.pageLen / 2) }
func (s *State) SelectUpFullPage()   { s.SelectUp(s.pageLen) }
func (s *State) SelectDownFullPage() { s.SelectDown(s.pageLen) }

// Scroll returns the sheet view offset
func (s *State) Scroll() int { return s.scroll }

// SetScrollLimit caps the sheet offset at n, the content height minus what
// fits on screen. The current offset is pulled back when it is past n.
func (s *State) SetScrollLimit(n int) {
	s.scrollMax = max(n, 0)
	s.scroll = min(s.scroll, s.scrollMax)
}

func (s *State) ScrollUp() {
	if s.scroll > 0 {
		s.scroll--
	}
}

func (s *State) ScrollDown() {
	if s.scroll < s.scrollMax {
		s.scroll++
	}
}
