package tabular

import (
	"iter"
	"math"
	"slices"
)

// Tabs is the ordered tab collection. The active index is stored as given
// and clamped whenever it is read, so SelectLast works without knowing the
// length.
type Tabs struct {
	tabs    []*State
	idx     int
	pageLen int
}

func NewTabs() *Tabs {
	return &Tabs{pageLen: defaultPageLen}
}

func (t *Tabs) Len() int { return len(t.tabs) }

// Add appends a tab without changing focus
func (t *Tabs) Add(s *State) {
	s.SetPageLen(t.pageLen)
	t.tabs = append(t.tabs, s)
}

// Remove deletes the tab at i. Out of range indices are ignored. Removing a
// tab before the active one keeps the same tab active.
func (t *Tabs) Remove(i int) {
	if i < 0 || i >= len(t.tabs) {
		return
	}
	active := t.Idx()
	t.tabs = slices.Delete(t.tabs, i, i+1)
	if i < active {
		t.idx = active - 1
	}
}

// Idx returns the active index clamped to the current length
func (t *Tabs) Idx() int {
	if t.idx >= len(t.tabs) {
		return max(len(t.tabs)-1, 0)
	}
	return max(t.idx, 0)
}

// Active returns the active tab, or nil when there are none
func (t *Tabs) Active() *State {
	if len(t.tabs) == 0 {
		return nil
	}
	return t.tabs[t.Idx()]
}

// At returns the tab at i, or nil when i is out of range
func (t *Tabs) At(i int) *State {
	if i < 0 || i >= len(t.tabs) {
		return nil
	}
	return t.tabs[i]
}

func (t *Tabs) Select(i int) { t.idx = i }
func (t *Tabs) SelectFirst() { t.idx = 0 }
func (t *Tabs) SelectLast()  { t.idx = math.MaxInt }

func (t *Tabs) SelectNext() {
	if i := t.Idx(); i < len(t.tabs)-1 {
		t.idx = i + 1
	}
}

func (t *Tabs) SelectPrev() {
	if i := t.Idx(); i > 0 {
		t.idx = i - 1
	}
}

// All iterates over the tabs in order
func (t *Tabs) All() iter.Seq2[int, *State] {
	return func(yield func(int, *State) bool) {
		for i, s := range t.tabs {
			if !yield(i, s) {
				return
			}
		}
	}
}

// SetPageLen updates the page length of every tab and of tabs added later
func (t *Tabs) SetPageLen(n int) {
	t.pageLen = max(n, 1)
	for _, s := range t.tabs {
		s.SetPageLen(t.pageLen)
	}
}
