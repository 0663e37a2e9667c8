package tabular

import "github.com/nhath/tabsql/internal/dataset"

// overlay is a search in progress over the committed dataset
type overlay struct {
	pattern string
	matches []int
	view    *dataset.Dataset
	cursor  int
}

// SearchPattern starts or updates a search. Rows of the committed dataset
// that contain pattern in any cell, ignoring case, are presented in place of
// the full dataset.
func (s *State) SearchPattern(pattern string) {
	if s.search == nil {
		s.search = &overlay{cursor: s.cursor}
	}
	s.search.pattern = pattern
	s.search.matches = s.data.Match(pattern)
	s.search.view = s.data.Take(s.search.matches)
	s.cursor = 0
}

// CancelSearch drops the search and returns to the row selected before it
// started. The committed dataset is not touched.
func (s *State) CancelSearch() {
	if s.search == nil {
		return
	}
	s.cursor = s.clamp(s.search.cursor)
	s.search = nil
}

// CommitSearch makes the matched rows the committed dataset
func (s *State) CommitSearch() {
	if s.search == nil {
		return
	}
	s.data = s.search.view
	s.search = nil
	s.cursor = s.clamp(s.cursor)
}

// Searching returns the active pattern and whether a search is in progress
func (s *State) Searching() (string, bool) {
	if s.search == nil {
		return "", false
	}
	return s.search.pattern, true
}

// Matches returns the committed row indices matched by the current search
func (s *State) Matches() []int {
	if s.search == nil {
		return nil
	}
	return s.search.matches
}
