// internal/history/store.go
package history

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// DefaultPath returns the history file under the XDG data directory
func DefaultPath() (string, error) {
	return xdg.DataFile("tabsql/history")
}

// Store keeps prompt history in a plain text file, one entry per line.
// Entries added during a session are appended to the file by Flush.
type Store struct {
	path    string
	entries []string
	pending []string
}

// NewStore loads the history at path. A missing file is an empty history.
// An empty path keeps history in memory only.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			s.entries = append(s.entries, line)
		}
	}
	return s, sc.Err()
}

// Add records an entry unless it is blank or repeats the previous one
func (s *Store) Add(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" || strings.ContainsAny(entry, "\r\n") {
		return
	}
	if n := len(s.entries); n > 0 && s.entries[n-1] == entry {
		return
	}
	s.entries = append(s.entries, entry)
	s.pending = append(s.pending, entry)
}

// Entries returns every entry, oldest first
func (s *Store) Entries() []string {
	return s.entries
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the entry i places back from the newest, so At(0) is the
// newest. ok is false when there is no such entry.
func (s *Store) At(i int) (entry string, ok bool) {
	if i < 0 || i >= len(s.entries) {
		return "", false
	}
	return s.entries[len(s.entries)-1-i], true
}

// Search returns up to limit entries containing substr, newest first.
// Repeated entries are listed once. A limit of zero or less means no limit.
func (s *Store) Search(substr string, limit int) []string {
	needle := strings.ToLower(substr)
	seen := make(map[string]bool)
	var out []string
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if seen[e] || !strings.Contains(strings.ToLower(e), needle) {
			continue
		}
		seen[e] = true
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Flush appends the entries added since the last flush to the file
func (s *Store) Flush() error {
	if s.path == "" || len(s.pending) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, e := range s.pending {
		_, _ = w.WriteString(e)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// Close flushes pending entries
func (s *Store) Close() error {
	return s.Flush()
}
