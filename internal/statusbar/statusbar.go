// Package statusbar implements the status line and its prompt.
package statusbar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/tabsql/internal/action"
)

// Mode is what the status line currently shows
type Mode int

const (
	Info Mode = iota
	Error
	Prompt
	Search
)

// History is the prompt history recalled with up and down
type History interface {
	At(i int) (string, bool)
}

// StatusBar is the bottom line: a message, or an input for commands and
// searches.
type StatusBar struct {
	mode    Mode
	message string
	input   textinput.Model
	history History
	recall  int
	draft   string
}

// New creates a status line in info mode. h may be nil.
func New(h History) *StatusBar {
	ti := textinput.New()
	ti.CharLimit = 0
	return &StatusBar{input: ti, history: h, recall: -1}
}

func (s *StatusBar) Mode() Mode { return s.mode }

// Message returns the info or error text
func (s *StatusBar) Message() string { return s.message }

// Value returns the text typed into the prompt
func (s *StatusBar) Value() string { return s.input.Value() }

// InputView renders the prompt input with its cursor
func (s *StatusBar) InputView() string { return s.input.View() }

func (s *StatusBar) SwitchInfo() {
	s.mode = Info
	s.message = ""
	s.input.Blur()
}

// Notify switches to info mode showing msg
func (s *StatusBar) Notify(msg string) {
	s.SwitchInfo()
	s.message = msg
}

func (s *StatusBar) SwitchError(msg string) {
	s.mode = Error
	s.message = msg
	s.input.Blur()
}

// SwitchPrompt opens the command prompt holding prefix
func (s *StatusBar) SwitchPrompt(prefix string) {
	s.open(Prompt, ":", prefix)
}

// SwitchSearch opens the search prompt holding query
func (s *StatusBar) SwitchSearch(query string) {
	s.open(Search, "/", query)
}

func (s *StatusBar) open(mode Mode, prompt, text string) {
	s.mode = mode
	s.message = ""
	s.recall = -1
	s.draft = ""
	s.input.Prompt = prompt
	s.input.SetValue(text)
	s.input.CursorEnd()
	s.input.Focus()
}

// Handle applies a key to the prompt and returns the follow-up action, if
// any. Backspace on an empty input leaves the prompt. In search mode every
// other key yields the updated pattern.
func (s *StatusBar) Handle(msg tea.KeyMsg) action.Action {
	switch s.mode {
	case Prompt:
		switch msg.String() {
		case "backspace":
			if s.input.Value() == "" {
				return action.StatusBarInfo{}
			}
		case "up":
			s.recallOlder()
			return nil
		case "down":
			s.recallNewer()
			return nil
		}
		s.input, _ = s.input.Update(msg)
		return nil
	case Search:
		if msg.String() == "backspace" && s.input.Value() == "" {
			return action.StatusBarInfo{}
		}
		s.input, _ = s.input.Update(msg)
		return action.SearchPattern{Pattern: s.input.Value()}
	default:
		return nil
	}
}

func (s *StatusBar) recallOlder() {
	if s.history == nil {
		return
	}
	entry, ok := s.history.At(s.recall + 1)
	if !ok {
		return
	}
	if s.recall == -1 {
		s.draft = s.input.Value()
	}
	s.recall++
	s.input.SetValue(entry)
	s.input.CursorEnd()
}

func (s *StatusBar) recallNewer() {
	if s.recall < 0 {
		return
	}
	s.recall--
	if s.recall == -1 {
		s.input.SetValue(s.draft)
	} else if entry, ok := s.history.At(s.recall); ok {
		s.input.SetValue(entry)
	}
	s.input.CursorEnd()
}
