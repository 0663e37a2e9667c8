// Package palette implements the command palette: an input line with a
// filtered list of history entries and command usages to pick from.
package palette

import (
	"slices"
	"strings"
)

const historyCandidates = 50

// History supplies previously committed commands, newest first
type History interface {
	Search(substr string, limit int) []string
}

// Palette is the command palette state. Selected is -1 while the typed text
// itself is selected.
type Palette struct {
	visible  bool
	input    []rune
	cursor   int
	selected int
	history  History
	usages   []string
}

// New creates a hidden palette. history may be nil.
func New(history History, usages []string) *Palette {
	return &Palette{history: history, usages: usages, selected: -1}
}

func (p *Palette) Visible() bool { return p.visible }

// Show opens the palette with text as input and the cursor at its end
func (p *Palette) Show(text string) {
	p.visible = true
	p.input = []rune(text)
	p.cursor = len(p.input)
	p.selected = -1
}

func (p *Palette) Hide() {
	p.visible = false
	p.input = nil
	p.cursor = 0
	p.selected = -1
}

// Input returns the typed text
func (p *Palette) Input() string { return string(p.input) }

// Cursor returns the cursor position in runes
func (p *Palette) Cursor() int { return p.cursor }

func (p *Palette) Selected() int { return p.selected }

// Value is the text to commit: the selected candidate, or the typed text.
// Usage placeholders such as "<path>" are cut off a selected usage.
func (p *Palette) Value() string {
	c := p.Candidates()
	if p.selected < 0 || p.selected >= len(c) {
		return string(p.input)
	}
	v := c[p.selected]
	if slices.Contains(p.usages, v) {
		if i := strings.IndexAny(v, "<["); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
	}
	return v
}

// Candidates lists history entries then command usages that contain the
// input, ignoring case
func (p *Palette) Candidates() []string {
	needle := strings.ToLower(strings.TrimSpace(string(p.input)))
	var out []string
	if p.history != nil {
		out = append(out, p.history.Search(needle, historyCandidates)...)
	}
	for _, u := range p.usages {
		if strings.Contains(strings.ToLower(u), needle) && !slices.Contains(out, u) {
			out = append(out, u)
		}
	}
	return out
}

// Next moves the cursor right
func (p *Palette) Next() {
	if p.cursor < len(p.input) {
		p.cursor++
	}
}

// Prev moves the cursor left
func (p *Palette) Prev() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Palette) Start() { p.cursor = 0 }
func (p *Palette) End()   { p.cursor = len(p.input) }

// SelectAbove moves the selection up, back to the typed text at the top
func (p *Palette) SelectAbove() {
	if p.selected > -1 {
		p.selected--
	}
}

// SelectBelow moves the selection down the candidate list
func (p *Palette) SelectBelow() {
	if p.selected < len(p.Candidates())-1 {
		p.selected++
	}
}

// DeleteNext removes the rune under the cursor
func (p *Palette) DeleteNext() {
	if p.cursor < len(p.input) {
		p.input = slices.Delete(p.input, p.cursor, p.cursor+1)
		p.selected = -1
	}
}

// DeletePrev removes the rune before the cursor
func (p *Palette) DeletePrev() {
	if p.cursor > 0 {
		p.input = slices.Delete(p.input, p.cursor-1, p.cursor)
		p.cursor--
		p.selected = -1
	}
}

// Insert types r at the cursor
func (p *Palette) Insert(r rune) {
	p.input = slices.Insert(p.input, p.cursor, r)
	p.cursor++
	p.selected = -1
}
