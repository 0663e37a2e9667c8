// Package keymap resolves key presses into actions.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/config"
	"github.com/nhath/tabsql/internal/statusbar"
	"github.com/nhath/tabsql/internal/tabular"
)

// Bindings are the configurable keys of the data view
type Bindings struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	Command      key.Binding
	Search       key.Binding
	Palette      key.Binding
	SwitchView   key.Binding
	TableView    key.Binding
	Down         key.Binding
	Up           key.Binding
	First        key.Binding
	Last         key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Random       key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	Reset        key.Binding
	Schema       key.Binding
	Help         key.Binding
}

func binding(keys []string, desc string) key.Binding {
	label := ""
	if len(keys) > 0 {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// New builds bindings from the configured key names
func New(km config.KeyMap) Bindings {
	return Bindings{
		Quit:         binding(km.Quit, "close tab"),
		ForceQuit:    binding(km.ForceQuit, "quit"),
		Command:      binding(km.Command, "command"),
		Search:       binding(km.Search, "search"),
		Palette:      binding(km.Palette, "palette"),
		SwitchView:   binding(km.SwitchView, "table/sheet"),
		TableView:    binding(km.TableView, "table"),
		Down:         binding(km.Down, "down"),
		Up:           binding(km.Up, "up"),
		First:        binding(km.First, "first"),
		Last:         binding(km.Last, "last"),
		HalfPageDown: binding(km.HalfPageDown, "half page down"),
		HalfPageUp:   binding(km.HalfPageUp, "half page up"),
		PageDown:     binding(km.PageDown, "page down"),
		PageUp:       binding(km.PageUp, "page up"),
		Random:       binding(km.Random, "random row"),
		NextTab:      binding(km.NextTab, "next tab"),
		PrevTab:      binding(km.PrevTab, "previous tab"),
		Reset:        binding(km.Reset, "reset"),
		Schema:       binding(km.Schema, "schema"),
		Help:         binding(km.Help, "help"),
	}
}

// ShortHelp implements help.KeyMap
func (b Bindings) ShortHelp() []key.Binding {
	return []key.Binding{b.Command, b.Search, b.Palette, b.SwitchView, b.NextTab, b.Help, b.Quit}
}

// FullHelp implements help.KeyMap
func (b Bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Down, b.Up, b.First, b.Last, b.Random},
		{b.HalfPageDown, b.HalfPageUp, b.PageDown, b.PageUp},
		{b.Command, b.Search, b.Palette, b.Schema, b.Reset},
		{b.SwitchView, b.TableView, b.NextTab, b.PrevTab, b.Help, b.Quit},
	}
}

// Context is the part of the application state that decides what a key does
type Context struct {
	Palette bool
	Mode    statusbar.Mode
	View    tabular.ViewMode
	// Prompt is the prompt text, carried into the palette when it opens
	Prompt string
}

// Resolve maps a key press to the actions it triggers. Unbound keys return
// nil. Pasted text yields one insert per rune in the palette.
func (b Bindings) Resolve(msg tea.KeyMsg, ctx Context) []action.Action {
	if key.Matches(msg, b.ForceQuit) {
		return one(action.Quit{})
	}
	switch {
	case ctx.Palette:
		return b.palette(msg)
	case ctx.Mode == statusbar.Prompt:
		return b.prompt(msg, ctx)
	case ctx.Mode == statusbar.Search:
		return search(msg)
	default:
		return b.normal(msg, ctx)
	}
}

func one(a action.Action) []action.Action { return []action.Action{a} }

func (b Bindings) palette(msg tea.KeyMsg) []action.Action {
	switch msg.Type {
	case tea.KeyEsc:
		return one(action.PaletteHide{})
	case tea.KeyEnter:
		return one(action.PromptCommit{})
	case tea.KeyUp, tea.KeyCtrlP:
		return one(action.PaletteSelectAbove{})
	case tea.KeyDown, tea.KeyCtrlN:
		return one(action.PaletteSelectBelow{})
	case tea.KeyLeft:
		return one(action.PalettePrev{})
	case tea.KeyRight:
		return one(action.PaletteNext{})
	case tea.KeyHome, tea.KeyCtrlA:
		return one(action.PaletteStart{})
	case tea.KeyEnd, tea.KeyCtrlE:
		return one(action.PaletteEnd{})
	case tea.KeyBackspace:
		return one(action.PaletteDeletePrev{})
	case tea.KeyDelete:
		return one(action.PaletteDeleteNext{})
	case tea.KeySpace:
		return one(action.PaletteInsert{Char: ' '})
	case tea.KeyRunes:
		out := make([]action.Action, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, action.PaletteInsert{Char: r})
		}
		return out
	}
	return nil
}

func (b Bindings) prompt(msg tea.KeyMsg, ctx Context) []action.Action {
	switch {
	case msg.Type == tea.KeyEnter:
		return one(action.PromptCommit{})
	case msg.Type == tea.KeyEsc:
		return one(action.StatusBarInfo{})
	case key.Matches(msg, b.Palette):
		return one(action.PaletteShow{Text: ctx.Prompt})
	}
	return one(action.StatusBarHandle{Key: msg})
}

func search(msg tea.KeyMsg) []action.Action {
	switch msg.Type {
	case tea.KeyEnter:
		return one(action.SearchCommit{})
	case tea.KeyEsc:
		return one(action.SearchRollback{})
	}
	return one(action.StatusBarHandle{Key: msg})
}

func (b Bindings) normal(msg tea.KeyMsg, ctx Context) []action.Action {
	sheet := ctx.View == tabular.SheetView
	switch {
	case key.Matches(msg, b.Quit):
		return one(action.TabRemoveOrQuit{})
	case key.Matches(msg, b.Command):
		return one(action.StatusBarCommand{})
	case key.Matches(msg, b.Search):
		return one(action.StatusBarSearch{})
	case key.Matches(msg, b.Palette):
		return one(action.PaletteShow{})
	case key.Matches(msg, b.SwitchView):
		return one(action.TabularSwitchView{})
	case key.Matches(msg, b.TableView):
		return one(action.TabularTableView{})
	case key.Matches(msg, b.Down):
		if sheet {
			return one(action.SheetScrollDown{})
		}
		return one(action.TabularGoDown{N: 1})
	case key.Matches(msg, b.Up):
		if sheet {
			return one(action.SheetScrollUp{})
		}
		return one(action.TabularGoUp{N: 1})
	case key.Matches(msg, b.First):
		return one(action.TabularGotoFirst{})
	case key.Matches(msg, b.Last):
		return one(action.TabularGotoLast{})
	case key.Matches(msg, b.HalfPageDown):
		return one(action.TabularGoDownHalfPage{})
	case key.Matches(msg, b.HalfPageUp):
		return one(action.TabularGoUpHalfPage{})
	case key.Matches(msg, b.PageDown):
		return one(action.TabularGoDownFullPage{})
	case key.Matches(msg, b.PageUp):
		return one(action.TabularGoUpFullPage{})
	case key.Matches(msg, b.Random):
		return one(action.TabularGotoRandom{})
	case key.Matches(msg, b.NextTab):
		return one(action.TabSelectedNext{})
	case key.Matches(msg, b.PrevTab):
		return one(action.TabSelectedPrev{})
	case key.Matches(msg, b.Reset):
		return one(action.TabularReset{})
	case key.Matches(msg, b.Schema):
		return one(action.SqlSchema{})
	case key.Matches(msg, b.Help):
		return one(action.Help{})
	}

	// 1-9 focus a tab
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if r := msg.Runes[0]; r >= '1' && r <= '9' {
			return one(action.TabSelect{Index: int(r - '1')})
		}
	}
	return nil
}
