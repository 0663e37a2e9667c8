// Package app holds the application state and applies actions to it.
package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/nhath/tabsql/internal/command"
	"github.com/nhath/tabsql/internal/history"
	"github.com/nhath/tabsql/internal/palette"
	"github.com/nhath/tabsql/internal/statusbar"
	"github.com/nhath/tabsql/internal/tabular"
)

// App is the state every action is applied to
type App struct {
	Tabs      *tabular.Tabs
	StatusBar *statusbar.StatusBar
	Palette   *palette.Palette
	History   *history.Store

	// Aliases maps a command name to the text it expands to
	Aliases map[string]string

	log  *slog.Logger
	quit bool
}

// New creates an empty application. hist and logger may be nil.
func New(hist *history.Store, logger *slog.Logger) *App {
	if hist == nil {
		hist, _ = history.NewStore("")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		Tabs:      tabular.NewTabs(),
		StatusBar: statusbar.New(hist),
		Palette:   palette.New(hist, command.Usages()),
		History:   hist,
		Aliases:   make(map[string]string),
		log:       logger,
	}
}

// Quitting reports whether a Quit action was applied
func (a *App) Quitting() bool { return a.quit }

// expandAlias replaces a leading alias with its text. Arguments after the
// alias are appended.
func (a *App) expandAlias(text string) string {
	text = strings.TrimSpace(text)
	name, rest, _ := strings.Cut(text, " ")
	expansion, ok := a.Aliases[name]
	if !ok {
		return text
	}
	if rest == "" {
		return expansion
	}
	return expansion + " " + rest
}
