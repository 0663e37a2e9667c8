// internal/config/config.go
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/nhath/tabsql/internal/history"
)

// Config represents the application configuration
type Config struct {
	HistoryFile    string            `toml:"history_file"`
	NoHistory      bool              `toml:"no_history"`
	HighlightStyle string            `toml:"highlight_style"`
	Commands       map[string]string `toml:"commands"`
	Theme          Theme             `toml:"theme_colors"`
	Keys           KeyMap            `toml:"keys"`
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	Border        string `toml:"border"`
	PopupBg       string `toml:"popup_bg"`
	SelectedBg    string `toml:"selected_bg"`
}

// KeyMap defines the key bindings of the data view
type KeyMap struct {
	Quit         []string `toml:"quit"`
	ForceQuit    []string `toml:"force_quit"`
	Command      []string `toml:"command"`
	Search       []string `toml:"search"`
	Palette      []string `toml:"palette"`
	SwitchView   []string `toml:"switch_view"`
	TableView    []string `toml:"table_view"`
	Down         []string `toml:"down"`
	Up           []string `toml:"up"`
	First        []string `toml:"first"`
	Last         []string `toml:"last"`
	HalfPageDown []string `toml:"half_page_down"`
	HalfPageUp   []string `toml:"half_page_up"`
	PageDown     []string `toml:"page_down"`
	PageUp       []string `toml:"page_up"`
	Random       []string `toml:"random"`
	NextTab      []string `toml:"next_tab"`
	PrevTab      []string `toml:"prev_tab"`
	Reset        []string `toml:"reset"`
	Schema       []string `toml:"schema"`
	Help         []string `toml:"help"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		HighlightStyle: "nord",
		Commands:       make(map[string]string),
		Theme: Theme{
			// Nord Theme Defaults
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			CardBg:        "#434C5E",
			Border:        "#4C566A",
			PopupBg:       "#3B4252",
			SelectedBg:    "#434C5E",
		},
		Keys: KeyMap{
			Quit:         []string{"q"},
			ForceQuit:    []string{"ctrl+c"},
			Command:      []string{":"},
			Search:       []string{"/"},
			Palette:      []string{"ctrl+p"},
			SwitchView:   []string{"v", "enter"},
			TableView:    []string{"esc"},
			Down:         []string{"j", "down"},
			Up:           []string{"k", "up"},
			First:        []string{"g", "home"},
			Last:         []string{"G", "end"},
			HalfPageDown: []string{"ctrl+d"},
			HalfPageUp:   []string{"ctrl+u"},
			PageDown:     []string{"pgdown", "ctrl+f"},
			PageUp:       []string{"pgup", "ctrl+b"},
			Random:       []string{"R"},
			NextTab:      []string{"L", "tab"},
			PrevTab:      []string{"H", "shift+tab"},
			Reset:        []string{"ctrl+r"},
			Schema:       []string{"S"},
			Help:         []string{"?"},
		},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("tabsql/config.toml")
}

// Load loads the config from the default path, creating it on first run
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the config at path. A missing file is created with the
// defaults; sections missing from an existing file are filled in from them.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		// First run: create default
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Populate defaults for missing fields (migration)
	defaults := DefaultConfig()
	updated := false

	if cfg.Theme.TextPrimary == "" {
		cfg.Theme = defaults.Theme
		updated = true
	}
	if len(cfg.Keys.Quit) == 0 {
		cfg.Keys = defaults.Keys
		updated = true
	}
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = defaults.HighlightStyle
		updated = true
	}
	if cfg.Commands == nil {
		cfg.Commands = make(map[string]string)
	}
	cfg.Keys.fillFrom(defaults.Keys)

	if updated {
		// Persist defaults so they can be seen and edited. The in-memory
		// config is still usable when this fails.
		_ = cfg.SaveTo(path)
	}
	return &cfg, nil
}

// fillFrom copies bindings that are unset in k from defaults
func (k *KeyMap) fillFrom(defaults KeyMap) {
	pairs := []struct {
		dst *[]string
		src []string
	}{
		{&k.Quit, defaults.Quit}, {&k.ForceQuit, defaults.ForceQuit},
		{&k.Command, defaults.Command}, {&k.Search, defaults.Search},
		{&k.Palette, defaults.Palette}, {&k.SwitchView, defaults.SwitchView},
		{&k.TableView, defaults.TableView}, {&k.Down, defaults.Down},
		{&k.Up, defaults.Up}, {&k.First, defaults.First},
		{&k.Last, defaults.Last}, {&k.HalfPageDown, defaults.HalfPageDown},
		{&k.HalfPageUp, defaults.HalfPageUp}, {&k.PageDown, defaults.PageDown},
		{&k.PageUp, defaults.PageUp}, {&k.Random, defaults.Random},
		{&k.NextTab, defaults.NextTab}, {&k.PrevTab, defaults.PrevTab},
		{&k.Reset, defaults.Reset}, {&k.Schema, defaults.Schema},
		{&k.Help, defaults.Help},
	}
	for _, p := range pairs {
		if len(*p.dst) == 0 {
			*p.dst = p.src
		}
	}
}

// HistoryPath returns the history file to use, or "" when history is off
func (c *Config) HistoryPath() (string, error) {
	if c.NoHistory {
		return "", nil
	}
	if c.HistoryFile != "" {
		return c.HistoryFile, nil
	}
	return history.DefaultPath()
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists with secure permissions
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
