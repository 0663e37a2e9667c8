package icons

import "github.com/nhath/tabsql/internal/tabular"

const (
	// Source icons (Nerd Font)
	IconTable  = "󰓫"
	IconQuery  = ""
	IconSchema = "󰆼"
	IconHelp   = "󰋖"

	// Utility Icons
	IconSuccess = "✓"
	IconError   = "⚠"
	IconSelect  = "▸"
	IconSearch  = ""
)

// ForSource returns the tab bar icon for where a tab's data came from
func ForSource(kind tabular.SourceKind) string {
	switch kind {
	case tabular.FromQuery:
		return IconQuery
	case tabular.FromSchema:
		return IconSchema
	case tabular.FromHelp:
		return IconHelp
	default:
		return IconTable
	}
}
