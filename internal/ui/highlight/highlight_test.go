package highlight

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSQLKeepsTextOnOneLine(t *testing.T) {
	out := SQL("SELECT a,\n  b\nFROM t WHERE a > 1", "monokai")

	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, len("SELECT a, b FROM t WHERE a > 1"), lipgloss.Width(out))
}

func TestSQLUnknownStyle(t *testing.T) {
	out := SQL("select 1", "no-such-style")
	assert.Equal(t, len("select 1"), lipgloss.Width(out))
}

func TestSQLEmpty(t *testing.T) {
	assert.Equal(t, 0, lipgloss.Width(SQL("", "")))
}
