// Package highlight colors SQL for terminal display.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style is configured
const DefaultStyle = "nord"

var sqlLexer = chroma.Coalesce(lexerFor("sql"))

func lexerFor(name string) chroma.Lexer {
	if l := lexers.Get(name); l != nil {
		return l
	}
	return lexers.Fallback
}

// SQL returns query on one line with ANSI colors from the named chroma
// style. Unknown styles fall back to chroma's default. On any formatting
// error the flattened query is returned uncolored.
func SQL(query, style string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if style == "" {
		style = DefaultStyle
	}

	it, err := sqlLexer.Tokenise(nil, flat)
	if err != nil {
		return flat
	}
	var b strings.Builder
	if err := formatters.TTY256.Format(&b, styles.Get(style), it); err != nil {
		return flat
	}
	// Lexers may append a newline
	return strings.ReplaceAll(b.String(), "\n", "")
}
