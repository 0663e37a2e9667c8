package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/nhath/tabsql/internal/action"
)

// ErrUnknownCommand is returned for a command name that is not registered
var ErrUnknownCommand = errors.New("unknown command")

// Parse turns one line of prompt text into an action. Blank text parses to
// NoAction.
func Parse(text string) (action.Action, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return action.NoAction{}, nil
	}

	name, args, _ := strings.Cut(text, " ")
	cmd, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	a, err := cmd.parse(strings.TrimSpace(args))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

func noArgs(a action.Action) func(string) (action.Action, error) {
	return func(args string) (action.Action, error) {
		if args != "" {
			return nil, fmt.Errorf("unexpected argument %q", args)
		}
		return a, nil
	}
}

// sqlArg passes the argument text through untouched
func sqlArg(build func(string) action.Action) func(string) (action.Action, error) {
	return func(args string) (action.Action, error) {
		if args == "" {
			return nil, errors.New("missing argument")
		}
		return build(args), nil
	}
}

func count(build func(int) action.Action) func(string) (action.Action, error) {
	return func(args string) (action.Action, error) {
		if args == "" {
			return build(1), nil
		}
		n, err := strconv.Atoi(args)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid count %q", args)
		}
		return build(n), nil
	}
}

// position parses a one-based number into a zero-based index
func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("numbers start at 1, got %d", n)
	}
	return n - 1, nil
}

func parseGoto(args string) (action.Action, error) {
	row, err := position(args)
	if err != nil {
		return nil, err
	}
	return action.TabularGoto{Row: row}, nil
}

func parseTabSelect(args string) (action.Action, error) {
	idx, err := position(args)
	if err != nil {
		return nil, err
	}
	return action.TabSelect{Index: idx}, nil
}

func parseTabRemove(args string) (action.Action, error) {
	if args == "" {
		return action.TabRemoveSelected{}, nil
	}
	idx, err := position(args)
	if err != nil {
		return nil, err
	}
	return action.TabRemove{Index: idx}, nil
}

func parseTabRename(args string) (action.Action, error) {
	num, name, _ := strings.Cut(args, " ")
	idx, err := position(num)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("missing name")
	}
	return action.TabRename{Index: idx, Name: name}, nil
}

// IOOptions are the flags shared by import and export, on the prompt and on
// the command line
type IOOptions struct {
	Separator       string
	Quote           string
	NoHeader        bool
	Widths          []int
	SeparatorLength int
	FlexibleWidth   bool
}

// AddFlags registers the options on fs with their defaults
func (o *IOOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Separator, "separator", "", "field separator (default \",\", tab for tsv)")
	fs.StringVar(&o.Quote, "quote", `"`, "quote character")
	fs.BoolVar(&o.NoHeader, "no-header", false, "the first line is data, not column names")
	fs.IntSliceVar(&o.Widths, "widths", nil, "fixed-width column widths (default inferred from the header)")
	fs.IntVar(&o.SeparatorLength, "separator-length", 1, "characters between fixed-width columns")
	fs.BoolVar(&o.FlexibleWidth, "flexible-width", false, "let the last fixed-width column run to the end of the line")
}

func parseIOArgs(name, args string) (format, path string, opts IOOptions, err error) {
	tokens, err := Split(args)
	if err != nil {
		return "", "", opts, err
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts.AddFlags(fs)
	if err := fs.Parse(tokens); err != nil {
		return "", "", opts, err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return "", "", opts, fmt.Errorf("usage: %s <format> <path> [flags]", name)
	}
	return rest[0], rest[1], opts, nil
}

func (o IOOptions) separatorFor(format string) (rune, error) {
	if o.Separator == "" {
		if format == "tsv" {
			return '\t', nil
		}
		return ',', nil
	}
	return singleRune("separator", o.Separator)
}

func (o IOOptions) quoteRune() (rune, error) {
	return singleRune("quote", o.Quote)
}

func singleRune(flag, s string) (rune, error) {
	switch s {
	case `\t`:
		return '\t', nil
	case `\\`:
		return '\\', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--%s must be one character, got %q", flag, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func parseImport(args string) (action.Action, error) {
	format, path, opts, err := parseIOArgs("import", args)
	if err != nil {
		return nil, err
	}
	return opts.Import(format, path)
}

// Import builds the action that reads path as format
func (o IOOptions) Import(format, path string) (action.Action, error) {
	format = strings.ToLower(format)
	switch format {
	case "csv", "tsv", "dsv":
		sep, err := o.separatorFor(format)
		if err != nil {
			return nil, err
		}
		quote, err := o.quoteRune()
		if err != nil {
			return nil, err
		}
		return action.ImportDsv{Path: path, Separator: sep, Quote: quote, HasHeader: !o.NoHeader}, nil
	case "parquet":
		return action.ImportParquet{Path: path}, nil
	case "json", "jsonl":
		return action.ImportJson{Path: path, Format: format}, nil
	case "arrow":
		return action.ImportArrow{Path: path}, nil
	case "sqlite":
		return action.ImportSqlite{Path: path}, nil
	case "fwf":
		if o.SeparatorLength < 0 {
			return nil, fmt.Errorf("negative separator length %d", o.SeparatorLength)
		}
		return action.ImportFwf{
			Path:            path,
			Widths:          o.Widths,
			SeparatorLength: o.SeparatorLength,
			FlexibleWidth:   o.FlexibleWidth,
			HasHeader:       !o.NoHeader,
		}, nil
	default:
		return nil, fmt.Errorf("unknown import format %q", format)
	}
}

func parseExport(args string) (action.Action, error) {
	format, path, opts, err := parseIOArgs("export", args)
	if err != nil {
		return nil, err
	}
	return opts.Export(format, path)
}

// Export builds the action that writes the active tab to path as format
func (o IOOptions) Export(format, path string) (action.Action, error) {
	format = strings.ToLower(format)
	switch format {
	case "csv", "tsv", "dsv":
		sep, err := o.separatorFor(format)
		if err != nil {
			return nil, err
		}
		quote, err := o.quoteRune()
		if err != nil {
			return nil, err
		}
		return action.ExportDsv{Path: path, Separator: sep, Quote: quote, Header: !o.NoHeader}, nil
	case "parquet":
		return action.ExportParquet{Path: path}, nil
	case "json", "jsonl":
		return action.ExportJson{Path: path, Format: format}, nil
	case "arrow":
		return action.ExportArrow{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Split breaks s into words. Single or double quotes group a word. Outside
// single quotes a backslash escapes a quote, a space or another backslash
// and is kept literally before anything else.
func Split(s string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			if !strings.ContainsRune(`"' \`, r) {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if escaped {
		cur.WriteRune('\\')
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
