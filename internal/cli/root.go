// Package cli provides the command-line interface for tabsql.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/app"
	"github.com/nhath/tabsql/internal/command"
	"github.com/nhath/tabsql/internal/config"
	"github.com/nhath/tabsql/internal/db"
	"github.com/nhath/tabsql/internal/formats"
	"github.com/nhath/tabsql/internal/history"
	"github.com/nhath/tabsql/internal/ui"
)

// Version information (set at build time).
var Version = "0.1.0"

var inputFormats = []string{"csv", "tsv", "parquet", "json", "jsonl", "arrow", "sqlite", "fwf"}

type options struct {
	io        command.IOOptions
	format    string
	query     string
	config    string
	noHistory bool
	debug     bool
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabsql [files...]",
		Short: "tabsql - explore tabular files with SQL",
		Long: `tabsql opens CSV, TSV, Parquet, JSON, Arrow, SQLite and fixed-width files
as tabs in the terminal. Every file is registered as a table that SQL queries
can join, and every tab can be filtered, sorted, projected and searched.

With no files and a piped standard input, the input is read in --format.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *opts, args)
		},
	}

	flags := rootCmd.Flags()
	opts.io.AddFlags(flags)
	flags.StringVarP(&opts.format, "format", "f", "", "input format: csv|tsv|parquet|json|jsonl|arrow|sqlite|fwf (default from the file extension)")
	flags.StringVarP(&opts.query, "query", "q", "", "table name or SQL to open in a tab after the files")
	flags.StringVar(&opts.config, "config", "", "config file (default $XDG_CONFIG_HOME/tabsql/config.toml)")
	flags.BoolVar(&opts.noHistory, "no-history", false, "do not read or write the command history")
	flags.BoolVar(&opts.debug, "debug", false, "write a debug log to debug.log")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return inputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return rootCmd
}

// startupActions lists the actions that open the command line inputs. The
// result is never empty, so the first frame always has a tab.
func startupActions(opts options, paths []string, stdinPiped bool) ([]action.Action, error) {
	if len(paths) == 0 && stdinPiped {
		paths = []string{formats.StdinPath}
	}

	var acts []action.Action
	for _, p := range paths {
		format := opts.format
		if format == "" {
			format = formats.FormatFromPath(p)
		}
		act, err := opts.io.Import(format, p)
		if err != nil {
			return nil, err
		}
		acts = append(acts, act)
	}
	if opts.query != "" {
		acts = append(acts, action.TabNew{NameOrQuery: opts.query})
	}
	if len(acts) == 0 {
		acts = append(acts, action.Help{})
	}
	return acts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func stdinIsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func run(ctx context.Context, opts options, args []string) error {
	logger := newLogger(io.Discard, false)
	if opts.debug {
		f, err := tea.LogToFile("debug.log", "tabsql")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = newLogger(f, true)
	}

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.noHistory {
		cfg.NoHistory = true
	}

	histPath, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("history path: %w", err)
	}
	hist, err := history.NewStore(histPath)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	defer func() {
		if err := hist.Close(); err != nil {
			logger.Error("save history", "path", histPath, "err", err)
		}
	}()

	backend, err := db.Open(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	a := app.New(hist, logger)
	for name, text := range cfg.Commands {
		a.Aliases[name] = text
	}
	session := app.NewSession(a, backend)

	piped := len(args) == 0 && stdinIsPiped()
	acts, err := startupActions(opts, args, piped)
	if err != nil {
		return err
	}
	for _, act := range acts {
		if err := session.Run(ctx, act); err != nil {
			return err
		}
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if piped {
		// Standard input held the data; keys come from the terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(ui.NewModel(ctx, session, cfg), programOpts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
