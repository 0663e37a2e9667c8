// Package command turns prompt text into actions.
package command

import (
	"strings"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/dataset"
)

// Command describes one prompt command
type Command struct {
	Names       []string
	Usage       string
	Description string
	parse       func(args string) (action.Action, error)
}

var registry []Command
var byName map[string]*Command

func init() {
	registry = []Command{
		{Names: []string{"Q", "query"}, Usage: "query <sql>", Description: "Run SQL against every registered table", parse: sqlArg(func(s string) action.Action { return action.SqlQuery{Query: s} })},
		{Names: []string{"S", "select"}, Usage: "select <expr>", Description: "Project the current tab: SELECT <expr> FROM df", parse: sqlArg(func(s string) action.Action { return action.TabularSelect{Expr: s} })},
		{Names: []string{"F", "filter"}, Usage: "filter <expr>", Description: "Keep rows of the current tab: WHERE <expr>", parse: sqlArg(func(s string) action.Action { return action.TabularFilter{Expr: s} })},
		{Names: []string{"O", "order"}, Usage: "order <expr>", Description: "Sort the current tab: ORDER BY <expr>", parse: sqlArg(func(s string) action.Action { return action.TabularOrder{Expr: s} })},
		{Names: []string{"reset"}, Usage: "reset", Description: "Undo every transform of the current tab", parse: noArgs(action.TabularReset{})},
		{Names: []string{"schema"}, Usage: "schema", Description: "Show registered tables and columns", parse: noArgs(action.SqlSchema{})},
		{Names: []string{"search"}, Usage: "search [text]", Description: "Search the current tab", parse: func(s string) (action.Action, error) { return action.StatusBarSearch{Query: s}, nil }},
		{Names: []string{"goto"}, Usage: "goto <row>", Description: "Select a row by number", parse: parseGoto},
		{Names: []string{"goup"}, Usage: "goup [n]", Description: "Move the selection up n rows", parse: count(func(n int) action.Action { return action.TabularGoUp{N: n} })},
		{Names: []string{"godown"}, Usage: "godown [n]", Description: "Move the selection down n rows", parse: count(func(n int) action.Action { return action.TabularGoDown{N: n} })},
		{Names: []string{"table"}, Usage: "table", Description: "Show the current tab as a table", parse: noArgs(action.TabularTableView{})},
		{Names: []string{"sheet"}, Usage: "sheet", Description: "Show the selected row as a sheet", parse: noArgs(action.TabularSheetView{})},
		{Names: []string{"view"}, Usage: "view", Description: "Switch between table and sheet", parse: noArgs(action.TabularSwitchView{})},
		{Names: []string{"tab", "tabn"}, Usage: "tab <table|sql>", Description: "Open a registered table or a query in a new tab", parse: sqlArg(func(s string) action.Action { return action.TabNew{NameOrQuery: s} })},
		{Names: []string{"tabs"}, Usage: "tabs <n>", Description: "Select a tab by number", parse: parseTabSelect},
		{Names: []string{"tabr"}, Usage: "tabr [n]", Description: "Close a tab, the current one by default", parse: parseTabRemove},
		{Names: []string{"tabrename"}, Usage: "tabrename <n> <name>", Description: "Rename a tab", parse: parseTabRename},
		{Names: []string{"import"}, Usage: "import <format> <path> [flags]", Description: "Open csv, tsv, parquet, json, jsonl, arrow, sqlite or fwf data", parse: parseImport},
		{Names: []string{"export"}, Usage: "export <format> <path> [flags]", Description: "Write the current tab as csv, tsv, parquet, json, jsonl or arrow", parse: parseExport},
		{Names: []string{"help"}, Usage: "help", Description: "Show this help", parse: noArgs(action.Help{})},
		{Names: []string{"q"}, Usage: "q", Description: "Close the current tab, quitting after the last", parse: noArgs(action.TabRemoveOrQuit{})},
		{Names: []string{"quit"}, Usage: "quit", Description: "Quit", parse: noArgs(action.Quit{})},
	}
	byName = make(map[string]*Command)
	for i := range registry {
		for _, n := range registry[i].Names {
			byName[n] = &registry[i]
		}
	}
}

// Commands returns every command in help order
func Commands() []Command {
	return registry
}

// Usages returns the usage line of every command
func Usages() []string {
	out := make([]string, len(registry))
	for i, c := range registry {
		out[i] = c.Usage
	}
	return out
}

// HelpDataset lists the commands as a table for the help tab
func HelpDataset() *dataset.Dataset {
	cols := []dataset.Column{
		{Name: "command", Type: dataset.String},
		{Name: "usage", Type: dataset.String},
		{Name: "description", Type: dataset.String},
	}
	rows := make([][]any, len(registry))
	for i, c := range registry {
		rows[i] = []any{strings.Join(c.Names, ", "), c.Usage, c.Description}
	}
	return dataset.New(cols, rows)
}
