package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/allocation/renderer"
	"github.com/etnz/allocation/table"
	"github.com/google/subcommands"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	events []event
	all    bool
	format string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the positions grouped by target" }
func (*positionsCmd) Usage() string {
	return `alloc positions [-all] [-sort <column>] [-expand <key>] [-nsort <key>:<column>] [-f md|term|html]

  Displays one row per target with the value of its positions, the value it
  aims at, and its unrealized gains. Positions claimed by no target are
  gathered in the "unallocated" row.

  -sort, -expand and -nsort are clicks on the table, replayed in order. They
  can be repeated: "-sort Value -sort Value" sorts by descending value.
  Columns are given by label or by index.

Usage Examples:
# Largest targets first, with the positions of "equities" by symbol.
$ alloc positions -sort Value -sort Value -expand equities -nsort equities:Symbol
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(eventFlag{kind: sortEvent, events: &c.events}, "sort", "toggle the sort of a column, by label or index")
	f.Var(eventFlag{kind: expandEvent, events: &c.events}, "expand", "toggle the expansion of a target, by key")
	f.Var(eventFlag{kind: nestedSortEvent, events: &c.events}, "nsort", "toggle the sort of a column of the positions of a target, as <key>:<column>")
	f.BoolVar(&c.all, "all", false, "expand every target before replaying the clicks")
	f.StringVar(&c.format, "f", "term", "output format (md, term, html)")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !validFormat(c.format) {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	t, err := LoadPositionTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.all {
		t.expandAll()
	}
	for _, e := range c.events {
		if err := t.apply(e); err != nil {
			fmt.Fprintf(os.Stderr, "Error on %s: %v\n", e, err)
			return subcommands.ExitUsageError
		}
	}

	if err := write(os.Stdout, c.format, "Positions", t.Render()); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering positions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func validFormat(format string) bool {
	switch format {
	case "md", "term", "html":
		return true
	}
	return false
}

// write renders t in format.
func write(w io.Writer, format, title string, t *table.Table) error {
	switch format {
	case "html":
		r, err := renderer.NewHTMLRenderer()
		if err != nil {
			return err
		}
		return r.Render(w, title, t, nil)
	case "term":
		return printMarkdown(w, renderer.Markdown(t))
	default:
		_, err := io.WriteString(w, renderer.Markdown(t))
		return err
	}
}
