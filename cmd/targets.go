package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

type targetsCmd struct {
	sort   string
	desc   bool
	format string
}

func (*targetsCmd) Name() string     { return "targets" }
func (*targetsCmd) Synopsis() string { return "list the allocation targets" }
func (*targetsCmd) Usage() string {
	return `alloc targets [-sort <column> [-desc]] [-f md|term|html]

  Lists the targets with their weight and tickers, by descending weight
  unless sorted otherwise.
`
}

func (c *targetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "", "sort by column, by label or index")
	f.BoolVar(&c.desc, "desc", false, "sort in descending order")
	f.StringVar(&c.format, "f", "term", "output format (md, term, html)")
}

func (c *targetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !validFormat(c.format) {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	targets, err := DecodeTargets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading targets: %v\n", err)
		return subcommands.ExitFailure
	}

	t := allocation.NewTargetTable(targets)
	if c.sort != "" {
		var labels []string
		for _, col := range t.Columns() {
			labels = append(labels, col.Label())
		}
		i, err := columnIndex(labels, c.sort)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if !t.Columns()[i].Sortable() {
			fmt.Fprintf(os.Stderr, "Error: column %q cannot be sorted\n", labels[i])
			return subcommands.ExitUsageError
		}
		t.ToggleSort(i)
		if c.desc {
			t.ToggleSort(i)
		}
	}

	if err := write(os.Stdout, c.format, "Targets", t.Render()); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering targets: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
