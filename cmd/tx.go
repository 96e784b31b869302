package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/j921216063/portfolio/renderer"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	overrides overridesFlag
	limit     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "display the transaction log, newest first" }
func (*txCmd) Usage() string {
	return `pfd tx [-n <count>]

  Displays the portfolio's transactions, most recent first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	c.overrides = make(overridesFlag)
	f.IntVar(&c.limit, "n", 20, "Number of transactions to display, 0 for all.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, status := runSimulation(c.overrides)
	if data == nil {
		return status
	}
	printMarkdown(renderer.TransactionsMarkdown(data.Transactions, c.limit))
	return subcommands.ExitSuccess
}
