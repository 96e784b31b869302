package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/j921216063/portfolio/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	overrides overridesFlag
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the full portfolio performance report" }
func (*summaryCmd) Usage() string {
	return `pfd summary [-price SYMBOL=PRICE]...

  Replays the transaction export day by day and displays the portfolio
  report: headline statistics, current holdings, value history and recent
  transactions.

Usage Examples:
# Full report for the default portfolio.
$ pfd summary

# Value a position at a manually entered price.
$ pfd summary -price AAPL=182.31

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.overrides = make(overridesFlag)
	f.Var(c.overrides, "price", "Manual price override, SYMBOL=PRICE. Repeatable.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, status := runSimulation(c.overrides)
	if data == nil {
		return status
	}
	printMarkdown(renderer.Report(*portfolioName, data))
	return subcommands.ExitSuccess
}
