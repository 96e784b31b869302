package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/j921216063/portfolio/renderer"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	overrides overridesFlag
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display current holdings" }
func (*holdingCmd) Usage() string {
	return `pfd holding [-price SYMBOL=PRICE]...

  Displays the current positions with value, cost basis, average cost and
  unrealized return, sorted by market value. Positions priced through a
  manual override are flagged with '*'.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	c.overrides = make(overridesFlag)
	f.Var(c.overrides, "price", "Manual price override, SYMBOL=PRICE. Repeatable.")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, status := runSimulation(c.overrides)
	if data == nil {
		return status
	}
	printMarkdown(renderer.HoldingsMarkdown(data.Holdings))
	return subcommands.ExitSuccess
}
