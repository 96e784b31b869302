package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/j921216063/portfolio/renderer"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	overrides overridesFlag
	step      int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily valuation history" }
func (*historyCmd) Usage() string {
	return `pfd history [-step <days>]

  Displays the portfolio value series, one row every -step simulated days
  (the last day is always shown).
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.overrides = make(overridesFlag)
	f.Var(c.overrides, "price", "Manual price override, SYMBOL=PRICE. Repeatable.")
	f.IntVar(&c.step, "step", 7, "Days between displayed rows.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, status := runSimulation(c.overrides)
	if data == nil {
		return status
	}
	printMarkdown(renderer.HistoryMarkdown(data.Chart, c.step))
	return subcommands.ExitSuccess
}
