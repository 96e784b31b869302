// Command pfd reconstructs a portfolio from a brokerage transaction export
// and reports its value, holdings and performance in the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/j921216063/portfolio/cmd"
)

func main() {
	// shell completion, a no-op outside of a completion request
	completion().Complete("pfd")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	globals := map[string]complete.Predictor{
		"csv":         predict.Files("*.csv"),
		"market-data": predict.Files("*.jsonl"),
		"portfolio":   predict.Something,
	}
	return &complete.Command{
		Flags: globals,
		Sub: map[string]*complete.Command{
			"summary": {Flags: map[string]complete.Predictor{"price": predict.Something}},
			"holding": {Flags: map[string]complete.Predictor{"price": predict.Something}},
			"history": {Flags: map[string]complete.Predictor{"price": predict.Something, "step": predict.Something}},
			"tx":      {Flags: map[string]complete.Predictor{"n": predict.Something}},
			"fetch":   {Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")}},
			"assist":  {Flags: map[string]complete.Predictor{"price": predict.Something}},
		},
	}
}
