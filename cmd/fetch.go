package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/j921216063/portfolio"
	"github.com/j921216063/portfolio/yahoo"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	out string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch market data and save it for offline use" }
func (*fetchCmd) Usage() string {
	return `pfd fetch [-o <file>]

  Fetches daily prices from Yahoo Finance for every symbol in the
  transaction export, plus the currency exchange rate, and writes them to
  a JSONL file. Later runs can consume it with the global -market-data
  flag instead of hitting the network.

Usage Examples:
$ pfd fetch -o market.jsonl
$ pfd summary -market-data market.jsonl
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "market.jsonl", "File to write the market data to.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := LoadTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(txs) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no transactions, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	from := txs[0].Day()
	for _, tx := range txs[1:] {
		if tx.Day().Before(from) {
			from = tx.Day()
		}
	}
	m := yahoo.NewProvider().Fetch(portfolio.Symbols(txs), from)

	w, err := os.Create(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	defer w.Close()
	if err := portfolio.ExportMarketData(w, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Saved market data for %d symbols to %s\n", len(m.Symbols()), c.out)
	return subcommands.ExitSuccess
}
