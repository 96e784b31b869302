// Package cmd implements the CLI application to inspect a brokerage export.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/j921216063/portfolio"
	"github.com/j921216063/portfolio/yahoo"
)

// Commands lists every subcommand of the application, in display order.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&holdingCmd{},
	&historyCmd{},
	&txCmd{},
	&fetchCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var csvFile = flag.String("csv", "transactions.csv", "Path to the brokerage transaction export (CSV)")
var marketFile = flag.String("market-data", "", "Path to an offline market data file (JSONL). When empty, prices are fetched from Yahoo Finance.")
var portfolioName = flag.String("portfolio", "Default", "Portfolio to report on")

// LoadTransactions imports the transaction export named by the -csv flag.
func LoadTransactions() ([]portfolio.Transaction, error) {
	f, err := os.Open(*csvFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open transaction export: %w", err)
	}
	defer f.Close()
	return portfolio.ImportTransactions(f)
}

// LoadMarketData returns prices for the given transactions: from the
// offline file named by the -market-data flag when set, otherwise fetched
// from Yahoo Finance starting at the first transaction's day.
func LoadMarketData(txs []portfolio.Transaction) (*portfolio.MarketData, error) {
	if *marketFile != "" {
		f, err := os.Open(*marketFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open market data file: %w", err)
		}
		defer f.Close()
		return portfolio.ImportMarketData(f)
	}

	if len(txs) == 0 {
		return portfolio.NewMarketData(), nil
	}
	from := txs[0].Day()
	for _, tx := range txs[1:] {
		if tx.Day().Before(from) {
			from = tx.Day()
		}
	}
	return yahoo.NewProvider().Fetch(portfolio.Symbols(txs), from), nil
}

// runSimulation loads the export and market data, then replays the
// flag-selected portfolio as of now. A nil result means the selected
// portfolio has no transactions, which is nothing to display, not an
// error.
func runSimulation(overrides overridesFlag) (*portfolio.ProcessedData, subcommands.ExitStatus) {
	txs, err := LoadTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	market, err := LoadMarketData(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	data := portfolio.Simulate(txs, market, *portfolioName, overrides, time.Now())
	if data == nil {
		fmt.Printf("No transactions in portfolio %q.\n", *portfolioName)
		return nil, subcommands.ExitSuccess
	}
	return data, subcommands.ExitSuccess
}

// overridesFlag is a repeatable SYMBOL=PRICE flag collecting manual price
// overrides.
type overridesFlag map[string]decimal.Decimal

func (o overridesFlag) String() string {
	var pairs []string
	for sym, price := range o {
		pairs = append(pairs, fmt.Sprintf("%s=%s", sym, price))
	}
	return strings.Join(pairs, ",")
}

func (o overridesFlag) Set(v string) error {
	sym, val, ok := strings.Cut(v, "=")
	sym = strings.TrimSpace(sym)
	if !ok || sym == "" {
		return fmt.Errorf("want SYMBOL=PRICE, got %q", v)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("invalid price in %q: %w", v, err)
	}
	o[sym] = price
	return nil
}
