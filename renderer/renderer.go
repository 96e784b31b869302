// Package renderer turns processed portfolio data into markdown reports.
//
// It only consumes the output model; nothing here reaches back into the
// simulation or the market data.
package renderer

import (
	"strings"

	"github.com/j921216063/portfolio"
)

// Report renders the complete portfolio report: summary figures, current
// holdings, a sampled value history and the most recent transactions.
func Report(name string, data *portfolio.ProcessedData) string {
	var b strings.Builder
	b.WriteString(SummaryMarkdown(name, &data.Summary))
	b.WriteString("\n")
	b.WriteString(HoldingsMarkdown(data.Holdings))
	b.WriteString("\n")
	b.WriteString(HistoryMarkdown(data.Chart, 7))
	b.WriteString("\n")
	b.WriteString(TransactionsMarkdown(data.Transactions, 10))
	return b.String()
}
