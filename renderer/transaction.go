package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/j921216063/portfolio"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx portfolio.Transaction) string {
	switch {
	case tx.Type == portfolio.TypeBuy:
		return fmt.Sprintf("Bought %s of %s for %s", tx.Shares, tx.Symbol, tx.Amount.Abs())
	case tx.Type.IsSell():
		return fmt.Sprintf("Sold %s of %s for %s", tx.Shares, tx.Symbol, tx.Amount)
	case tx.Type == portfolio.TypeDividendReinvest:
		return fmt.Sprintf("Reinvested %s of %s", tx.Shares, tx.Symbol)
	case tx.Type == portfolio.TypeDividend:
		return fmt.Sprintf("Dividend for %s", tx.Symbol)
	default:
		return fmt.Sprintf("%s %s", tx.Type, tx.Symbol)
	}
}

// TransactionsMarkdown renders the most recent transactions, at most
// 'limit' of them (0 means all). Input order is kept, the simulator hands
// them over newest first.
func TransactionsMarkdown(txs []portfolio.Transaction, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}
	if limit <= 0 || limit > len(txs) {
		limit = len(txs)
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Symbol", "Type", "Shares", "Price", "Amount"},
		Rows:      [][]string{},
	}
	for _, tx := range txs[:limit] {
		table.Rows = append(table.Rows, []string{
			tx.Day().String(),
			tx.Symbol,
			string(tx.Type),
			tx.Shares.String(),
			tx.Price.String(),
			tx.Amount.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
