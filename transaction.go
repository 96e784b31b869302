package portfolio

import (
	"slices"
	"strings"
	"time"
)

// TxType identifies the kind of ledger entry found in the export.
type TxType string

// Transaction types recognized in the brokerage export.
const (
	TypeBuy              TxType = "Buy"
	TypeSell             TxType = "Sell"
	TypeSellAll          TxType = "Sell All"
	TypeDividend         TxType = "Dividend"
	TypeDividendReinvest TxType = "Dividend Reinvest"
	TypeOther            TxType = "Other"
)

// IsSell reports whether the type is any flavor of sale.
//
// This is a substring match on purpose: the export uses both "Sell" and
// "Sell All", and unknown sale-like variants should still reduce the
// position rather than be ignored.
func (t TxType) IsSell() bool { return strings.Contains(string(t), "Sell") }

// Transaction is one ledger entry from the brokerage export.
//
// A Transaction is created once by the importer and never modified; the
// simulator consumes it read-only. Shares is always non-negative, the
// direction is implied by Type. Amount is the signed cash flow derived
// from Type: negative for cash out (purchases), positive for cash in
// (sales), zero otherwise.
type Transaction struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Portfolio  string    `json:"portfolio"`
	Currency   string    `json:"currency"`
	Shares     Quantity  `json:"shares"`
	Price      Money     `json:"price"`
	Commission Money     `json:"commission"`
	Date       time.Time `json:"date"`
	Type       TxType    `json:"type"`
	Amount     Money     `json:"amount"`
}

// Day returns the UTC calendar day of the transaction.
func (t Transaction) Day() Date { return DateOf(t.Date) }

// deriveAmount computes the signed cash flow of a transaction from its type.
// The sign is never stored independently: Buy and Dividend Reinvest cost
// cash, sales bring cash in net of commission, anything else is cash neutral.
func deriveAmount(typ TxType, shares Quantity, price, commission Money) Money {
	switch {
	case typ == TypeBuy || typ == TypeDividendReinvest:
		return price.Mul(shares).Add(commission).Neg()
	case typ.IsSell():
		return price.Mul(shares).Sub(commission)
	default:
		return M(0, price.Currency())
	}
}

// SelectPortfolio returns the transactions belonging to the named
// sub-portfolio, sorted ascending by timestamp. The input slice is not
// modified.
func SelectPortfolio(txs []Transaction, name string) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if tx.Portfolio == name {
			out = append(out, tx)
		}
	}
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// Portfolios returns the sorted set of portfolio names present in the transactions.
func Portfolios(txs []Transaction) []string {
	visited := make(map[string]struct{})
	var names []string
	for _, tx := range txs {
		if _, ok := visited[tx.Portfolio]; !ok {
			visited[tx.Portfolio] = struct{}{}
			names = append(names, tx.Portfolio)
		}
	}
	slices.Sort(names)
	return names
}

// Symbols returns the sorted set of symbols present in the transactions.
func Symbols(txs []Transaction) []string {
	visited := make(map[string]struct{})
	var symbols []string
	for _, tx := range txs {
		if _, ok := visited[tx.Symbol]; !ok {
			visited[tx.Symbol] = struct{}{}
			symbols = append(symbols, tx.Symbol)
		}
	}
	slices.Sort(symbols)
	return symbols
}
