package portfolio

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Share counts below these thresholds are treated as rounding dust left
// over from fractional sells, not as positions.
var (
	dailyDust   = Q(0.0001)
	holdingDust = Q(0.001)
)

// position is the running per-symbol state of one simulation run: shares
// held, cumulative cost basis in the transaction currency, and the
// currency code. Cost basis and shares move together under
// weighted-average-cost accounting; a sale removes cost in proportion to
// the shares sold, never per lot.
type position struct {
	shares    Quantity
	costBasis Money
	currency  string
}

// averageCost is the cost basis per share held.
func (p *position) averageCost() decimal.Decimal {
	return p.costBasis.Div(p.shares).Amount()
}

// Simulate replays the transactions of the selected sub-portfolio one
// calendar day at a time and returns the processed result: summary
// statistics, the daily valuation series, current holdings and the
// transaction list. It returns nil when no transactions belong to the
// selected portfolio.
//
// The walk runs from the end of the first transaction's UTC calendar day
// through the end of asOf's. End-of-day boundaries keep a transaction
// booked late in any timezone inside its own calendar day. Transactions
// are consumed in strict chronological order through a cursor and never
// reprocessed; prices come from the resolver's priority chain, so a held
// position always values to something even with no market data at all.
//
// Identical inputs produce identical outputs: asOf is the injectable end
// boundary, callers wanting "today" pass time.Now().
func Simulate(txs []Transaction, market *MarketData, selected string, overrides map[string]decimal.Decimal, asOf time.Time) *ProcessedData {
	selection := SelectPortfolio(txs, selected)
	if len(selection) == 0 {
		return nil
	}

	resolver := newPriceResolver(market, overrides)
	positions := make(map[string]*position)
	var (
		invested decimal.Decimal
		flows    []CashFlow
		chart    []ChartPoint
	)

	end := DateOf(asOf.UTC())
	cursor := 0
	for day := selection[0].Day(); !day.After(end); day = day.Add(1) {
		boundary := day.EndOfDay()
		for cursor < len(selection) && !selection[cursor].Date.After(boundary) {
			tx := selection[cursor]
			cursor++

			pos, ok := positions[tx.Symbol]
			if !ok {
				pos = &position{costBasis: M(0, tx.Currency), currency: tx.Currency}
				positions[tx.Symbol] = pos
			}
			resolver.Observe(tx)

			switch {
			case tx.Type == TypeBuy:
				// the position keeps its first-seen currency; a buy booked
				// in another currency still adds its raw amount, the math
				// must never reject user data
				cost := tx.Amount.Abs().Amount()
				pos.shares = pos.shares.Add(tx.Shares)
				pos.costBasis = M(pos.costBasis.Amount().Add(cost), pos.currency)
				invested = invested.Add(cost)
				flows = append(flows, CashFlow{Amount: tx.Amount.InexactFloat64(), Date: tx.Date})
			case tx.Type.IsSell():
				if pos.shares.IsPositive() {
					removed := pos.costBasis.Mul(tx.Shares.Div(pos.shares))
					pos.costBasis = pos.costBasis.Sub(removed)
					invested = invested.Sub(removed.Amount())
					pos.shares = pos.shares.Sub(tx.Shares)
				}
				// the cash flow counts even on an oversell
				flows = append(flows, CashFlow{Amount: tx.Amount.InexactFloat64(), Date: tx.Date})
			case tx.Type == TypeDividendReinvest:
				// non-cash reinvestment, shares only
				pos.shares = pos.shares.Add(tx.Shares)
			}
		}

		var dayValue decimal.Decimal
		for sym, pos := range positions {
			if !pos.shares.GreaterThan(dailyDust) {
				continue
			}
			price, _ := resolver.Resolve(sym, day, pos)
			dayValue = dayValue.Add(price.Mul(pos.shares.value))
		}

		value := dayValue.InexactFloat64()
		inv := invested.InexactFloat64()
		switch {
		case value <= 0.001 && inv > 0:
			// every price tier failed at once, typically the first day
			// before any data exists: report break-even, not -100%
			chart = append(chart, ChartPoint{Day: day, Time: boundary, Value: inv, Invested: inv})
		case value > 0 || inv > 0:
			p := ChartPoint{Day: day, Time: boundary, Value: value, Invested: inv, Return: value - inv}
			if inv > 0 {
				p.ReturnPct = Percent((value - inv) / inv * 100)
			}
			chart = append(chart, p)
		}
	}

	var holdings []Holding
	for sym, pos := range positions {
		if !pos.shares.GreaterThan(holdingDust) {
			continue
		}
		// a zero day skips the market tier, "today" resolves from
		// override, cache or average cost
		price, overridden := resolver.Resolve(sym, Date{}, pos)
		value := M(price, pos.currency).Mul(pos.shares)
		h := Holding{
			Symbol:       sym,
			Shares:       pos.shares,
			CurrentPrice: M(price, pos.currency),
			Value:        value,
			Currency:     pos.currency,
			CostBasis:    pos.costBasis,
			Overridden:   overridden,
		}
		if pos.costBasis.IsPositive() {
			h.ReturnPct = Percent(value.Sub(pos.costBasis).Amount().Div(pos.costBasis.Amount()).InexactFloat64() * 100)
		}
		if pos.shares.IsPositive() {
			h.AverageCost = pos.costBasis.Div(pos.shares)
		} else {
			h.AverageCost = M(0, pos.currency)
		}
		holdings = append(holdings, h)
	}
	slices.SortFunc(holdings, func(a, b Holding) int {
		if c := b.Value.Amount().Cmp(a.Value.Amount()); c != 0 {
			return c
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})

	chartValues := make([]float64, len(chart))
	for i, p := range chart {
		chartValues[i] = p.Value
	}
	weekly := WeeklyReturns(chartValues)

	newestFirst := slices.Clone(selection)
	slices.Reverse(newestFirst)

	return &ProcessedData{
		Summary:      deriveSummary(holdings, invested.InexactFloat64(), chartValues, weekly, flows, asOf, len(selection)),
		Chart:        chart,
		Holdings:     holdings,
		Transactions: newestFirst,
	}
}
