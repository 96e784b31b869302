package portfolio

import "github.com/shopspring/decimal"

// Market-data coverage is unreliable: symbols go missing on fetch failure,
// specific days have holes, delisted tickers stop updating entirely. The
// simulation must still produce a usable valuation for every held position
// on every day, so price resolution is a short-circuiting priority chain:
//
//  1. user override for the symbol, unconditionally;
//  2. externally supplied market price for the exact day, which also
//     refreshes the last-known-price cache;
//  3. the cached last-known price;
//  4. average cost (cost basis / shares), cached as the new last-known price.
//
// The chain lives in its own type so the policy can be tested on its own.
type priceResolver struct {
	overrides map[string]decimal.Decimal
	market    *MarketData
	lastKnown map[string]decimal.Decimal
}

func newPriceResolver(market *MarketData, overrides map[string]decimal.Decimal) *priceResolver {
	return &priceResolver{
		overrides: overrides,
		market:    market,
		lastKnown: make(map[string]decimal.Decimal),
	}
}

// Observe caches a price baseline from a transaction the moment it is
// applied: the transaction's own per-share price when positive, otherwise
// |amount| / shares when both are usable. This guarantees a baseline exists
// even before any market data arrives for the symbol.
func (r *priceResolver) Observe(tx Transaction) {
	if tx.Price.IsPositive() {
		r.lastKnown[tx.Symbol] = tx.Price.Amount()
		return
	}
	if !tx.Amount.IsZero() && tx.Shares.IsPositive() {
		r.lastKnown[tx.Symbol] = tx.Amount.Abs().Div(tx.Shares).Amount()
	}
}

// Resolve returns the price of a symbol for a given day, and whether it
// came from a user override. A zero day skips the exact-day market lookup:
// valuing current holdings relies on the override/cache/average-cost tiers
// only. pos provides the average-cost fallback and may be nil.
func (r *priceResolver) Resolve(symbol string, day Date, pos *position) (price decimal.Decimal, overridden bool) {
	if ov, ok := r.overrides[symbol]; ok && ov.IsPositive() {
		return ov, true
	}

	if !day.IsZero() && r.market != nil {
		if p, ok := r.market.Price(symbol, day); ok && p.IsPositive() {
			r.lastKnown[symbol] = p
		}
	}

	price = r.lastKnown[symbol]

	if !price.IsPositive() && pos != nil && pos.costBasis.IsPositive() && pos.shares.IsPositive() {
		price = pos.averageCost()
		r.lastKnown[symbol] = price
	}
	return price, false
}
