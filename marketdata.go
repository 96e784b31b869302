package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultExchangeRate is the hardcoded foreign-currency-per-local-currency
// rate used when the market-data provider could not supply one.
const DefaultExchangeRate = 32.0

// MarketData holds externally supplied daily prices for a set of symbols,
// plus a single scalar currency exchange rate.
//
// Coverage is unreliable by nature: a symbol may be missing entirely (fetch
// failure, delisted ticker) or have holes on specific days. The simulator
// layers its own fallbacks on top, so MarketData only answers exact-day
// lookups.
type MarketData struct {
	prices       map[string]*History[decimal.Decimal]
	exchangeRate decimal.Decimal
}

// NewMarketData returns a new empty market data collection.
func NewMarketData() *MarketData {
	return &MarketData{
		prices:       make(map[string]*History[decimal.Decimal]),
		exchangeRate: decimal.NewFromFloat(DefaultExchangeRate),
	}
}

// Append records the price of a symbol on a given day, overwriting any
// previous value for that day.
func (m *MarketData) Append(symbol string, day Date, price decimal.Decimal) {
	h, ok := m.prices[symbol]
	if !ok {
		h = new(History[decimal.Decimal])
		m.prices[symbol] = h
	}
	h.Append(day, price)
}

// Has reports whether any price points exist for the symbol.
func (m *MarketData) Has(symbol string) bool {
	h, ok := m.prices[symbol]
	return ok && h.Len() > 0
}

// Price reads the price of a symbol on an exact day.
func (m *MarketData) Price(symbol string, day Date) (decimal.Decimal, bool) {
	h, ok := m.prices[symbol]
	if !ok {
		return decimal.Zero, false
	}
	return h.Get(day)
}

// Symbols returns the sorted list of symbols with market data.
func (m *MarketData) Symbols() []string {
	symbols := slices.Collect(maps.Keys(m.prices))
	slices.Sort(symbols)
	return symbols
}

// ExchangeRate returns the scalar currency exchange rate.
func (m *MarketData) ExchangeRate() decimal.Decimal { return m.exchangeRate }

// SetExchangeRate overrides the scalar currency exchange rate.
// Non-positive rates are ignored, keeping the previous (or default) value.
func (m *MarketData) SetExchangeRate(rate decimal.Decimal) {
	if rate.IsPositive() {
		m.exchangeRate = rate
	}
}

// the import/export format is a JSONL file, human readable and easy to
// diff: one line per symbol, plus at most one line carrying the exchange
// rate. Prices are stored as plain numbers keyed by ISO date.
type jmarket struct {
	Symbol       string             `json:"symbol,omitempty"`
	History      map[string]float64 `json:"history,omitempty"`
	ExchangeRate float64            `json:"exchangeRate,omitempty"`
}

// ImportMarketData imports market data from 'r' in the import/export format.
func ImportMarketData(r io.Reader) (*MarketData, error) {
	m := NewMarketData()
	scanner := bufio.NewScanner(r)
	// a symbol's whole history is one line, decades of daily prices blow
	// past the default 64KB token limit
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jm jmarket
		if err := json.Unmarshal(line, &jm); err != nil {
			return nil, fmt.Errorf("cannot parse line for market data import format: %q: %w", string(line), err)
		}
		if jm.ExchangeRate > 0 {
			m.SetExchangeRate(decimal.NewFromFloat(jm.ExchangeRate))
		}
		for day, price := range jm.History {
			d, err := ParseDate(day)
			if err != nil {
				return nil, fmt.Errorf("invalid day %q for symbol %q: %w", day, jm.Symbol, err)
			}
			m.Append(jm.Symbol, d, decimal.NewFromFloat(price))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read market data: %w", err)
	}
	return m, nil
}

// ExportMarketData exports the market data to 'w' in the import/export format.
func ExportMarketData(w io.Writer, m *MarketData) error {
	write := func(jm jmarket) error {
		data, err := json.Marshal(jm)
		if err != nil {
			return fmt.Errorf("cannot marshal market data for %q: %w", jm.Symbol, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write market data format: %w", err)
		}
		return nil
	}

	if err := write(jmarket{ExchangeRate: m.exchangeRate.InexactFloat64()}); err != nil {
		return err
	}
	for _, symbol := range m.Symbols() {
		jm := jmarket{Symbol: symbol, History: make(map[string]float64)}
		for day, price := range m.prices[symbol].Values() {
			jm.History[day.String()] = price.InexactFloat64()
		}
		if err := write(jm); err != nil {
			return err
		}
	}
	return nil
}
