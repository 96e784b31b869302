package portfolio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMarketDataPrice(t *testing.T) {
	m := NewMarketData()
	m.Append("AAPL", NewDate(2024, 2, 16), decimal.NewFromFloat(182.31))

	if !m.Has("AAPL") {
		t.Errorf("Has(AAPL) = false, want true")
	}
	if m.Has("VT") {
		t.Errorf("Has(VT) = true, want false")
	}

	p, ok := m.Price("AAPL", NewDate(2024, 2, 16))
	if !ok || !p.Equal(decimal.NewFromFloat(182.31)) {
		t.Errorf("Price(AAPL, 2024-02-16) = %v, %v, want 182.31, true", p, ok)
	}
	// exact-day lookups only, gaps are for the caller to fill
	if _, ok := m.Price("AAPL", NewDate(2024, 2, 17)); ok {
		t.Errorf("Price(AAPL, 2024-02-17) = _, true, want false")
	}
	if _, ok := m.Price("VT", NewDate(2024, 2, 16)); ok {
		t.Errorf("Price(unknown symbol) = _, true, want false")
	}
}

func TestMarketDataExchangeRate(t *testing.T) {
	m := NewMarketData()
	if got := m.ExchangeRate().InexactFloat64(); got != DefaultExchangeRate {
		t.Errorf("ExchangeRate() = %v, want default %v", got, DefaultExchangeRate)
	}

	m.SetExchangeRate(decimal.NewFromFloat(31.5))
	if got := m.ExchangeRate().InexactFloat64(); got != 31.5 {
		t.Errorf("ExchangeRate() = %v, want 31.5", got)
	}

	// non-positive rates keep the previous value
	m.SetExchangeRate(decimal.Zero)
	m.SetExchangeRate(decimal.NewFromFloat(-1))
	if got := m.ExchangeRate().InexactFloat64(); got != 31.5 {
		t.Errorf("ExchangeRate() after bad sets = %v, want 31.5", got)
	}
}

func TestMarketDataImportExport(t *testing.T) {
	m := NewMarketData()
	m.SetExchangeRate(decimal.NewFromFloat(31.2))
	m.Append("AAPL", NewDate(2024, 2, 16), decimal.NewFromFloat(182.31))
	m.Append("AAPL", NewDate(2024, 2, 17), decimal.NewFromFloat(183.0))
	m.Append("VT", NewDate(2024, 2, 16), decimal.NewFromFloat(105.5))

	var sb strings.Builder
	if err := ExportMarketData(&sb, m); err != nil {
		t.Fatalf("ExportMarketData() error = %v", err)
	}

	back, err := ImportMarketData(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ImportMarketData() error = %v", err)
	}

	if got := back.ExchangeRate().InexactFloat64(); got != 31.2 {
		t.Errorf("round-trip ExchangeRate() = %v, want 31.2", got)
	}
	if got := back.Symbols(); len(got) != 2 || got[0] != "AAPL" || got[1] != "VT" {
		t.Errorf("round-trip Symbols() = %v, want [AAPL VT]", got)
	}
	p, ok := back.Price("AAPL", NewDate(2024, 2, 17))
	if !ok || !p.Equal(decimal.NewFromFloat(183.0)) {
		t.Errorf("round-trip Price(AAPL, 2024-02-17) = %v, %v, want 183, true", p, ok)
	}
}

// A decade of daily prices lives on a single line, far past the default
// scanner token limit. The round trip must survive it.
func TestMarketDataImportExportLongHistory(t *testing.T) {
	m := NewMarketData()
	start := NewDate(2014, 1, 1)
	for i := 0; i < 4000; i++ {
		m.Append("AAPL", start.Add(i), decimal.NewFromInt(int64(100+i)))
	}

	var sb strings.Builder
	if err := ExportMarketData(&sb, m); err != nil {
		t.Fatalf("ExportMarketData() error = %v", err)
	}

	back, err := ImportMarketData(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ImportMarketData() error = %v", err)
	}
	p, ok := back.Price("AAPL", start.Add(3999))
	if !ok || !p.Equal(decimal.NewFromInt(4099)) {
		t.Errorf("round-trip Price(AAPL, last day) = %v, %v, want 4099, true", p, ok)
	}
}

func TestImportMarketDataBadLine(t *testing.T) {
	if _, err := ImportMarketData(strings.NewReader("not json\n")); err == nil {
		t.Errorf("ImportMarketData(bad line) error = nil, want error")
	}
}
