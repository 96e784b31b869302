package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(id, symbol string, typ TxType, shares, price float64, day Date) Transaction {
	q, p := Q(shares), M(price, "USD")
	fee := M(0, "USD")
	return Transaction{
		ID:         id,
		Symbol:     symbol,
		Portfolio:  "Default",
		Currency:   "USD",
		Shares:     q,
		Price:      p,
		Commission: fee,
		Date:       day.EndOfDay().Add(-12 * time.Hour),
		Type:       typ,
		Amount:     deriveAmount(typ, q, p, fee),
	}
}

func TestSimulateEmptySelection(t *testing.T) {
	txs := []Transaction{tx("1", "AAPL", TypeBuy, 10, 100, NewDate(2024, 2, 16))}
	if got := Simulate(txs, NewMarketData(), "nope", nil, time.Now()); got != nil {
		t.Errorf("Simulate(unknown portfolio) = %v, want nil", got)
	}
	if got := Simulate(nil, NewMarketData(), "Default", nil, time.Now()); got != nil {
		t.Errorf("Simulate(no transactions) = %v, want nil", got)
	}
}

// A single buy with no market data at all must value at average cost, not
// at zero.
func TestSimulateAverageCostFallback(t *testing.T) {
	day := NewDate(2024, 2, 16)
	txs := []Transaction{tx("1", "AAPL", TypeBuy, 10, 100, day)}

	got := Simulate(txs, NewMarketData(), "Default", nil, day.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}

	if len(got.Chart) != 1 {
		t.Fatalf("Chart has %d points, want 1", len(got.Chart))
	}
	p := got.Chart[0]
	if p.Value != 1000 || p.Invested != 1000 || p.ReturnPct != 0 {
		t.Errorf("Chart[0] = value %v invested %v return %v, want 1000, 1000, 0%%", p.Value, p.Invested, p.ReturnPct)
	}

	if len(got.Holdings) != 1 {
		t.Fatalf("Holdings has %d entries, want 1", len(got.Holdings))
	}
	h := got.Holdings[0]
	if !h.Shares.Equal(Q(10)) {
		t.Errorf("Shares = %v, want 10", h.Shares)
	}
	if !h.CurrentPrice.Equal(M(100, "USD")) {
		t.Errorf("CurrentPrice = %v, want average cost $100", h.CurrentPrice)
	}
	if !h.Value.Equal(M(1000, "USD")) {
		t.Errorf("Value = %v, want $1000", h.Value)
	}
	if h.ReturnPct != 0 {
		t.Errorf("ReturnPct = %v, want 0", h.ReturnPct)
	}
	if h.Overridden {
		t.Errorf("Overridden = true, want false")
	}
}

// A partial sale removes cost basis in proportion to the shares sold.
func TestSimulatePartialSell(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	d2 := d1.Add(1)
	txs := []Transaction{
		tx("1", "AAPL", TypeBuy, 10, 100, d1),
		tx("2", "AAPL", TypeSell, 5, 120, d2),
	}

	got := Simulate(txs, NewMarketData(), "Default", nil, d2.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}

	h := got.Holdings[0]
	if !h.Shares.Equal(Q(5)) {
		t.Errorf("Shares = %v, want 5", h.Shares)
	}
	if !h.CostBasis.Equal(M(500, "USD")) {
		t.Errorf("CostBasis = %v, want $500 (half removed)", h.CostBasis)
	}
	// the sell price becomes the last-known price
	if !h.CurrentPrice.Equal(M(120, "USD")) {
		t.Errorf("CurrentPrice = %v, want $120", h.CurrentPrice)
	}
	if !h.Value.Equal(M(600, "USD")) {
		t.Errorf("Value = %v, want $600", h.Value)
	}
	if !h.ReturnPct.Equal(20) {
		t.Errorf("ReturnPct = %v, want 20%%", h.ReturnPct)
	}

	s := got.Summary
	if s.TotalValue != 600 || s.TotalCost != 500 || s.TotalReturn != 100 {
		t.Errorf("Summary = value %v cost %v return %v, want 600, 500, 100", s.TotalValue, s.TotalCost, s.TotalReturn)
	}
	if !s.ReturnPct.Equal(20) {
		t.Errorf("Summary.ReturnPct = %v, want 20%%", s.ReturnPct)
	}
}

// A full round-trip at the same price leaves no residual cost basis and no
// holding.
func TestSimulateRoundTrip(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	d2 := d1.Add(1)
	txs := []Transaction{
		tx("1", "AAPL", TypeBuy, 10, 100, d1),
		tx("2", "AAPL", TypeSellAll, 10, 100, d2),
	}

	got := Simulate(txs, NewMarketData(), "Default", nil, d2.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	if len(got.Holdings) != 0 {
		t.Errorf("Holdings = %v, want none after selling everything", got.Holdings)
	}
	if got.Summary.TotalCost != 0 {
		t.Errorf("TotalCost = %v, want 0 after the round trip", got.Summary.TotalCost)
	}
}

func TestSimulateOverrideWins(t *testing.T) {
	day := NewDate(2024, 2, 16)
	today := day.Add(1)
	m := NewMarketData()
	m.Append("AAPL", today, decimal.NewFromFloat(45))

	txs := []Transaction{tx("1", "AAPL", TypeBuy, 10, 40, day)}
	overrides := map[string]decimal.Decimal{"AAPL": decimal.NewFromFloat(50)}

	got := Simulate(txs, m, "Default", overrides, today.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	h := got.Holdings[0]
	if !h.CurrentPrice.Equal(M(50, "USD")) {
		t.Errorf("CurrentPrice = %v, want override $50 over market $45 and cache $40", h.CurrentPrice)
	}
	if !h.Overridden {
		t.Errorf("Overridden = false, want true")
	}
}

// The chart has one point per calendar day with no gaps, even without any
// market data coverage.
func TestSimulateChartContinuity(t *testing.T) {
	start := NewDate(2024, 2, 16)
	end := start.Add(9)
	txs := []Transaction{tx("1", "AAPL", TypeBuy, 10, 100, start)}

	got := Simulate(txs, NewMarketData(), "Default", nil, end.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	if len(got.Chart) != 10 {
		t.Fatalf("Chart has %d points, want 10", len(got.Chart))
	}
	for i, p := range got.Chart {
		if want := start.Add(i); p.Day != want {
			t.Errorf("Chart[%d].Day = %v, want %v", i, p.Day, want)
		}
		if p.Value <= 0 {
			t.Errorf("Chart[%d].Value = %v, want positive", i, p.Value)
		}
	}
}

// Dividend reinvestments add shares without touching cost basis or
// invested capital.
func TestSimulateDividendReinvest(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	d2 := d1.Add(1)
	txs := []Transaction{
		tx("1", "AAPL", TypeBuy, 10, 100, d1),
		tx("2", "AAPL", TypeDividendReinvest, 2, 100, d2),
	}

	got := Simulate(txs, NewMarketData(), "Default", nil, d2.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	h := got.Holdings[0]
	if !h.Shares.Equal(Q(12)) {
		t.Errorf("Shares = %v, want 12", h.Shares)
	}
	if !h.CostBasis.Equal(M(1000, "USD")) {
		t.Errorf("CostBasis = %v, want unchanged $1000", h.CostBasis)
	}
	if got.Summary.TotalCost != 1000 {
		t.Errorf("TotalCost = %v, want unchanged 1000", got.Summary.TotalCost)
	}
}

// An oversell must not crash nor corrupt the remaining state.
func TestSimulateOversell(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	d2 := d1.Add(1)
	txs := []Transaction{
		tx("1", "AAPL", TypeBuy, 10, 100, d1),
		tx("2", "AAPL", TypeSell, 15, 100, d2),
	}

	got := Simulate(txs, NewMarketData(), "Default", nil, d2.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	if len(got.Holdings) != 0 {
		t.Errorf("Holdings = %v, want none after the oversell", got.Holdings)
	}
}

func TestSimulateOrdering(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	txs := []Transaction{
		tx("1", "AAPL", TypeBuy, 10, 100, d1),
		tx("2", "VT", TypeBuy, 100, 100, d1.Add(1)),
		tx("3", "AAPL", TypeBuy, 10, 100, d1.Add(2)),
	}

	got := Simulate(txs, NewMarketData(), "Default", nil, d1.Add(2).EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}

	// transactions come back newest first
	if got.Transactions[0].ID != "3" || got.Transactions[2].ID != "1" {
		t.Errorf("Transactions order = %s..%s, want 3..1", got.Transactions[0].ID, got.Transactions[2].ID)
	}
	// holdings sorted descending by market value
	if got.Holdings[0].Symbol != "VT" || got.Holdings[1].Symbol != "AAPL" {
		t.Errorf("Holdings order = %s, %s, want VT, AAPL", got.Holdings[0].Symbol, got.Holdings[1].Symbol)
	}
}

// Lots of one symbol booked in different currencies keep the first lot's
// currency and still sum their raw amounts, the run must never abort on
// data the importer accepted.
func TestSimulateMixedCurrencyLots(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	d2 := d1.Add(1)
	first := tx("1", "TSM", TypeBuy, 10, 100, d1)
	second := tx("2", "TSM", TypeBuy, 5, 200, d2)
	second.Currency = "TWD"
	second.Price = M(200, "TWD")
	second.Commission = M(0, "TWD")
	second.Amount = deriveAmount(TypeBuy, second.Shares, second.Price, second.Commission)

	got := Simulate([]Transaction{first, second}, NewMarketData(), "Default", nil, d2.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	h := got.Holdings[0]
	if h.Currency != "USD" {
		t.Errorf("Currency = %q, want first-seen USD", h.Currency)
	}
	if !h.Shares.Equal(Q(15)) {
		t.Errorf("Shares = %v, want 15", h.Shares)
	}
	if !h.CostBasis.Equal(M(2000, "USD")) {
		t.Errorf("CostBasis = %v, want $1000 + $1000 in the first currency", h.CostBasis)
	}
}

// Holdings with exactly equal values come back in alphabetical order, not
// in map iteration order.
func TestSimulateEqualValueOrdering(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	txs := []Transaction{
		tx("1", "VT", TypeBuy, 10, 100, d1),
		tx("2", "AAPL", TypeBuy, 10, 100, d1),
		tx("3", "MSFT", TypeBuy, 10, 100, d1),
	}
	want := []string{"AAPL", "MSFT", "VT"}
	for i := 0; i < 10; i++ {
		got := Simulate(txs, NewMarketData(), "Default", nil, d1.EndOfDay())
		if got == nil {
			t.Fatal("Simulate() = nil, want a result")
		}
		for j, w := range want {
			if sym := got.Holdings[j].Symbol; sym != w {
				t.Fatalf("run %d: Holdings[%d] = %s, want %s", i, j, sym, w)
			}
		}
	}
}

func TestSimulateMarketPrices(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	d3 := d1.Add(2)
	m := NewMarketData()
	m.Append("AAPL", d1.Add(1), decimal.NewFromFloat(110))

	txs := []Transaction{tx("1", "AAPL", TypeBuy, 10, 100, d1)}
	got := Simulate(txs, m, "Default", nil, d3.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}

	values := []float64{1000, 1100, 1100} // tx price, market day, carried cache
	for i, want := range values {
		if v := got.Chart[i].Value; math.Abs(v-want) > 1e-9 {
			t.Errorf("Chart[%d].Value = %v, want %v", i, v, want)
		}
	}
}

func TestSimulateWinRate(t *testing.T) {
	d1 := NewDate(2024, 2, 16)
	today := d1.Add(1)
	m := NewMarketData()
	m.Append("UP", today, decimal.NewFromFloat(120))
	m.Append("DOWN", today, decimal.NewFromFloat(80))

	txs := []Transaction{
		tx("1", "UP", TypeBuy, 10, 100, d1),
		tx("2", "DOWN", TypeBuy, 10, 100, d1),
	}
	got := Simulate(txs, m, "Default", nil, today.EndOfDay())
	if got == nil {
		t.Fatal("Simulate() = nil, want a result")
	}
	if !got.Summary.WinRate.Equal(50) {
		t.Errorf("WinRate = %v, want 50%%", got.Summary.WinRate)
	}
	if got.Summary.AvgInvestment != 1000 {
		t.Errorf("AvgInvestment = %v, want 1000", got.Summary.AvgInvestment)
	}
}
