package portfolio

import (
	"math"
	"time"
)

// Output model of a simulation run. Everything here is derived data,
// recomputed in full on every run; nothing is persisted and nothing is
// updated incrementally.

// ChartPoint is one day of the valuation series: aggregate market value of
// every held position, cumulative invested capital, and the return both
// ways. The series has exactly one point per calendar day with no gaps,
// except that all-zero days before any capital is deployed produce none.
type ChartPoint struct {
	Day       Date      `json:"date"`
	Time      time.Time `json:"rawDate"`
	Value     float64   `json:"value"`
	Invested  float64   `json:"invested"`
	Return    float64   `json:"returnAbs"`
	ReturnPct Percent   `json:"returnPct"`
}

// Holding is the current state of one position, computed fresh from the
// final simulator state. Overridden reports that CurrentPrice came from a
// user-supplied override rather than market data or cost.
type Holding struct {
	Symbol       string   `json:"symbol"`
	Shares       Quantity `json:"shares"`
	CurrentPrice Money    `json:"currentPrice"`
	Value        Money    `json:"value"`
	Currency     string   `json:"currency"`
	CostBasis    Money    `json:"costBasis"`
	ReturnPct    Percent  `json:"returnPcnt"`
	AverageCost  Money    `json:"avgCost"`
	Overridden   bool     `json:"isOverridden"`
}

// PortfolioSummary aggregates one run into headline figures.
type PortfolioSummary struct {
	TotalValue       float64 `json:"totalValue"`
	TotalCost        float64 `json:"totalCost"`
	TotalReturn      float64 `json:"totalReturn"`
	ReturnPct        Percent `json:"returnPcnt"`
	AnnualizedReturn Percent `json:"annualizedReturn"`
	MaxDrawdown      Percent `json:"maxDrawdown"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	Volatility       Percent `json:"volatility"`
	WinRate          Percent `json:"winRate"`
	AvgInvestment    float64 `json:"avgInvestAmt"`
}

// ProcessedData is the full result of one simulation run, consumed by the
// presentation layer. Holdings are sorted descending by market value and
// Transactions newest first.
type ProcessedData struct {
	Summary      PortfolioSummary `json:"summary"`
	Chart        []ChartPoint     `json:"chartData"`
	Holdings     []Holding        `json:"holdings"`
	Transactions []Transaction    `json:"transactions"`
}

// deriveSummary computes the headline figures from final holdings,
// remaining invested capital, the chart series, the weekly samples and the
// recorded cash flows. txCount is the number of transactions in the
// selection and bounds the average investment denominator below by 1.
func deriveSummary(holdings []Holding, invested float64, chartValues, weekly []float64, flows []CashFlow, asOf time.Time, txCount int) PortfolioSummary {
	var totalValue float64
	var winners int
	for _, h := range holdings {
		totalValue += h.Value.InexactFloat64()
		if h.ReturnPct > 0 {
			winners++
		}
	}

	s := PortfolioSummary{
		TotalValue:       totalValue,
		TotalCost:        invested,
		TotalReturn:      totalValue - invested,
		AnnualizedReturn: Percent(XIRR(flows, totalValue, asOf)),
		MaxDrawdown:      Percent(MaxDrawdown(chartValues)),
		SharpeRatio:      SharpeRatio(weekly),
		Volatility:       Percent(Volatility(weekly)),
		AvgInvestment:    invested / math.Max(1, float64(txCount)),
	}
	if invested > 0 {
		s.ReturnPct = Percent((totalValue - invested) / invested * 100)
	}
	if len(holdings) > 0 {
		s.WinRate = Percent(float64(winners) / float64(len(holdings)) * 100)
	}
	return s
}
