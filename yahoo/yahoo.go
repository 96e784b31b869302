// Package yahoo fetches daily prices from the Yahoo Finance chart API.
//
// Yahoo requires no API key for the v8 chart endpoint, which returns daily
// candles plus an adjusted close series. Responses are cached on disk for
// one day, so repeated runs do not hammer the endpoint.
package yahoo

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/j921216063/portfolio"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// rateSymbol is the currency pair quoted for the scalar exchange rate.
const rateSymbol = "TWD=X"

// Provider reads market data from Yahoo Finance.
type Provider struct {
	client  *http.Client
	baseURL string
}

// NewProvider returns a Provider with a daily disk-backed HTTP cache.
func NewProvider() *Provider {
	return &Provider{client: newDailyCachingClient(), baseURL: defaultBaseURL}
}

// chartResponse is the part of the v8 chart payload we read. Price series
// use pointers because Yahoo fills holidays and suspended days with nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// Fetch retrieves daily prices for every symbol since 'from' into a new
// MarketData. A symbol whose fetch fails contributes no points and is
// logged, never an error: coverage holes are a normal operating condition
// that the simulation's price fallbacks absorb.
func (p *Provider) Fetch(symbols []string, from portfolio.Date) *portfolio.MarketData {
	m := portfolio.NewMarketData()
	for _, symbol := range symbols {
		if err := p.fetchDaily(m, symbol, from); err != nil {
			log.Printf("yahoo: no data for %q: %v", symbol, err)
		}
	}
	m.SetExchangeRate(decimal.NewFromFloat(p.ExchangeRate()))
	return m
}

func (p *Provider) fetchDaily(m *portfolio.MarketData, symbol string, from portfolio.Date) error {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		p.baseURL, url.PathEscape(symbol), from.EndOfDay().AddDate(0, 0, -1).Unix(), time.Now().Unix())

	var payload chartResponse
	if err := jwget(p.client, addr, &payload); err != nil {
		return err
	}
	if len(payload.Chart.Result) == 0 {
		return fmt.Errorf("empty chart result")
	}
	result := payload.Chart.Result[0]

	var adj, closes []*float64
	if len(result.Indicators.Adjclose) > 0 {
		adj = result.Indicators.Adjclose[0].Adjclose
	}
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	for i, ts := range result.Timestamp {
		// adjusted close preferred, close as fallback
		var price *float64
		if i < len(adj) && adj[i] != nil {
			price = adj[i]
		} else if i < len(closes) {
			price = closes[i]
		}
		if price == nil || *price <= 0 {
			continue
		}
		day := portfolio.DateOf(time.Unix(ts, 0))
		m.Append(symbol, day, decimal.NewFromFloat(*price))
	}
	return nil
}

// ExchangeRate returns the latest quote for TWD=X, falling back to the
// hardcoded default when Yahoo is unreachable or the payload is unreadable.
func (p *Provider) ExchangeRate() float64 {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", p.baseURL, url.QueryEscape(rateSymbol))

	var jobj any
	if err := jwget(p.client, addr, &jobj); err != nil {
		log.Printf("yahoo: cannot fetch exchange rate: %v", err)
		return portfolio.DefaultExchangeRate
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		log.Printf("yahoo: cannot read exchange rate: %q %v", path, err)
		return portfolio.DefaultExchangeRate
	}
	// because jsonpath is never clear about whether it returns a list of one
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	rate, ok := jval.(float64)
	if !ok || rate <= 0 {
		log.Printf("yahoo: exchange rate is not a usable number: %v", jval)
		return portfolio.DefaultExchangeRate
	}
	return rate
}
