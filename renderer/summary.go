package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/j921216063/portfolio"
)

func SummaryMarkdown(name string, s *portfolio.PortfolioSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio %s", name))
	doc.PlainText(fmt.Sprintf("Total Market Value: %.2f", s.TotalValue))
	doc.PlainText(fmt.Sprintf("Invested Capital: %.2f", s.TotalCost))

	doc.H2("Performance")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Return", fmt.Sprintf("%.2f (%s)", s.TotalReturn, s.ReturnPct.SignedString())},
			{"Annualized Return (XIRR)", s.AnnualizedReturn.SignedString()},
			{"Max Drawdown", s.MaxDrawdown.String()},
			{"Sharpe Ratio", fmt.Sprintf("%.2f", s.SharpeRatio)},
			{"Volatility", s.Volatility.String()},
			{"Win Rate", s.WinRate.String()},
			{"Average Investment", fmt.Sprintf("%.2f", s.AvgInvestment)},
		},
	}
	doc.Table(table)

	return doc.String()
}
