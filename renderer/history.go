package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/j921216063/portfolio"
)

// HistoryMarkdown renders the valuation series as a table, sampled every
// 'step' days so multi-year histories stay readable. The last day is
// always included.
func HistoryMarkdown(chart []portfolio.ChartPoint, step int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Value History")
	if len(chart) == 0 {
		doc.PlainText("No valuation history.")
		return doc.String()
	}
	if step < 1 {
		step = 1
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Value", "Invested", "Return"},
		Rows:      [][]string{},
	}
	for i := 0; i < len(chart); i += step {
		table.Rows = append(table.Rows, historyRow(chart[i]))
	}
	if last := len(chart) - 1; last%step != 0 {
		table.Rows = append(table.Rows, historyRow(chart[last]))
	}
	doc.Table(table)

	return doc.String()
}

func historyRow(p portfolio.ChartPoint) []string {
	return []string{
		p.Day.String(),
		fmt.Sprintf("%.2f", p.Value),
		fmt.Sprintf("%.2f", p.Invested),
		p.ReturnPct.SignedString(),
	}
}
