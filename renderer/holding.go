package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/j921216063/portfolio"
)

func HoldingsMarkdown(holdings []portfolio.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Holdings")
	if len(holdings) == 0 {
		doc.PlainText("No current holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Shares", "Price", "Value", "Cost Basis", "Avg Cost", "Return"},
		Rows:   [][]string{},
	}
	for _, h := range holdings {
		symbol := h.Symbol
		if h.Overridden {
			// flag manually priced positions
			symbol += " *"
		}
		table.Rows = append(table.Rows, []string{
			symbol,
			h.Shares.String(),
			h.CurrentPrice.String(),
			h.Value.String(),
			h.CostBasis.String(),
			h.AverageCost.String(),
			h.ReturnPct.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
