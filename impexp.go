package portfolio

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to import the raw brokerage export format.
// The export is a loose CSV: quoted fields may embed commas, numeric cells
// may carry currency symbols and thousands separators, and rows that cannot
// be recovered are dropped with a diagnostic rather than failing the import.

// Column names of the brokerage export, matched case-sensitively after
// trimming surrounding quotes.
const (
	colDate       = "Transaction Date"
	colSymbol     = "Symbol"
	colType       = "Type"
	colShares     = "Shares Owned"
	colPrice      = "Cost Per Share"
	colCommission = "Commission"
	colCurrency   = "Currency"
	colPortfolio  = "Portfolio"
)

// cashMarker flags the pseudo-symbols used for cash-leg bookkeeping rows
// (e.g. "USD=CASH"). Those are not investable instruments and are excluded.
const cashMarker = "CASH"

// ImportTransactions parses a raw brokerage export into a normalized
// sequence of transactions.
//
// The first line is the header row; every other non-blank line is one
// candidate transaction. Rows missing a date or symbol, rows for cash
// pseudo-symbols, and rows whose date cannot be parsed are skipped with a
// log diagnostic. Empty input yields an empty result, not an error.
func ImportTransactions(r io.Reader) ([]Transaction, error) {
	if r == nil {
		return nil, nil
	}

	scanner := bufio.NewScanner(r)
	var headers []string
	var txs []Transaction
	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}
		if headers == nil {
			// Header cells are plain comma separated.
			for _, h := range strings.Split(row, ",") {
				headers = append(headers, trimQuotes(h))
			}
			continue
		}

		cells := splitRow(row)
		entry := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				entry[h] = cells[i]
			}
		}

		if entry[colDate] == "" || entry[colSymbol] == "" {
			log.Printf("import: skipping line %d: missing date or symbol", line)
			continue
		}
		if strings.Contains(entry[colSymbol], cashMarker) {
			continue // cash bookkeeping row
		}

		when, err := ParseTxTime(entry[colDate])
		if err != nil {
			log.Printf("import: skipping line %d: invalid date %q", line, entry[colDate])
			continue
		}

		typ := TxType(entry[colType])
		if typ == "" {
			typ = TypeOther
		}
		currency := entry[colCurrency]
		if currency == "" {
			currency = "USD"
		}
		name := entry[colPortfolio]
		if name == "" {
			name = "Default"
		}

		shares := Q(cleanNumber(entry[colShares]))
		price := M(cleanNumber(entry[colPrice]), currency)
		commission := M(cleanNumber(entry[colCommission]), currency)

		txs = append(txs, Transaction{
			ID:         fmt.Sprintf("%d", line),
			Symbol:     entry[colSymbol],
			Portfolio:  name,
			Currency:   currency,
			Shares:     shares,
			Price:      price,
			Commission: commission,
			Date:       when,
			Type:       typ,
			Amount:     deriveAmount(typ, shares, price, commission),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transaction export: %w", err)
	}
	return txs, nil
}

// splitRow splits a CSV row on commas that are not enclosed by a matched
// pair of double-quote groups. This is deliberately not a full RFC-4180
// parser: embedded commas inside a quoted field are supported, embedded
// newlines are not.
func splitRow(row string) []string {
	var cells []string
	var b strings.Builder
	inQuotes := false
	for _, r := range row {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ',' && !inQuotes:
			cells = append(cells, trimQuotes(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	cells = append(cells, trimQuotes(b.String()))
	return cells
}

// trimQuotes removes one pair of surrounding double quotes and any
// surrounding whitespace from a cell.
func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

// cleanNumber parses a numeric cell after stripping currency symbols and
// thousands separators. Unparsable cells default to zero: a missing number
// must never abort the import of an otherwise valid row.
func cleanNumber(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
