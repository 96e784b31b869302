// Package portfolio reconstructs the daily history of an investment
// portfolio from a raw brokerage transaction export.
//
// The core functionalities include:
//   - Transaction Import: Parsing an inconsistent CSV export into a
//     normalized, validated sequence of transactions, dropping rows that
//     cannot be recovered rather than failing the whole import.
//   - Valuation Simulation: A day-by-day walk over the transaction history
//     that maintains holdings and weighted-average cost basis, resolving a
//     price for every held symbol on every day from a layered fallback
//     policy (user override, market data, last known price, average cost).
//   - Performance Statistics: XIRR via Newton-Raphson root finding, maximum
//     drawdown, Sharpe ratio, volatility and win rate, all with defined
//     neutral fallbacks for degenerate inputs.
//   - Market Data: A per-symbol daily price history container that can be
//     filled by the yahoo subpackage or imported from a JSONL file.
//
// This package serves as the foundational logic for the `pfd` command-line
// tool; it performs no I/O of its own and identical inputs always produce
// identical outputs.
package portfolio
