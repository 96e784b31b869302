package portfolio

import (
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Numerical methods for the summary statistics. They are pure functions
// decoupled from simulation state, and every degenerate input (empty
// series, zero denominator, non-finite result) maps to a neutral 0 rather
// than an error: statistics never stop a report from being produced.

// CashFlow is a single dated, signed cash movement. Negative amounts are
// cash out (purchases), positive amounts cash in (sales).
type CashFlow struct {
	Amount float64
	Date   time.Time
}

const (
	riskFreeRate = 0.02 // fixed annual risk-free rate for the Sharpe ratio
	weeksPerYear = 52
	hoursPerYear = 24 * 365 // exact-365-day years
)

// XIRR computes the annualized internal rate of return, in percent, of the
// given cash flows plus a terminal flow equal to the current total value on
// the valuation date.
//
// It runs Newton-Raphson on the net-present-value function: initial guess
// 0.1, derivative approximated by a finite difference at rate+0.0001, at
// most 50 iterations or until |NPV| < 1e-6, stopping early on a zero
// derivative. Degenerate sets (fewer than two flows), failure to converge
// and non-finite results all report 0.
func XIRR(flows []CashFlow, terminalValue float64, valuationDate time.Time) float64 {
	all := append(slices.Clone(flows), CashFlow{Amount: terminalValue, Date: valuationDate})
	if len(all) < 2 {
		return 0
	}

	t0 := all[0].Date
	xnpv := func(rate float64) float64 {
		var sum float64
		for _, cf := range all {
			years := cf.Date.Sub(t0).Hours() / hoursPerYear
			sum += cf.Amount / math.Pow(1+rate, years)
		}
		return sum
	}

	rate := 0.1
	converged := false
	for i := 0; i < 50; i++ {
		v := xnpv(rate)
		if math.Abs(v) < 1e-6 {
			converged = true
			break
		}
		d := (xnpv(rate+0.0001) - v) / 0.0001
		if d == 0 {
			break
		}
		rate -= v / d
	}

	if !converged || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate * 100
}

// MaxDrawdown returns the largest peak-to-trough decline of a value
// series, in percent. It is 0 for a monotonically non-decreasing series
// and always lies within [0, 100] for non-negative values.
func MaxDrawdown(values []float64) float64 {
	var peak, maxDD float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue // guard division by a zero running peak
		}
		if dd := (peak - v) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD * 100
}

// WeeklyReturns samples a chart-value series every 7 simulated days
// (strictly every 7th point, not 7 calendar days of gaps) and returns the
// percentage change between consecutive samples where the prior sample is
// positive.
func WeeklyReturns(values []float64) []float64 {
	var returns []float64
	for i := 7; i < len(values); i += 7 {
		prev := values[i-7]
		if prev > 0 {
			returns = append(returns, (values[i]-prev)/prev)
		}
	}
	return returns
}

// SharpeRatio is the annualized mean weekly return in excess of the
// risk-free rate, divided by the annualized weekly standard deviation.
// It reports 0 for fewer than 2 samples or zero variance.
func SharpeRatio(weekly []float64) float64 {
	if len(weekly) < 2 {
		return 0
	}
	mean := stat.Mean(weekly, nil)
	sd := stat.PopStdDev(weekly, nil)
	if sd == 0 {
		return 0
	}
	return (mean*weeksPerYear - riskFreeRate) / (sd * math.Sqrt(weeksPerYear))
}

// Volatility is the annualized standard deviation of weekly returns, in
// percent. It reports 0 for fewer than 2 samples.
func Volatility(weekly []float64) float64 {
	if len(weekly) < 2 {
		return 0
	}
	return stat.PopStdDev(weekly, nil) * math.Sqrt(weeksPerYear) * 100
}
