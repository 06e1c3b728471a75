/*
overtime.go - Weekly overtime folding

PURPOSE:
  Splits one week's total hours into regular (up to 40) and overtime
  (beyond 40, paid at 1.5x) and computes the matching earnings split.
  This is the only place the 40-hour threshold and the 1.5 multiplier
  live; every larger aggregate sums these weekly results.

RATE POLICY:
  A week is priced at a single effective rate: the first nonzero rate among
  its entries, or zero if none. Genuine mid-week rate changes are ignored
  on purpose; a per-entry overtime split would change historical totals.

CALLER CONTRACT:
  The input must already be exactly one week's entries. This function does
  not detect week boundaries; see rollup.go for the grouping.
*/
package tracker

import (
	"github.com/shopspring/decimal"
)

// Overtime policy constants.
var (
	weeklyRegularCap   = decimal.NewFromInt(40)
	overtimeMultiplier = decimal.NewFromFloat(1.5)
)

// WeekTotals is the overtime-folded result for a single week.
type WeekTotals struct {
	TotalHours       decimal.Decimal
	RegularHours     decimal.Decimal
	OvertimeHours    decimal.Decimal
	RegularEarnings  decimal.Decimal
	OvertimeEarnings decimal.Decimal
	TotalEarnings    decimal.Decimal
}

// FoldWeek computes the regular/overtime split for one week's entries.
// Pure and deterministic; hours stay at source precision, money is rounded
// to cents.
func FoldWeek(entries []Entry) WeekTotals {
	total := decimal.Zero
	rate := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Hours)
		if rate.IsZero() && !e.HourlyRate.IsZero() {
			rate = e.HourlyRate
		}
	}

	regular := total
	overtime := decimal.Zero
	if total.GreaterThan(weeklyRegularCap) {
		regular = weeklyRegularCap
		overtime = total.Sub(weeklyRegularCap)
	}

	regularEarnings := regular.Mul(rate).Round(2)
	overtimeEarnings := overtime.Mul(rate).Mul(overtimeMultiplier).Round(2)

	return WeekTotals{
		TotalHours:       total,
		RegularHours:     regular,
		OvertimeHours:    overtime,
		RegularEarnings:  regularEarnings,
		OvertimeEarnings: overtimeEarnings,
		TotalEarnings:    regularEarnings.Add(overtimeEarnings),
	}
}
