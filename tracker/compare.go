/*
compare.go - Period-over-period comparison

PURPOSE:
  Computes signed deltas and percentage changes between a current rollup
  and the rollup of the immediately preceding period of the same type.

NEUTRALITY:
  A first-ever period has no predecessor. That is not an error: a nil
  previous rollup, or one with zero total hours, yields all-zero deltas so
  the view renders flat instead of failing.
*/
package tracker

import (
	"github.com/shopspring/decimal"
)

// Comparison is the delta view between two consecutive same-typed rollups.
// Absolute deltas are rounded to 2 decimals, percentages to 1.
type Comparison struct {
	HoursDelta               decimal.Decimal
	HoursDeltaPercent        decimal.Decimal
	EarningsDelta            decimal.Decimal
	EarningsDeltaPercent     decimal.Decimal
	DaysWorkedDelta          int
	DaysWorkedDeltaPercent   decimal.Decimal
	AverageHoursDelta        decimal.Decimal
	AverageHoursDeltaPercent decimal.Decimal
}

// Compare computes current minus previous. A nil or zero-hours previous
// rollup returns the neutral zero comparison.
func Compare(current Rollup, previous *Rollup) Comparison {
	if previous == nil || !previous.TotalHours.IsPositive() {
		return Comparison{}
	}

	daysDelta := current.DaysWorked - previous.DaysWorked

	return Comparison{
		HoursDelta:               current.TotalHours.Sub(previous.TotalHours).Round(2),
		HoursDeltaPercent:        percentChange(current.TotalHours, previous.TotalHours),
		EarningsDelta:            current.TotalEarnings.Sub(previous.TotalEarnings).Round(2),
		EarningsDeltaPercent:     percentChange(current.TotalEarnings, previous.TotalEarnings),
		DaysWorkedDelta:          daysDelta,
		DaysWorkedDeltaPercent:   percentChangeInt(daysDelta, previous.DaysWorked),
		AverageHoursDelta:        current.AverageHoursPerDay.Sub(previous.AverageHoursPerDay).Round(2),
		AverageHoursDeltaPercent: percentChange(current.AverageHoursPerDay, previous.AverageHoursPerDay),
	}
}

func percentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
}

func percentChangeInt(delta, previous int) decimal.Decimal {
	if previous == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(delta)).
		Div(decimal.NewFromInt(int64(previous))).
		Mul(decimal.NewFromInt(100)).Round(1)
}
