/*
service.go - Store-backed orchestration

PURPOSE:
  Thin glue between the persistence contracts and the pure engine: load the
  period's entries and time off, compute, return. Both the HTTP handlers
  and the CLI go through these so the load-then-compute sequence exists
  exactly once.

  Rollup computation is invoked synchronously whenever a period is viewed;
  there is no debounce or background recomputation to race with.
*/
package tracker

import (
	"context"
)

// BuildRollup resolves the period of the given type containing date, loads
// that period's entries and weekly time off, and computes the rollup.
func BuildRollup(ctx context.Context, store EntryStore, userID string, pt PeriodType, date Date) (Rollup, Period, error) {
	period, err := PeriodFor(pt, date)
	if err != nil {
		return Rollup{}, Period{}, err
	}
	rollup, err := rollupForPeriod(ctx, store, userID, period)
	if err != nil {
		return Rollup{}, Period{}, err
	}
	return rollup, period, nil
}

// BuildComparison computes the rollup for the period containing date and
// its delta against the immediately preceding period of the same type.
func BuildComparison(ctx context.Context, store EntryStore, userID string, pt PeriodType, date Date) (Rollup, Comparison, error) {
	rollup, period, err := BuildRollup(ctx, store, userID, pt, date)
	if err != nil {
		return Rollup{}, Comparison{}, err
	}

	prevPeriod, err := PreviousPeriod(pt, period)
	if err != nil {
		return Rollup{}, Comparison{}, err
	}
	previous, err := rollupForPeriod(ctx, store, userID, prevPeriod)
	if err != nil {
		return Rollup{}, Comparison{}, err
	}

	return rollup, Compare(rollup, &previous), nil
}

func rollupForPeriod(ctx context.Context, store EntryStore, userID string, period Period) (Rollup, error) {
	entries, err := store.LoadEntries(ctx, userID, period.Start, period.End)
	if err != nil {
		return Rollup{}, err
	}
	// Time off is keyed by Monday, and a week is attributed to the period
	// owning its Monday, so the period's own bounds cover every owned key.
	timeOff, err := store.LoadWeeklyTimeOff(ctx, userID, period.Start, period.End)
	if err != nil {
		return Rollup{}, err
	}
	return CalculateRollupWithTimeOff(entries, period.Start, period.End, timeOff), nil
}
