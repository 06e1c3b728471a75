/*
Package tracker is the period rollup and overtime-aggregation engine.

PURPOSE:
  Given a flat set of daily time entries, the engine resolves calendar
  periods (week / biweek / month / year), filters entries into a period,
  folds weekly overtime, aggregates hours and earnings, and computes
  period-over-period comparisons.

KEY CONCEPTS IN THIS FILE (entry.go):
  - Entry: One calendar day's recorded work (hours, rate snapshot, notes)
  - Placeholder synthesis: Missing days become zero-hour display rows
  - CoerceDecimal: Single-point lenient parsing of numeric fields

DESIGN PRINCIPLES:
  1. Purity: Every computation is a pure function of its inputs; callers may
     invoke them concurrently without coordination.
  2. Precision: shopspring/decimal for all hours and money; floats only at
     the display boundary.
  3. Idempotence: A rollup is a pure function of its entries and can be
     recomputed any number of times; persisted rollups are advisory caches.
  4. Leniency at the edge: Malformed numerics coerce to zero exactly once,
     at ingestion, so aggregation code never sees a bad value.

SEE ALSO:
  - period.go: Period boundaries and identifiers
  - overtime.go: Per-week regular/overtime folding
  - rollup.go: Period aggregation
*/
package tracker

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ENTRY - One calendar day's work record
// =============================================================================

// Entry is a single day's recorded work. Date is the unique key within a
// user's data set. HourlyRate is a snapshot of the rate in effect when the
// entry was last written; entries do not reprice when the user's configured
// rate later changes.
type Entry struct {
	Date       Date
	Hours      decimal.Decimal
	HourlyRate decimal.Decimal
	Coworker   string
	Notes      string
}

// Weekday returns the entry's display weekday name, always derived from
// Date. There is no stored weekday field to drift out of sync.
func (e Entry) Weekday() string { return e.Date.WeekdayName() }

// Worked reports whether any hours were logged.
func (e Entry) Worked() bool { return e.Hours.IsPositive() }

// Earnings returns the naive hours x rate product for this single day.
// Overtime-aware earnings exist only at week granularity; see overtime.go.
func (e Entry) Earnings() decimal.Decimal { return e.Hours.Mul(e.HourlyRate) }

// PlaceholderEntry synthesizes the zero-hours record shown the first time a
// date is displayed. It exists for presentation only: aggregation never
// synthesizes placeholders, because absent days already contribute zero.
func PlaceholderEntry(d Date) Entry {
	return Entry{Date: d, Hours: decimal.Zero, HourlyRate: decimal.Zero}
}

// =============================================================================
// WEEK VIEW - Seven display rows, placeholders where no entry exists
// =============================================================================

// WeekView returns one entry per day of d's week, Monday through Sunday,
// substituting placeholders for days with no stored entry.
func WeekView(d Date, entries []Entry) []Entry {
	byDate := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date.String()] = e
	}

	days := WeekDates(d)
	view := make([]Entry, 0, len(days))
	for _, day := range days {
		if e, ok := byDate[day.String()]; ok {
			view = append(view, e)
			continue
		}
		view = append(view, PlaceholderEntry(day))
	}
	return view
}

// =============================================================================
// LENIENT NUMERIC COERCION - Applied once, at the storage boundary
// =============================================================================

// CoerceDecimal parses a stored numeric field, coercing anything malformed
// (or negative, which has no meaning for hours or rates) to zero. Keeping
// aggregation total-preserving in the face of partially written records is
// deliberate policy: a bad field costs one day's value, never the rollup.
func CoerceDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
