/*
rollup.go - Period aggregation

PURPOSE:
  Computes the Rollup for an arbitrary period: filter entries into the
  range, group them by week, fold overtime per week, then sum across weeks.
  This is the single source of truth for every total the user sees.

WHY GROUP BY WEEK FIRST:
  Overtime is a weekly concept. A monthly total computed as hours x rate
  would silently drop the 1.5x premium, and a continuous sum across the
  period would misattribute hours at period boundaries. Each week is folded
  against only its own entries, so a period whose first or last week is
  partial still prices those weeks correctly.

IDEMPOTENCE:
  A Rollup is a pure function of its inputs. Recomputing on the same
  entries yields the same result (LastUpdated aside), so persisted rollups
  are advisory caches, never an authoritative ledger. Racing writers on the
  external store at worst cause a recomputation from a stale snapshot,
  which the next recomputation converges away.

SEE ALSO:
  - overtime.go: The per-week fold
  - compare.go: Deltas between consecutive rollups
  - aggregate.go: Day/week/month chart buckets
*/
package tracker

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLLUP - Recomputable aggregate over a period's entries
// =============================================================================

type Rollup struct {
	PeriodStart Date
	PeriodEnd   Date

	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal

	TotalEarnings    decimal.Decimal
	RegularEarnings  decimal.Decimal
	OvertimeEarnings decimal.Decimal

	// DaysWorked counts entries with hours > 0; TotalDays counts calendar
	// days in the period.
	DaysWorked int
	TotalDays  int

	// AverageHoursPerDay is over days worked; the IncludingNonWork variant
	// is over every calendar day in the period.
	AverageHoursPerDay                 decimal.Decimal
	AverageHoursPerDayIncludingNonWork decimal.Decimal

	// Entries are the contributing period entries, retained for display,
	// export, and the chart aggregators.
	Entries []Entry

	LastUpdated time.Time
}

// =============================================================================
// WEEKLY TIME OFF - Supplemental non-worked paid hours
// =============================================================================

// WeeklyTimeOff holds supplemental paid-but-not-worked hours for one week,
// keyed externally by the week's id. Folded additively into a rollup's
// paid-hours totals at straight rate; time off never counts toward the
// overtime threshold. A week straddling a period boundary has its time off
// attributed only to the period owning its Monday.
type WeeklyTimeOff struct {
	PTOHours     decimal.Decimal
	HolidayHours decimal.Decimal
}

func (w WeeklyTimeOff) Total() decimal.Decimal { return w.PTOHours.Add(w.HolidayHours) }

// =============================================================================
// CALCULATION
// =============================================================================

// CalculateRollup computes the rollup for [periodStart, periodEnd].
// Safe to re-invoke any number of times on the same inputs.
func CalculateRollup(entries []Entry, periodStart, periodEnd Date) Rollup {
	return CalculateRollupWithTimeOff(entries, periodStart, periodEnd, nil)
}

// CalculateRollupWithTimeOff is CalculateRollup plus supplemental weekly
// time off, keyed by week id. Time-off hours for a week are paid at that
// week's effective rate as regular hours, on top of the worked fold.
func CalculateRollupWithTimeOff(entries []Entry, periodStart, periodEnd Date, timeOff map[string]WeeklyTimeOff) Rollup {
	periodEntries := FilterByPeriod(entries, periodStart, periodEnd)

	weeks := groupByWeek(periodEntries)

	totalHours := decimal.Zero
	regularHours := decimal.Zero
	overtimeHours := decimal.Zero
	regularEarnings := decimal.Zero
	overtimeEarnings := decimal.Zero

	for weekID, weekEntries := range weeks {
		wt := FoldWeek(weekEntries)
		totalHours = totalHours.Add(wt.TotalHours)
		regularHours = regularHours.Add(wt.RegularHours)
		overtimeHours = overtimeHours.Add(wt.OvertimeHours)
		regularEarnings = regularEarnings.Add(wt.RegularEarnings)
		overtimeEarnings = overtimeEarnings.Add(wt.OvertimeEarnings)

		if off, ok := timeOff[weekID]; ok && weekOwnedBy(weekID, periodStart, periodEnd) {
			offHours := off.Total()
			rate := weekRate(weekEntries)
			totalHours = totalHours.Add(offHours)
			regularHours = regularHours.Add(offHours)
			regularEarnings = regularEarnings.Add(offHours.Mul(rate).Round(2))
		}
	}

	// Weeks with time off but no entries still contribute hours.
	for weekID, off := range timeOff {
		if _, seen := weeks[weekID]; seen {
			continue
		}
		if !weekOwnedBy(weekID, periodStart, periodEnd) {
			continue
		}
		offHours := off.Total()
		totalHours = totalHours.Add(offHours)
		regularHours = regularHours.Add(offHours)
	}

	daysWorked := 0
	for _, e := range periodEntries {
		if e.Worked() {
			daysWorked++
		}
	}
	totalDays := Period{Start: periodStart, End: periodEnd}.TotalDays()

	avgWorked := decimal.Zero
	if daysWorked > 0 {
		avgWorked = totalHours.Div(decimal.NewFromInt(int64(daysWorked))).Round(2)
	}
	avgAll := decimal.Zero
	if totalDays > 0 {
		avgAll = totalHours.Div(decimal.NewFromInt(int64(totalDays))).Round(2)
	}

	return Rollup{
		PeriodStart:                        periodStart,
		PeriodEnd:                          periodEnd,
		TotalHours:                         totalHours.Round(2),
		RegularHours:                       regularHours.Round(2),
		OvertimeHours:                      overtimeHours.Round(2),
		TotalEarnings:                      regularEarnings.Add(overtimeEarnings).Round(2),
		RegularEarnings:                    regularEarnings.Round(2),
		OvertimeEarnings:                   overtimeEarnings.Round(2),
		DaysWorked:                         daysWorked,
		TotalDays:                          totalDays,
		AverageHoursPerDay:                 avgWorked,
		AverageHoursPerDayIncludingNonWork: avgAll,
		Entries:                            periodEntries,
		LastUpdated:                        time.Now().UTC(),
	}
}

// groupByWeek buckets entries by their week id.
func groupByWeek(entries []Entry) map[string][]Entry {
	weeks := make(map[string][]Entry)
	for _, e := range entries {
		id := WeekID(e.Date)
		weeks[id] = append(weeks[id], e)
	}
	return weeks
}

// weekIDs returns the bucket keys in chronological order. WeekID is a
// zero-padded ISO date, so a string sort is a date sort.
func weekIDs(weeks map[string][]Entry) []string {
	ids := make([]string, 0, len(weeks))
	for id := range weeks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// weekRate returns the week's effective rate: first nonzero rate wins.
func weekRate(entries []Entry) decimal.Decimal {
	for _, e := range entries {
		if !e.HourlyRate.IsZero() {
			return e.HourlyRate
		}
	}
	return decimal.Zero
}

// weekOwnedBy reports whether the week identified by weekID is attributed
// to [start, end]. A week straddling a period boundary belongs to exactly
// one period: the one containing its Monday, the same owning rule
// GroupByMonth uses, so adjacent monthly rollups never both count a
// boundary week's time off. Malformed ids are skipped rather than failed:
// time-off keys come from the store and follow the same lenient policy as
// numeric fields.
func weekOwnedBy(weekID string, start, end Date) bool {
	monday, err := ParseDate(weekID)
	if err != nil {
		return false
	}
	return monday.AfterOrEqual(start) && monday.BeforeOrEqual(end)
}
