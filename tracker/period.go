/*
period.go - Calendar and period resolution

PURPOSE:
  Pure functions mapping any date to its containing period of a given type,
  with stable string identifiers. Every aggregate in this system is computed
  over a period, so these boundaries are the foundation everything else
  stands on.

PERIOD TYPES:
  weekly    Monday through Sunday; id = the Monday's YYYY-MM-DD
  biweekly  14-day blocks anchored to each month's first Monday;
            id = the block's start date YYYY-MM-DD
  monthly   calendar month; id = YYYY-MM
  yearly    calendar year; id = YYYY

PARTITION INVARIANT:
  For a given type, every date belongs to exactly one period. Periods of a
  type are disjoint and contiguous; there are no gaps and no overlaps.

BIWEEKLY QUIRK (intentionally preserved):
  The 14-day cadence restarts at each month's anchor (the first Monday on or
  after the 1st). A block that would cross into the next month's anchor is
  cut short, so biweekly periods are NOT a continuous 14-day cadence across
  month boundaries. This matches the behavior users' historical data was
  bucketed under; do not "fix" it without repartitioning stored rollups.

SEE ALSO:
  - date.go: Date arithmetic these resolvers are built on
  - rollup.go: Groups entries by WeekID before overtime folding
*/
package tracker

import (
	"time"
)

// =============================================================================
// PERIOD TYPE
// =============================================================================

type PeriodType string

const (
	PeriodWeekly   PeriodType = "weekly"
	PeriodBiweekly PeriodType = "biweekly"
	PeriodMonthly  PeriodType = "monthly"
	PeriodYearly   PeriodType = "yearly"
)

// ParsePeriodType validates a caller-supplied period type string.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case PeriodWeekly, PeriodBiweekly, PeriodMonthly, PeriodYearly:
		return PeriodType(s), nil
	default:
		return "", &InvalidPeriodTypeError{Value: s}
	}
}

// =============================================================================
// PERIOD - A contiguous closed date range
// =============================================================================

type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns every day in the period, in order.
func (p Period) Days() []Date { return DateRange(p.Start, p.End) }

// TotalDays returns the number of calendar days in the period.
func (p Period) TotalDays() int { return DaysBetween(p.Start, p.End) + 1 }

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// WEEKLY RESOLUTION - Monday-start weeks
// =============================================================================

// WeekStart returns the Monday of the week containing d. Go numbers Sunday
// as weekday 0, so a Sunday must roll BACK to the Monday six days earlier,
// not forward to the next day.
func WeekStart(d Date) Date {
	if d.Weekday() == time.Sunday {
		return d.AddDays(-6)
	}
	return d.AddDays(-(int(d.Weekday()) - 1))
}

// WeekEnd returns the Sunday of the week containing d.
func WeekEnd(d Date) Date { return WeekStart(d).AddDays(6) }

// WeekDates returns the seven days of d's week, Monday through Sunday.
func WeekDates(d Date) []Date {
	return Period{Start: WeekStart(d), End: WeekEnd(d)}.Days()
}

// WeekID returns the canonical identifier of d's week: the Monday's date.
// Zero-padded ISO form means lexicographic order is chronological order.
func WeekID(d Date) string { return WeekStart(d).String() }

// =============================================================================
// BIWEEKLY RESOLUTION - Month-anchored 14-day blocks
// =============================================================================

// monthAnchor returns the first Monday on or after the 1st of the month.
// Block 0 of the month's biweekly cadence starts here.
func monthAnchor(year int, month time.Month) Date {
	d := NewDate(year, month, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDays(1)
	}
	return d
}

// biweekBlock returns the block of the month-anchored cadence containing d.
// Days before their own month's anchor belong to the previous month's
// cadence; any block is cut short where the next month's anchor takes over.
func biweekBlock(d Date) Period {
	anchor := monthAnchor(d.Year(), d.Month())
	if d.Before(anchor) {
		prev := NewDate(d.Year(), d.Month(), 1).AddDays(-1)
		anchor = monthAnchor(prev.Year(), prev.Month())
	}
	start := anchor.AddDays(14 * (DaysBetween(anchor, d) / 14))
	end := start.AddDays(13)

	// Anchor arithmetic works from the 1st so day-of-month overflow in
	// AddMonths can't skip a month.
	firstOfNext := NewDate(start.Year(), start.Month(), 1).AddMonths(1)
	nextAnchor := monthAnchor(firstOfNext.Year(), firstOfNext.Month())
	if !nextAnchor.After(end) {
		end = nextAnchor.AddDays(-1)
	}
	return Period{Start: start, End: end}
}

// BiweekID returns the canonical start date of the 14-day block containing d.
func BiweekID(d Date) string { return biweekBlock(d).Start.String() }

// =============================================================================
// MONTHLY / YEARLY RESOLUTION
// =============================================================================

func MonthID(d Date) string { return d.Time().Format("2006-01") }
func YearID(d Date) string  { return d.Time().Format("2006") }

// =============================================================================
// DISPATCH
// =============================================================================

// PeriodFor returns the period of the given type containing d.
func PeriodFor(pt PeriodType, d Date) (Period, error) {
	switch pt {
	case PeriodWeekly:
		return Period{Start: WeekStart(d), End: WeekEnd(d)}, nil
	case PeriodBiweekly:
		return biweekBlock(d), nil
	case PeriodMonthly:
		return Period{
			Start: StartOfMonth(d.Year(), d.Month()),
			End:   EndOfMonth(d.Year(), d.Month()),
		}, nil
	case PeriodYearly:
		return Period{Start: StartOfYear(d.Year()), End: EndOfYear(d.Year())}, nil
	default:
		return Period{}, &InvalidPeriodTypeError{Value: string(pt)}
	}
}

// PeriodIDFor returns the stable identifier of the period containing d.
func PeriodIDFor(pt PeriodType, d Date) (string, error) {
	switch pt {
	case PeriodWeekly:
		return WeekID(d), nil
	case PeriodBiweekly:
		return BiweekID(d), nil
	case PeriodMonthly:
		return MonthID(d), nil
	case PeriodYearly:
		return YearID(d), nil
	default:
		return "", &InvalidPeriodTypeError{Value: string(pt)}
	}
}

// PreviousPeriod returns the period of the same type immediately before p.
// The day before p.Start always lands in the predecessor, which keeps this
// correct even across the biweekly month-anchor reset.
func PreviousPeriod(pt PeriodType, p Period) (Period, error) {
	return PeriodFor(pt, p.Start.AddDays(-1))
}
