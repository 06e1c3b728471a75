package tracker

import (
	"encoding/json"
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date (the only time resolution the core uses)
// =============================================================================

// DateFormat is the canonical string form of a Date. It doubles as the
// weekly/biweekly period identifier format, which makes lexicographic sort
// equal to chronological sort.
const DateFormat = "2006-01-02"

// Date is a calendar day, always normalized to midnight UTC. All period
// boundaries and entry keys are Dates; time-of-day never enters the core.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time to its calendar day. Use this at every
// boundary where a time.Time enters the core so DST/timezone offsets can't
// leak into day comparisons.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses the canonical YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s, Cause: err}
	}
	return DateOf(t), nil
}

// MustParseDate is for tests and compile-time-known literals only.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic. Month/year adds use Go's AddDate normalization: day-of-month
// overflow rolls forward (Jan 31 + 1 month = Mar 2/3). Chosen once, applied
// everywhere, and relied on by the period resolver.
func (d Date) AddDays(n int) Date   { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) AddWeeks(n int) Date  { return DateOf(d.t.AddDate(0, 0, 7*n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.t.AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return DateOf(d.t.AddDate(n, 0, 0)) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

// WeekdayName returns the display name for the entry's weekday column.
// Always derived from the date, never stored authoritatively.
func (d Date) WeekdayName() string { return d.t.Weekday().String() }

func (d Date) String() string { return d.t.Format(DateFormat) }

// JSON round-trips through the canonical string form.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns the signed whole-day distance from 'from' to 'to'.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// DateRange returns every day in [start, end] in order, inclusive both
// ends. Empty when start is after end.
func DateRange(start, end Date) []Date {
	if start.After(end) {
		return nil
	}
	dates := make([]Date, 0, DaysBetween(start, end)+1)
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1).AddMonths(1).AddDays(-1)
}

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }
