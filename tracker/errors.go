/*
errors.go - Centralized error types for the tracker engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Boundary packages (store, api, cli) wrap these with transport context.

ERROR CATEGORIES:
  1. Input errors - Bad period types, malformed dates, inverted ranges
  2. Store errors - Missing records (only where absence is NOT neutral)

WHAT IS DELIBERATELY NOT AN ERROR:
  - A date with no entry: aggregation treats it as zero hours, display
    synthesizes a placeholder.
  - A period with no previous rollup: comparison returns neutral deltas.
  - Malformed numeric fields in stored records: coerced to zero at the
    storage boundary (see CoerceDecimal), never raised mid-aggregation.

USAGE:
  if errors.Is(err, tracker.ErrInvalidPeriodType) { ... }
*/
package tracker

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriodType is returned when a period operation receives a
	// type outside {weekly, biweekly, monthly, yearly}. Fatal to that call;
	// callers validate before dispatching.
	ErrInvalidPeriodType = errors.New("invalid period type")

	// ErrInvalidDate is returned when a date string is not canonical
	// YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned by store range loads when end is before
	// start; a caller with an inverted range has a bug, not an empty window.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrEntryNotFound is returned by stores when a single-entry lookup
	// misses. Range loads never return it; missing days are simply absent.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrRollupNotFound is returned by the advisory rollup cache on a miss.
	// Callers recompute; a miss is never user-visible.
	ErrRollupNotFound = errors.New("rollup not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidPeriodTypeError reports the offending value alongside the sentinel.
type InvalidPeriodTypeError struct {
	Value string
}

func (e *InvalidPeriodTypeError) Error() string {
	return fmt.Sprintf("invalid period type %q (want weekly, biweekly, monthly or yearly)", e.Value)
}

func (e *InvalidPeriodTypeError) Unwrap() error { return ErrInvalidPeriodType }

// InvalidDateError reports the unparseable input.
type InvalidDateError struct {
	Input string
	Cause error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD): %v", e.Input, e.Cause)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriodType) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRange)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrRollupNotFound)
}
