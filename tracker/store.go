/*
store.go - Persistence contracts

PURPOSE:
  The engine is agnostic to how its inputs are obtained. These interfaces
  are the entire boundary: a storage layer implements them, the engine and
  its callers consume them. Implementations live in store/sqlite (durable)
  and tracker/store (in-memory, for tests and dev).

CACHE SEMANTICS:
  RollupStore is an ADVISORY cache. A rollup is always recomputable from
  entries; a cache miss means recompute, a stale hit is overwritten on the
  next recomputation. Nothing reads the cache as a source of truth.

COERCION CONTRACT:
  Implementations apply CoerceDecimal to numeric fields at scan time, so
  every Entry handed to the engine already carries clean decimals.
*/
package tracker

import (
	"context"
)

// EntryStore persists daily entries and weekly time off per user.
type EntryStore interface {
	// LoadEntries returns entries with start <= date <= end, ascending by
	// date. Days without an entry are simply absent.
	LoadEntries(ctx context.Context, userID string, start, end Date) ([]Entry, error)

	// SaveEntry upserts one day's record. The date is the key.
	SaveEntry(ctx context.Context, userID string, entry Entry) error

	// LoadWeeklyTimeOff returns supplemental non-worked hours for weeks
	// whose id (Monday date) falls in [start, end], keyed by week id.
	LoadWeeklyTimeOff(ctx context.Context, userID string, start, end Date) (map[string]WeeklyTimeOff, error)

	// SaveWeeklyTimeOff upserts one week's time off, keyed by week id.
	SaveWeeklyTimeOff(ctx context.Context, userID string, weekID string, off WeeklyTimeOff) error
}

// RollupStore caches computed rollups keyed by user, period type and
// period id.
type RollupStore interface {
	// SaveRollup writes through a freshly computed rollup.
	SaveRollup(ctx context.Context, userID string, periodType PeriodType, periodID string, rollup Rollup) error

	// LoadRollup returns a cached rollup or ErrRollupNotFound.
	LoadRollup(ctx context.Context, userID string, periodType PeriodType, periodID string) (*Rollup, error)
}
