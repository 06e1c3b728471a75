/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements tracker.EntryStore and tracker.RollupStore using SQLite. In a
  hosted deployment the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  entries:         One row per user per day; date is part of the key
  weekly_time_off: Supplemental PTO/holiday hours keyed by week id
  rollup_cache:    Advisory cache of computed rollups (JSON payload)

COERCION AT THE BOUNDARY:
  Hours and rates are stored as TEXT and run through tracker.CoerceDecimal
  at scan time. This is the single place lenient numeric parsing happens;
  the engine never sees a malformed value.

CACHE SEMANTICS:
  rollup_cache rows are advisory. They are overwritten on every
  recomputation and a miss simply means recompute; nothing treats a cached
  rollup as authoritative.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/hours.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - tracker/store.go: Interface definitions
  - tracker/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Onerb58/hours-tracker/tracker"
)

// Store implements the tracker storage interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// Compile-time interface checks
var (
	_ tracker.EntryStore  = (*Store)(nil)
	_ tracker.RollupStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Daily entries (one row per user per day)
	CREATE TABLE IF NOT EXISTS entries (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours TEXT NOT NULL DEFAULT '0',
		hourly_rate TEXT NOT NULL DEFAULT '0',
		coworker TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries(user_id, date);

	-- Supplemental non-worked hours keyed by week id (Monday date)
	CREATE TABLE IF NOT EXISTS weekly_time_off (
		user_id TEXT NOT NULL,
		week_id TEXT NOT NULL,
		pto_hours TEXT NOT NULL DEFAULT '0',
		holiday_hours TEXT NOT NULL DEFAULT '0',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, week_id)
	);

	-- Advisory cache of computed rollups
	CREATE TABLE IF NOT EXISTS rollup_cache (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		period_type TEXT NOT NULL,
		period_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (user_id, period_type, period_id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENTRIES
// =============================================================================

func (s *Store) LoadEntries(ctx context.Context, userID string, start, end tracker.Date) ([]tracker.Entry, error) {
	if end.Before(start) {
		return nil, tracker.ErrInvalidRange
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, hours, hourly_rate, coworker, notes
		FROM entries
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	var entries []tracker.Entry
	for rows.Next() {
		var dateStr, hours, rate, coworker, notes string
		if err := rows.Scan(&dateStr, &hours, &rate, &coworker, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		date, err := tracker.ParseDate(dateStr)
		if err != nil {
			// A row with an unparseable date can't be bucketed; skip it
			// rather than poison the whole range.
			continue
		}
		entries = append(entries, tracker.Entry{
			Date:       date,
			Hours:      tracker.CoerceDecimal(hours),
			HourlyRate: tracker.CoerceDecimal(rate),
			Coworker:   coworker,
			Notes:      notes,
		})
	}
	return entries, rows.Err()
}

func (s *Store) SaveEntry(ctx context.Context, userID string, entry tracker.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (user_id, date, hours, hourly_rate, coworker, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			hours = excluded.hours,
			hourly_rate = excluded.hourly_rate,
			coworker = excluded.coworker,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		userID, entry.Date.String(), entry.Hours.String(), entry.HourlyRate.String(),
		entry.Coworker, entry.Notes, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// GetEntry returns a single day's entry or tracker.ErrEntryNotFound.
func (s *Store) GetEntry(ctx context.Context, userID string, date tracker.Date) (*tracker.Entry, error) {
	var hours, rate, coworker, notes string
	err := s.db.QueryRowContext(ctx, `
		SELECT hours, hourly_rate, coworker, notes
		FROM entries WHERE user_id = ? AND date = ?`,
		userID, date.String()).Scan(&hours, &rate, &coworker, &notes)
	if err == sql.ErrNoRows {
		return nil, tracker.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &tracker.Entry{
		Date:       date,
		Hours:      tracker.CoerceDecimal(hours),
		HourlyRate: tracker.CoerceDecimal(rate),
		Coworker:   coworker,
		Notes:      notes,
	}, nil
}

// =============================================================================
// WEEKLY TIME OFF
// =============================================================================

func (s *Store) LoadWeeklyTimeOff(ctx context.Context, userID string, start, end tracker.Date) (map[string]tracker.WeeklyTimeOff, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT week_id, pto_hours, holiday_hours
		FROM weekly_time_off
		WHERE user_id = ? AND week_id >= ? AND week_id <= ?`,
		userID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly time off: %w", err)
	}
	defer rows.Close()

	result := make(map[string]tracker.WeeklyTimeOff)
	for rows.Next() {
		var weekID, pto, holiday string
		if err := rows.Scan(&weekID, &pto, &holiday); err != nil {
			return nil, fmt.Errorf("failed to scan time off: %w", err)
		}
		result[weekID] = tracker.WeeklyTimeOff{
			PTOHours:     tracker.CoerceDecimal(pto),
			HolidayHours: tracker.CoerceDecimal(holiday),
		}
	}
	return result, rows.Err()
}

func (s *Store) SaveWeeklyTimeOff(ctx context.Context, userID string, weekID string, off tracker.WeeklyTimeOff) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weekly_time_off (user_id, week_id, pto_hours, holiday_hours, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, week_id) DO UPDATE SET
			pto_hours = excluded.pto_hours,
			holiday_hours = excluded.holiday_hours,
			updated_at = excluded.updated_at`,
		userID, weekID, off.PTOHours.String(), off.HolidayHours.String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save weekly time off: %w", err)
	}
	return nil
}

// =============================================================================
// ROLLUP CACHE
// =============================================================================

func (s *Store) SaveRollup(ctx context.Context, userID string, periodType tracker.PeriodType, periodID string, rollup tracker.Rollup) error {
	payload, err := json.Marshal(rollup)
	if err != nil {
		return fmt.Errorf("failed to encode rollup: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rollup_cache (id, user_id, period_type, period_id, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, period_type, period_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		uuid.NewString(), userID, string(periodType), periodID, string(payload),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save rollup: %w", err)
	}
	return nil
}

func (s *Store) LoadRollup(ctx context.Context, userID string, periodType tracker.PeriodType, periodID string) (*tracker.Rollup, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM rollup_cache
		WHERE user_id = ? AND period_type = ? AND period_id = ?`,
		userID, string(periodType), periodID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, tracker.ErrRollupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rollup: %w", err)
	}

	var rollup tracker.Rollup
	if err := json.Unmarshal([]byte(payload), &rollup); err != nil {
		// A corrupt cache row is a miss, not a failure: the caller
		// recomputes and overwrites it.
		return nil, tracker.ErrRollupNotFound
	}
	return &rollup, nil
}

// Reset drops all data. Dev/test only.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM entries;
		DELETE FROM weekly_time_off;
		DELETE FROM rollup_cache;`)
	return err
}
