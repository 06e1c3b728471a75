package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Onerb58/hours-tracker/store/sqlite"
	"github.com/Onerb58/hours-tracker/tracker"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testEntry(d tracker.Date, hours, rate float64) tracker.Entry {
	return tracker.Entry{
		Date:       d,
		Hours:      decimal.NewFromFloat(hours),
		HourlyRate: decimal.NewFromFloat(rate),
		Coworker:   "alex",
		Notes:      "site visit",
	}
}

func TestEntries_SaveAndLoadRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d := tracker.NewDate(2025, time.January, 6+i)
		require.NoError(t, store.SaveEntry(ctx, "u1", testEntry(d, 8, 25)))
	}
	// Out-of-range entry
	require.NoError(t, store.SaveEntry(ctx, "u1", testEntry(tracker.NewDate(2025, time.January, 20), 8, 25)))
	// Different user
	require.NoError(t, store.SaveEntry(ctx, "u2", testEntry(tracker.NewDate(2025, time.January, 7), 8, 25)))

	entries, err := store.LoadEntries(ctx, "u1", tracker.NewDate(2025, time.January, 6), tracker.NewDate(2025, time.January, 12))
	require.NoError(t, err)
	require.Len(t, entries, 5)

	// Ascending by date
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].Date.Before(entries[i].Date))
	}
	assert.Equal(t, "alex", entries[0].Coworker)
	assert.Equal(t, "site visit", entries[0].Notes)
	assert.Equal(t, "8.00", entries[0].Hours.StringFixed(2))
}

func TestEntries_UpsertOverwritesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	d := tracker.NewDate(2025, time.January, 6)

	require.NoError(t, store.SaveEntry(ctx, "u1", testEntry(d, 8, 25)))

	updated := testEntry(d, 9.5, 27)
	updated.Notes = "stayed late"
	require.NoError(t, store.SaveEntry(ctx, "u1", updated))

	got, err := store.GetEntry(ctx, "u1", d)
	require.NoError(t, err)
	assert.Equal(t, "9.50", got.Hours.StringFixed(2))
	assert.Equal(t, "27.00", got.HourlyRate.StringFixed(2))
	assert.Equal(t, "stayed late", got.Notes)
}

func TestLoadEntries_InvertedRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadEntries(ctx, "u1",
		tracker.NewDate(2025, time.January, 31), tracker.NewDate(2025, time.January, 1))
	require.ErrorIs(t, err, tracker.ErrInvalidRange)
}

func TestGetEntry_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetEntry(context.Background(), "u1", tracker.NewDate(2025, time.January, 6))
	assert.ErrorIs(t, err, tracker.ErrEntryNotFound)
}

func TestWeeklyTimeOff_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	off := tracker.WeeklyTimeOff{
		PTOHours:     decimal.NewFromInt(8),
		HolidayHours: decimal.NewFromInt(4),
	}
	require.NoError(t, store.SaveWeeklyTimeOff(ctx, "u1", "2025-01-06", off))

	got, err := store.LoadWeeklyTimeOff(ctx, "u1", tracker.NewDate(2025, time.January, 6), tracker.NewDate(2025, time.January, 12))
	require.NoError(t, err)
	require.Contains(t, got, "2025-01-06")
	assert.Equal(t, "8", got["2025-01-06"].PTOHours.String())
	assert.Equal(t, "4", got["2025-01-06"].HolidayHours.String())
}

func TestWeeklyTimeOff_RangeExcludesOtherWeeks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveWeeklyTimeOff(ctx, "u1", "2025-02-03", tracker.WeeklyTimeOff{PTOHours: decimal.NewFromInt(8)}))

	got, err := store.LoadWeeklyTimeOff(ctx, "u1", tracker.NewDate(2025, time.January, 6), tracker.NewDate(2025, time.January, 12))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRollupCache_WriteThroughAndMiss(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadRollup(ctx, "u1", tracker.PeriodWeekly, "2025-01-06")
	assert.ErrorIs(t, err, tracker.ErrRollupNotFound)

	rollup := tracker.CalculateRollup([]tracker.Entry{
		testEntry(tracker.NewDate(2025, time.January, 6), 8, 25),
	}, tracker.NewDate(2025, time.January, 6), tracker.NewDate(2025, time.January, 12))

	require.NoError(t, store.SaveRollup(ctx, "u1", tracker.PeriodWeekly, "2025-01-06", rollup))

	got, err := store.LoadRollup(ctx, "u1", tracker.PeriodWeekly, "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "8.00", got.TotalHours.StringFixed(2))
	assert.Equal(t, "200.00", got.TotalEarnings.StringFixed(2))
	assert.Equal(t, "2025-01-06", got.PeriodStart.String())
	require.Len(t, got.Entries, 1)
}

func TestRollupCache_OverwriteOnRecompute(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	start := tracker.NewDate(2025, time.January, 6)
	end := tracker.NewDate(2025, time.January, 12)

	first := tracker.CalculateRollup([]tracker.Entry{testEntry(start, 8, 25)}, start, end)
	require.NoError(t, store.SaveRollup(ctx, "u1", tracker.PeriodWeekly, "2025-01-06", first))

	second := tracker.CalculateRollup([]tracker.Entry{testEntry(start, 10, 25)}, start, end)
	require.NoError(t, store.SaveRollup(ctx, "u1", tracker.PeriodWeekly, "2025-01-06", second))

	got, err := store.LoadRollup(ctx, "u1", tracker.PeriodWeekly, "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.TotalHours.StringFixed(2))
}
