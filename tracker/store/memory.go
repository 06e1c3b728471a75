// Package store provides in-memory EntryStore and RollupStore
// implementations for testing and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Onerb58/hours-tracker/tracker"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	entries map[entryKey]tracker.Entry
	timeOff map[timeOffKey]tracker.WeeklyTimeOff
	rollups map[rollupKey]tracker.Rollup
}

type entryKey struct {
	UserID string
	Date   string
}

type timeOffKey struct {
	UserID string
	WeekID string
}

type rollupKey struct {
	UserID     string
	PeriodType tracker.PeriodType
	PeriodID   string
}

// Compile-time interface checks
var (
	_ tracker.EntryStore  = (*Memory)(nil)
	_ tracker.RollupStore = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[entryKey]tracker.Entry),
		timeOff: make(map[timeOffKey]tracker.WeeklyTimeOff),
		rollups: make(map[rollupKey]tracker.Rollup),
	}
}

func (m *Memory) LoadEntries(_ context.Context, userID string, start, end tracker.Date) ([]tracker.Entry, error) {
	if end.Before(start) {
		return nil, tracker.ErrInvalidRange
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []tracker.Entry
	for k, e := range m.entries {
		if k.UserID != userID {
			continue
		}
		if e.Date.AfterOrEqual(start) && e.Date.BeforeOrEqual(end) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *Memory) SaveEntry(_ context.Context, userID string, entry tracker.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entryKey{UserID: userID, Date: entry.Date.String()}] = entry
	return nil
}

func (m *Memory) LoadWeeklyTimeOff(_ context.Context, userID string, start, end tracker.Date) (map[string]tracker.WeeklyTimeOff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]tracker.WeeklyTimeOff)
	for k, off := range m.timeOff {
		if k.UserID != userID {
			continue
		}
		monday, err := tracker.ParseDate(k.WeekID)
		if err != nil {
			continue
		}
		if monday.AfterOrEqual(start) && monday.BeforeOrEqual(end) {
			result[k.WeekID] = off
		}
	}
	return result, nil
}

func (m *Memory) SaveWeeklyTimeOff(_ context.Context, userID string, weekID string, off tracker.WeeklyTimeOff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeOff[timeOffKey{UserID: userID, WeekID: weekID}] = off
	return nil
}

func (m *Memory) SaveRollup(_ context.Context, userID string, periodType tracker.PeriodType, periodID string, rollup tracker.Rollup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rollups[rollupKey{UserID: userID, PeriodType: periodType, PeriodID: periodID}] = rollup
	return nil
}

func (m *Memory) LoadRollup(_ context.Context, userID string, periodType tracker.PeriodType, periodID string) (*tracker.Rollup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rollups[rollupKey{UserID: userID, PeriodType: periodType, PeriodID: periodID}]
	if !ok {
		return nil, tracker.ErrRollupNotFound
	}
	return &r, nil
}
