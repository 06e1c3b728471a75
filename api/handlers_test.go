package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Onerb58/hours-tracker/api"
	"github.com/Onerb58/hours-tracker/tracker"
	"github.com/Onerb58/hours-tracker/tracker/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	h := api.NewHandler(mem, mem)
	// Deterministic "today" so date-less requests are stable.
	h.Now = func() tracker.Date { return tracker.NewDate(2025, time.January, 8) }

	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, mem
}

func seedEntry(t *testing.T, mem *store.Memory, userID string, d tracker.Date, hours, rate float64) {
	t.Helper()
	err := mem.SaveEntry(context.Background(), userID, tracker.Entry{
		Date:       d,
		Hours:      decimal.NewFromFloat(hours),
		HourlyRate: decimal.NewFromFloat(rate),
	})
	require.NoError(t, err)
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func putJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

// =============================================================================
// WEEK VIEW
// =============================================================================

func TestGetWeek_PlaceholdersForMissingDays(t *testing.T) {
	srv, mem := newTestServer(t)
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 8), 6, 25)

	var view struct {
		WeekID  string `json:"week_id"`
		Entries []struct {
			Date    string  `json:"date"`
			Weekday string  `json:"weekday"`
			Hours   float64 `json:"hours"`
		} `json:"entries"`
	}
	resp := getJSON(t, srv.URL+"/api/users/u1/week?date=2025-01-08", &view)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "2025-01-06", view.WeekID)
	require.Len(t, view.Entries, 7)
	assert.Equal(t, "Monday", view.Entries[0].Weekday)
	assert.Equal(t, 6.0, view.Entries[2].Hours)
	assert.Equal(t, 0.0, view.Entries[3].Hours)
}

func TestSaveEntry_ThenVisibleInRollup(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := putJSON(t, srv.URL+"/api/users/u1/entries/2025-01-06",
		`{"hours":"8","hourly_rate":"25","notes":"onboarding"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rollup struct {
		TotalHours    float64 `json:"total_hours"`
		TotalEarnings float64 `json:"total_earnings"`
	}
	getJSON(t, srv.URL+"/api/users/u1/rollup?period=weekly&date=2025-01-06", &rollup)
	assert.Equal(t, 8.0, rollup.TotalHours)
	assert.Equal(t, 200.0, rollup.TotalEarnings)
}

func TestSaveEntry_MalformedNumbersCoerceToZero(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := putJSON(t, srv.URL+"/api/users/u1/entries/2025-01-06",
		`{"hours":"lots","hourly_rate":"25"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rollup struct {
		TotalHours float64 `json:"total_hours"`
	}
	getJSON(t, srv.URL+"/api/users/u1/rollup?period=weekly&date=2025-01-06", &rollup)
	assert.Equal(t, 0.0, rollup.TotalHours)
}

func TestSaveEntry_InvalidDate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := putJSON(t, srv.URL+"/api/users/u1/entries/06-01-2025", `{"hours":"8"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// ROLLUP
// =============================================================================

func TestGetRollup_OvertimeWeek(t *testing.T) {
	srv, mem := newTestServer(t)
	for i := 0; i < 5; i++ {
		seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6+i), 8, 25)
	}
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 11), 10, 25)

	var rollup struct {
		PeriodType       string  `json:"period_type"`
		PeriodID         string  `json:"period_id"`
		TotalHours       float64 `json:"total_hours"`
		RegularEarnings  float64 `json:"regular_earnings"`
		OvertimeEarnings float64 `json:"overtime_earnings"`
		TotalEarnings    float64 `json:"total_earnings"`
		DaysWorked       int     `json:"days_worked"`
	}
	resp := getJSON(t, srv.URL+"/api/users/u1/rollup?period=weekly&date=2025-01-08", &rollup)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "weekly", rollup.PeriodType)
	assert.Equal(t, "2025-01-06", rollup.PeriodID)
	assert.Equal(t, 50.0, rollup.TotalHours)
	assert.Equal(t, 1000.0, rollup.RegularEarnings)
	assert.Equal(t, 375.0, rollup.OvertimeEarnings)
	assert.Equal(t, 1375.0, rollup.TotalEarnings)
	assert.Equal(t, 6, rollup.DaysWorked)
}

func TestGetRollup_WritesThroughCache(t *testing.T) {
	srv, mem := newTestServer(t)
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6), 8, 25)

	getJSON(t, srv.URL+"/api/users/u1/rollup?period=weekly&date=2025-01-06", nil)

	cached, err := mem.LoadRollup(context.Background(), "u1", tracker.PeriodWeekly, "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "8.00", cached.TotalHours.StringFixed(2))
}

func TestGetRollup_InvalidPeriodType(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := getJSON(t, srv.URL+"/api/users/u1/rollup?period=quarterly", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRollup_DefaultsToCurrentWeek(t *testing.T) {
	srv, mem := newTestServer(t)
	// Handler "today" is pinned to 2025-01-08.
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6), 8, 25)

	var rollup struct {
		PeriodID string `json:"period_id"`
	}
	getJSON(t, srv.URL+"/api/users/u1/rollup", &rollup)
	assert.Equal(t, "2025-01-06", rollup.PeriodID)
}

// =============================================================================
// COMPARISON
// =============================================================================

func TestGetComparison_NeutralWithoutPrevious(t *testing.T) {
	srv, mem := newTestServer(t)
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6), 10, 20)

	var cmp struct {
		HoursDelta        float64 `json:"hours_delta"`
		HoursDeltaPercent float64 `json:"hours_delta_percent"`
	}
	resp := getJSON(t, srv.URL+"/api/users/u1/comparison?period=weekly&date=2025-01-08", &cmp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, cmp.HoursDelta)
	assert.Equal(t, 0.0, cmp.HoursDeltaPercent)
}

func TestGetComparison_AgainstPreviousWeek(t *testing.T) {
	srv, mem := newTestServer(t)
	for i := 0; i < 5; i++ {
		seedEntry(t, mem, "u1", tracker.NewDate(2024, time.December, 30).AddDays(i), 8, 25)
		seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6+i), 10, 25)
	}

	var cmp struct {
		HoursDelta        float64 `json:"hours_delta"`
		HoursDeltaPercent float64 `json:"hours_delta_percent"`
	}
	getJSON(t, srv.URL+"/api/users/u1/comparison?period=weekly&date=2025-01-08", &cmp)
	assert.Equal(t, 10.0, cmp.HoursDelta)
	assert.Equal(t, 25.0, cmp.HoursDeltaPercent)
}

// =============================================================================
// AGGREGATE + EXPORT
// =============================================================================

func TestGetAggregate_ByWeekFoldsOvertime(t *testing.T) {
	srv, mem := newTestServer(t)
	for i := 0; i < 5; i++ {
		seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6+i), 9, 20)
	}

	var buckets []struct {
		ID       string  `json:"id"`
		Hours    float64 `json:"hours"`
		Earnings float64 `json:"earnings"`
	}
	getJSON(t, srv.URL+"/api/users/u1/aggregate?period=monthly&date=2025-01-15&by=week", &buckets)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2025-01-06", buckets[0].ID)
	assert.Equal(t, 950.0, buckets[0].Earnings)
}

func TestGetAggregate_InvalidGrouping(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := getJSON(t, srv.URL+"/api/users/u1/aggregate?by=quarter", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportCSV_ContainsRowsAndTotal(t *testing.T) {
	srv, mem := newTestServer(t)
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6), 8, 25)
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 7), 7.5, 25)

	resp, err := http.Get(srv.URL + "/api/users/u1/export?period=weekly&date=2025-01-06")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, "date,weekday,hours,hourly_rate,earnings,coworker,notes")
	assert.Contains(t, text, "2025-01-06,Monday,8.00,25.00,200.00")
	assert.Contains(t, text, "TOTAL,,15.50,,387.50")
}

// =============================================================================
// TIME OFF
// =============================================================================

func TestSaveTimeOff_FoldedIntoRollup(t *testing.T) {
	srv, mem := newTestServer(t)
	seedEntry(t, mem, "u1", tracker.NewDate(2025, time.January, 6), 32, 25)

	resp := putJSON(t, srv.URL+"/api/users/u1/timeoff/2025-01-06", `{"pto_hours":"8"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rollup struct {
		TotalHours    float64 `json:"total_hours"`
		TotalEarnings float64 `json:"total_earnings"`
	}
	getJSON(t, srv.URL+"/api/users/u1/rollup?period=weekly&date=2025-01-08", &rollup)
	assert.Equal(t, 40.0, rollup.TotalHours)
	assert.Equal(t, 1000.0, rollup.TotalEarnings)
}

func TestSaveTimeOff_NonMondayNormalizedToWeekID(t *testing.T) {
	srv, mem := newTestServer(t)

	// A Wednesday in the URL still keys the week by its Monday.
	resp := putJSON(t, srv.URL+"/api/users/u1/timeoff/2025-01-08", `{"holiday_hours":"8"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	off, err := mem.LoadWeeklyTimeOff(context.Background(), "u1",
		tracker.NewDate(2025, time.January, 6), tracker.NewDate(2025, time.January, 12))
	require.NoError(t, err)
	assert.Contains(t, off, "2025-01-06")
}
