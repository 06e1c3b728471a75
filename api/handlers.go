/*
handlers.go - HTTP API handlers for the hours tracker

PURPOSE:
  Exposes the rollup engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates all computation to the tracker package.

ENDPOINTS:
  Entries:
    GET  /api/users/{id}/week                 Seven-day view (placeholders)
    PUT  /api/users/{id}/entries/{date}       Upsert one day's fields

  Aggregates:
    GET  /api/users/{id}/rollup               Period rollup
    GET  /api/users/{id}/comparison           Current vs previous period
    GET  /api/users/{id}/aggregate            Chart buckets (day/week/month)
    GET  /api/users/{id}/export               Period CSV download

  Time off:
    PUT  /api/users/{id}/timeoff/{weekId}     Weekly PTO/holiday hours

QUERY PARAMETERS:
  period   weekly | biweekly | monthly | yearly (default weekly)
  date     any date inside the wanted period, YYYY-MM-DD (default today)
  by       day | week | month (aggregate endpoint only)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid period type, malformed date, bad body
  - 500: store failures

  Missing data is NOT an error at this layer: absent days render as
  placeholders, an empty previous period compares as neutral.

ROLLUP CACHE:
  Every rollup GET writes the fresh result through to the RollupStore.
  The cache is advisory; a write failure is swallowed because the response
  already carries the authoritative recomputation.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Onerb58/hours-tracker/export"
	"github.com/Onerb58/hours-tracker/tracker"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. No ambient state: the
// displayed period, the user, and the clock all arrive with the request.
type Handler struct {
	Entries tracker.EntryStore
	Rollups tracker.RollupStore

	// Now is the clock used when a request omits ?date=. Swappable in tests.
	Now func() tracker.Date
}

// NewHandler creates a new handler over the given stores.
func NewHandler(entries tracker.EntryStore, rollups tracker.RollupStore) *Handler {
	return &Handler{
		Entries: entries,
		Rollups: rollups,
		Now:     tracker.Today,
	}
}

// =============================================================================
// REQUEST PARSING
// =============================================================================

// periodQuery extracts the period type and anchor date query parameters.
func (h *Handler) periodQuery(r *http.Request) (tracker.PeriodType, tracker.Date, error) {
	pt := tracker.PeriodWeekly
	if s := r.URL.Query().Get("period"); s != "" {
		parsed, err := tracker.ParsePeriodType(s)
		if err != nil {
			return "", tracker.Date{}, err
		}
		pt = parsed
	}

	date := h.Now()
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := tracker.ParseDate(s)
		if err != nil {
			return "", tracker.Date{}, err
		}
		date = parsed
	}
	return pt, date, nil
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// GetWeek returns the seven-day display view for the week containing
// ?date=, substituting zero-hour placeholders for missing days.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	_, date, err := h.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	start, end := tracker.WeekStart(date), tracker.WeekEnd(date)
	entries, err := h.Entries.LoadEntries(r.Context(), userID, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries", err)
		return
	}

	view := tracker.WeekView(date, entries)
	dtos := make([]EntryDTO, len(view))
	for i, e := range view {
		dtos[i] = toEntryDTO(e)
	}

	writeJSON(w, http.StatusOK, WeekViewDTO{
		WeekID:  tracker.WeekID(date),
		Start:   start.String(),
		End:     end.String(),
		Entries: dtos,
	})
}

// SaveEntry upserts one day's record. The date in the URL is the key.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	date, err := tracker.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry := tracker.Entry{
		Date:       date,
		Hours:      tracker.CoerceDecimal(req.Hours),
		HourlyRate: tracker.CoerceDecimal(req.HourlyRate),
		Coworker:   req.Coworker,
		Notes:      req.Notes,
	}

	if err := h.Entries.SaveEntry(r.Context(), userID, entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// =============================================================================
// ROLLUP HANDLERS
// =============================================================================

// GetRollup recomputes and returns the rollup for the period containing
// ?date=.
func (h *Handler) GetRollup(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	pt, date, err := h.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	rollup, _, err := tracker.BuildRollup(r.Context(), h.Entries, userID, pt, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute rollup", err)
		return
	}

	periodID, _ := tracker.PeriodIDFor(pt, date)

	if h.Rollups != nil {
		// Advisory write-through; the response below is the fresh result
		// either way.
		_ = h.Rollups.SaveRollup(r.Context(), userID, pt, periodID, rollup)
	}

	writeJSON(w, http.StatusOK, toRollupDTO(pt, periodID, rollup))
}

// GetComparison returns the current period's rollup deltas against the
// immediately preceding period of the same type.
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	pt, date, err := h.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	_, cmp, err := tracker.BuildComparison(r.Context(), h.Entries, userID, pt, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute comparison", err)
		return
	}

	writeJSON(w, http.StatusOK, toComparisonDTO(cmp))
}

// GetAggregate returns chart buckets for the period, grouped by
// ?by=day|week|month.
func (h *Handler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	pt, date, err := h.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	rollup, _, err := tracker.BuildRollup(r.Context(), h.Entries, userID, pt, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute rollup", err)
		return
	}

	var buckets []tracker.Bucket
	switch by := r.URL.Query().Get("by"); by {
	case "", "day":
		buckets = tracker.GroupByDay(rollup.Entries)
	case "week":
		buckets = tracker.GroupByWeek(rollup.Entries)
	case "month":
		buckets = tracker.GroupByMonth(rollup.Entries)
	default:
		writeError(w, http.StatusBadRequest, "Invalid grouping (use day, week or month)", nil)
		return
	}

	writeJSON(w, http.StatusOK, toBucketDTOs(buckets))
}

// ExportCSV streams the period's entries as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	pt, date, err := h.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	rollup, _, err := tracker.BuildRollup(r.Context(), h.Entries, userID, pt, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute rollup", err)
		return
	}

	periodID, _ := tracker.PeriodIDFor(pt, date)
	filename := fmt.Sprintf("hours-%s-%s.csv", pt, periodID)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteRollupCSV(w, rollup); err != nil {
		// Headers are gone; best we can do is drop the connection mid-body.
		return
	}
}

// =============================================================================
// TIME OFF HANDLERS
// =============================================================================

// SaveTimeOff upserts one week's supplemental PTO/holiday hours. The week
// id in the URL must be the week's Monday.
func (h *Handler) SaveTimeOff(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	weekDate, err := tracker.ParseDate(chi.URLParam(r, "weekId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week id (use the Monday's YYYY-MM-DD)", err)
		return
	}
	weekID := tracker.WeekID(weekDate)

	var req TimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	off := tracker.WeeklyTimeOff{
		PTOHours:     tracker.CoerceDecimal(req.PTOHours),
		HolidayHours: tracker.CoerceDecimal(req.HolidayHours),
	}

	if err := h.Entries.SaveWeeklyTimeOff(r.Context(), userID, weekID, off); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save time off", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"week_id":       weekID,
		"pto_hours":     f64(off.PTOHours),
		"holiday_hours": f64(off.HolidayHours),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
