/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal engine model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

NUMBERS ON THE WIRE:
  Hours and money cross the boundary as JSON numbers (float64). The engine
  computes in decimals and rounds before the conversion, so the floats are
  display values, never inputs to further arithmetic.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Onerb58/hours-tracker/tracker"
)

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EntryDTO represents one day's record in API responses.
type EntryDTO struct {
	Date       string  `json:"date"`
	Weekday    string  `json:"weekday"`
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`
	Coworker   string  `json:"coworker,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// SaveEntryRequest is the request to upsert one day's fields. Numeric
// fields arrive as strings so partially written client records follow the
// same lenient coercion as stored ones.
type SaveEntryRequest struct {
	Hours      string `json:"hours"`
	HourlyRate string `json:"hourly_rate"`
	Coworker   string `json:"coworker"`
	Notes      string `json:"notes"`
}

// WeekViewDTO is the seven-day display view, placeholders included.
type WeekViewDTO struct {
	WeekID  string     `json:"week_id"`
	Start   string     `json:"start"`
	End     string     `json:"end"`
	Entries []EntryDTO `json:"entries"`
}

// RollupDTO represents the aggregate for one period.
type RollupDTO struct {
	PeriodType  string `json:"period_type"`
	PeriodID    string `json:"period_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`

	TotalEarnings    float64 `json:"total_earnings"`
	RegularEarnings  float64 `json:"regular_earnings"`
	OvertimeEarnings float64 `json:"overtime_earnings"`

	DaysWorked int `json:"days_worked"`
	TotalDays  int `json:"total_days"`

	AverageHoursPerDay                 float64 `json:"average_hours_per_day"`
	AverageHoursPerDayIncludingNonWork float64 `json:"average_hours_per_day_including_non_work"`

	Entries     []EntryDTO `json:"entries"`
	LastUpdated string     `json:"last_updated"`
}

// ComparisonDTO is the delta view against the previous period.
type ComparisonDTO struct {
	HoursDelta               float64 `json:"hours_delta"`
	HoursDeltaPercent        float64 `json:"hours_delta_percent"`
	EarningsDelta            float64 `json:"earnings_delta"`
	EarningsDeltaPercent     float64 `json:"earnings_delta_percent"`
	DaysWorkedDelta          int     `json:"days_worked_delta"`
	DaysWorkedDeltaPercent   float64 `json:"days_worked_delta_percent"`
	AverageHoursDelta        float64 `json:"average_hours_delta"`
	AverageHoursDeltaPercent float64 `json:"average_hours_delta_percent"`
}

// BucketDTO is one chart bar / export row.
type BucketDTO struct {
	ID       string  `json:"id"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

// TimeOffRequest is the request to upsert one week's supplemental hours.
type TimeOffRequest struct {
	PTOHours     string `json:"pto_hours"`
	HolidayHours string `json:"holiday_hours"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEntryDTO(e tracker.Entry) EntryDTO {
	hours, _ := e.Hours.Float64()
	rate, _ := e.HourlyRate.Float64()
	return EntryDTO{
		Date:       e.Date.String(),
		Weekday:    e.Weekday(),
		Hours:      hours,
		HourlyRate: rate,
		Coworker:   e.Coworker,
		Notes:      e.Notes,
	}
}

func toRollupDTO(pt tracker.PeriodType, periodID string, r tracker.Rollup) RollupDTO {
	entries := make([]EntryDTO, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = toEntryDTO(e)
	}

	return RollupDTO{
		PeriodType:                         string(pt),
		PeriodID:                           periodID,
		PeriodStart:                        r.PeriodStart.String(),
		PeriodEnd:                          r.PeriodEnd.String(),
		TotalHours:                         f64(r.TotalHours),
		RegularHours:                       f64(r.RegularHours),
		OvertimeHours:                      f64(r.OvertimeHours),
		TotalEarnings:                      f64(r.TotalEarnings),
		RegularEarnings:                    f64(r.RegularEarnings),
		OvertimeEarnings:                   f64(r.OvertimeEarnings),
		DaysWorked:                         r.DaysWorked,
		TotalDays:                          r.TotalDays,
		AverageHoursPerDay:                 f64(r.AverageHoursPerDay),
		AverageHoursPerDayIncludingNonWork: f64(r.AverageHoursPerDayIncludingNonWork),
		Entries:                            entries,
		LastUpdated:                        r.LastUpdated.Format(time.RFC3339),
	}
}

func toComparisonDTO(c tracker.Comparison) ComparisonDTO {
	return ComparisonDTO{
		HoursDelta:               f64(c.HoursDelta),
		HoursDeltaPercent:        f64(c.HoursDeltaPercent),
		EarningsDelta:            f64(c.EarningsDelta),
		EarningsDeltaPercent:     f64(c.EarningsDeltaPercent),
		DaysWorkedDelta:          c.DaysWorkedDelta,
		DaysWorkedDeltaPercent:   f64(c.DaysWorkedDeltaPercent),
		AverageHoursDelta:        f64(c.AverageHoursDelta),
		AverageHoursDeltaPercent: f64(c.AverageHoursDeltaPercent),
	}
}

func toBucketDTOs(buckets []tracker.Bucket) []BucketDTO {
	dtos := make([]BucketDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = BucketDTO{ID: b.ID, Hours: f64(b.Hours), Earnings: f64(b.Earnings)}
	}
	return dtos
}
