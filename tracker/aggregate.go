/*
aggregate.go - Chart and export groupers

PURPOSE:
  Pure grouping functions over a period's entry list, for charts and CSV.
  Independent of Rollup internals; they take the same entries a rollup
  retains.

OVERTIME IN BUCKETS:
  byDay buckets are naive hours x rate: overtime is undefined for a single
  day. byWeek re-runs the weekly fold so bars reflect the regular/overtime
  earnings split. byMonth sums week folds into the owning month rather than
  re-pricing monthly hours, so a month's bar always equals the sum of its
  weeks' bars.
*/
package tracker

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Bucket is one chart bar or export row: an id (date, week id, or month
// id), summed hours, and earnings.
type Bucket struct {
	ID       string
	Hours    decimal.Decimal
	Earnings decimal.Decimal
}

// GroupByDay buckets entries per distinct date with naive hours x rate
// earnings, sorted ascending by date.
func GroupByDay(entries []Entry) []Bucket {
	byID := make(map[string]Bucket)
	for _, e := range entries {
		id := e.Date.String()
		b := byID[id]
		b.ID = id
		b.Hours = b.Hours.Add(e.Hours)
		b.Earnings = b.Earnings.Add(e.Earnings())
		byID[id] = b
	}
	return sortedBuckets(byID)
}

// GroupByWeek buckets entries per week id with full overtime folding,
// sorted ascending by week id.
func GroupByWeek(entries []Entry) []Bucket {
	weeks := groupByWeek(entries)
	buckets := make([]Bucket, 0, len(weeks))
	for _, id := range weekIDs(weeks) {
		wt := FoldWeek(weeks[id])
		buckets = append(buckets, Bucket{
			ID:       id,
			Hours:    wt.TotalHours.Round(2),
			Earnings: wt.TotalEarnings,
		})
	}
	return buckets
}

// GroupByMonth sums weekly overtime-adjusted results into the owning month,
// sorted ascending by month id. A week is owned by the month its Monday
// falls in.
func GroupByMonth(entries []Entry) []Bucket {
	weeks := groupByWeek(entries)
	byID := make(map[string]Bucket)
	for id, weekEntries := range weeks {
		monday := MustParseDate(id)
		monthID := MonthID(monday)
		wt := FoldWeek(weekEntries)

		b := byID[monthID]
		b.ID = monthID
		b.Hours = b.Hours.Add(wt.TotalHours)
		b.Earnings = b.Earnings.Add(wt.TotalEarnings)
		byID[monthID] = b
	}
	return sortedBuckets(byID)
}

func sortedBuckets(byID map[string]Bucket) []Bucket {
	buckets := make([]Bucket, 0, len(byID))
	for _, b := range byID {
		b.Hours = b.Hours.Round(2)
		b.Earnings = b.Earnings.Round(2)
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].ID < buckets[j].ID })
	return buckets
}
