/*
Package export renders rollups and aggregation buckets as CSV.

Formatting contract: rows sorted by date ascending, monetary values with
two decimals, one trailing total line when exporting a full period. Where
the file lands (download, disk, stdout) is the caller's concern; everything
here writes to an io.Writer.
*/
package export

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/Onerb58/hours-tracker/tracker"
)

// WriteRollupCSV writes one row per entry of the rollup plus a period total
// line.
func WriteRollupCSV(w io.Writer, rollup tracker.Rollup) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "weekday", "hours", "hourly_rate", "earnings", "coworker", "notes"}); err != nil {
		return err
	}

	entries := make([]tracker.Entry, len(rollup.Entries))
	copy(entries, rollup.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

	for _, e := range entries {
		row := []string{
			e.Date.String(),
			e.Weekday(),
			e.Hours.StringFixed(2),
			e.HourlyRate.StringFixed(2),
			e.Earnings().Round(2).StringFixed(2),
			e.Coworker,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	// Total line carries the overtime-folded period earnings, which is why
	// it can differ from the naive sum of the rows above.
	total := []string{
		"TOTAL",
		"",
		rollup.TotalHours.StringFixed(2),
		"",
		rollup.TotalEarnings.StringFixed(2),
		"",
		"",
	}
	if err := cw.Write(total); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteBucketsCSV writes the chart aggregation buckets, one row per bucket.
func WriteBucketsCSV(w io.Writer, buckets []tracker.Bucket) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"period", "hours", "earnings"}); err != nil {
		return err
	}
	for _, b := range buckets {
		if err := cw.Write([]string{b.ID, b.Hours.StringFixed(2), b.Earnings.StringFixed(2)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
