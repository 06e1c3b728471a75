package tracker

// FilterByPeriod selects the entries whose date falls within [start, end],
// comparing at day granularity. Input order is preserved; callers that need
// a different order re-sort.
func FilterByPeriod(entries []Entry, start, end Date) []Entry {
	var filtered []Entry
	for _, e := range entries {
		if e.Date.AfterOrEqual(start) && e.Date.BeforeOrEqual(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
