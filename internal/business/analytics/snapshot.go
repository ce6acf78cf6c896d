package analytics

import "github.com/pehchaan-index/pulse-api/pkg/model"

// AggregateSystemStats reduces the full record set into the store-wide
// snapshot document shown before a month is selected.
func AggregateSystemStats(records []model.UpdateRecord) model.SystemStats {
	var totalUpdates int
	byState := make(map[string]int)
	for _, r := range records {
		total := r.Age0to5 + r.Age5to17 + r.Age18Plus
		totalUpdates += total
		byState[r.State] += total
	}

	months := UniqueMonths(records)
	stats := model.SystemStats{
		TotalRows:    len(records),
		TotalUpdates: totalUpdates,
		MonthCount:   len(months),
		ByState:      byState,
	}
	if len(months) > 0 {
		stats.LatestMonth = months[0]
	}
	return stats
}
