package analytics

import (
	"sort"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

// TopDistricts flattens every state's district list and returns the limit
// largest by total updates. The sort is stable, so districts with equal
// totals keep their encounter order.
func TopDistricts(states []model.StateSummary, limit int) []model.DistrictSummary {
	var all []model.DistrictSummary
	for _, s := range states {
		all = append(all, s.Districts...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TotalUpdates > all[j].TotalUpdates
	})
	if limit < 0 {
		limit = 0
	}
	if limit > len(all) {
		limit = len(all)
	}
	return all[:limit]
}
