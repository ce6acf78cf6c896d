package analytics

import (
	"sort"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

// Dominant age group labels as rendered by the dashboard.
const (
	AgeGroupAdult = "Adult (18+)"
	AgeGroupYouth = "Youth (5-17)"
	AgeGroupChild = "Child (0-5)"
)

// dominantAgeGroup picks the age band with the largest count. Checking
// Adult first, then Youth, means ties resolve Adult > Youth > Child.
func dominantAgeGroup(age0to5, age5to17, age18Plus int) string {
	max := age0to5
	if age5to17 > max {
		max = age5to17
	}
	if age18Plus > max {
		max = age18Plus
	}
	switch {
	case max == age18Plus:
		return AgeGroupAdult
	case max == age5to17:
		return AgeGroupYouth
	default:
		return AgeGroupChild
	}
}

// AggregateByState rolls up all records matching the target month into one
// summary per state, sorted by total updates descending. States accumulate
// in first-seen order and the final sort is stable, so equal totals keep
// encounter order and repeated calls produce identical output. Each source
// row also becomes one entry in its state's district list, in row order.
//
// Intensity is classified after the full month is folded: state intensity
// against the population of all state totals, district intensity against
// the single flat population of all district totals across every state.
// The two populations never mix.
func AggregateByState(records []model.UpdateRecord, month string) []model.StateSummary {
	index := make(map[string]int)
	states := []model.StateSummary{}

	for _, r := range records {
		if r.Month != month {
			continue
		}
		i, ok := index[r.State]
		if !ok {
			i = len(states)
			index[r.State] = i
			states = append(states, model.StateSummary{State: r.State})
		}
		s := &states[i]
		s.Age0to5 += r.Age0to5
		s.Age5to17 += r.Age5to17
		s.Age18Plus += r.Age18Plus
		s.Districts = append(s.Districts, model.DistrictSummary{
			District:         r.District,
			State:            r.State,
			TotalUpdates:     r.Age0to5 + r.Age5to17 + r.Age18Plus,
			Age0to5:          r.Age0to5,
			Age5to17:         r.Age5to17,
			Age18Plus:        r.Age18Plus,
			DominantAgeGroup: dominantAgeGroup(r.Age0to5, r.Age5to17, r.Age18Plus),
			Intensity:        IntensityLow,
		})
	}

	stateTotals := make([]int, 0, len(states))
	var districtTotals []int
	for i := range states {
		s := &states[i]
		s.TotalUpdates = s.Age0to5 + s.Age5to17 + s.Age18Plus
		s.DominantAgeGroup = dominantAgeGroup(s.Age0to5, s.Age5to17, s.Age18Plus)
		stateTotals = append(stateTotals, s.TotalUpdates)
		for _, d := range s.Districts {
			districtTotals = append(districtTotals, d.TotalUpdates)
		}
	}

	for i := range states {
		states[i].Intensity = Intensity(states[i].TotalUpdates, stateTotals)
		for j := range states[i].Districts {
			d := &states[i].Districts[j]
			d.Intensity = Intensity(d.TotalUpdates, districtTotals)
		}
	}

	sort.SliceStable(states, func(i, j int) bool {
		return states[i].TotalUpdates > states[j].TotalUpdates
	})
	return states
}
