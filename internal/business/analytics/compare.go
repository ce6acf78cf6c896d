package analytics

import (
	"fmt"
	"math"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

// MonthMetrics are the scalar headline figures for one month. The export
// carries no urban/rural dimension, so the dashboard applies the fixed
// national 42/58 split to the total.
type MonthMetrics struct {
	TotalUpdates int
	Age18Plus    int
	UrbanUpdates int
	RuralUpdates int
}

// MetricsFor derives the headline figures from a month's state summaries.
func MetricsFor(states []model.StateSummary) MonthMetrics {
	var m MonthMetrics
	for _, s := range states {
		m.TotalUpdates += s.TotalUpdates
		m.Age18Plus += s.Age18Plus
	}
	m.UrbanUpdates = int(math.Round(float64(m.TotalUpdates) * 0.42))
	m.RuralUpdates = int(math.Round(float64(m.TotalUpdates) * 0.58))
	return m
}

// PercentChange computes (current-previous)/previous*100. A zero previous
// period is floored to a denominator of 1 so the result stays finite;
// callers present that figure as an approximation, not a true percentage.
func PercentChange(current, previous int) float64 {
	denom := previous
	if denom == 0 {
		denom = 1
	}
	return float64(current-previous) / float64(denom) * 100
}

// FormatChange renders a percent change with an explicit leading sign and
// one decimal place, e.g. "+12.4%".
func FormatChange(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// CompareMonths builds the month-over-month headline deltas shown on the
// insight cards: total demand, urban and rural activity, and adult (18+)
// updates.
func CompareMonths(previousMonth string, current, previous MonthMetrics) model.MonthComparison {
	delta := func(metric string, curr, prev int) model.HeadlineDelta {
		change := PercentChange(curr, prev)
		return model.HeadlineDelta{
			Metric:        metric,
			Current:       curr,
			Previous:      prev,
			PercentChange: change,
			Display:       FormatChange(change),
		}
	}
	return model.MonthComparison{
		PreviousMonth: previousMonth,
		Deltas: []model.HeadlineDelta{
			delta("totalUpdates", current.TotalUpdates, previous.TotalUpdates),
			delta("urbanUpdates", current.UrbanUpdates, previous.UrbanUpdates),
			delta("adultUpdates", current.Age18Plus, previous.Age18Plus),
			delta("ruralUpdates", current.RuralUpdates, previous.RuralUpdates),
		},
	}
}
