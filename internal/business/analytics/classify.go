package analytics

import "sort"

// Intensity labels.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// Intensity classifies a value against the population it belongs to. The
// thresholds are the values at indices floor(0.33*n) and floor(0.66*n) of
// the ascending-sorted population - a direct index statistic, not an
// interpolated percentile. It is biased for small populations, but
// consumers depend on the exact threshold behavior, so it must not be
// replaced with a textbook formula. Tiny populations may collapse every
// entity into the same label; that is acceptable.
func Intensity(value int, population []int) string {
	if len(population) == 0 {
		return IntensityLow
	}
	sorted := make([]int, len(population))
	copy(sorted, population)
	sort.Ints(sorted)

	p33 := sorted[int(0.33*float64(len(sorted)))]
	p66 := sorted[int(0.66*float64(len(sorted)))]

	switch {
	case value <= p33:
		return IntensityLow
	case value <= p66:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}
