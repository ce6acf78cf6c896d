package analytics

import (
	"sort"
	"strings"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

// UniqueMonths returns the distinct month keys present in the record set,
// newest first. Zero-padded YYYY-MM keys sort lexicographically in
// chronological order; that format is a documented precondition, not
// something this package validates. Months without records are simply
// absent, never synthesized.
func UniqueMonths(records []model.UpdateRecord) []string {
	seen := make(map[string]struct{})
	var months []string
	for _, r := range records {
		if _, ok := seen[r.Month]; ok {
			continue
		}
		seen[r.Month] = struct{}{}
		months = append(months, r.Month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// PreviousMonth picks the comparison period for a selected month from a
// newest-first catalog: the next-older month, or the next-newer one when
// the selection is already the oldest available. Returns false when no
// other month exists; callers report the comparison as unavailable rather
// than fabricating a delta.
func PreviousMonth(months []string, selected string) (string, bool) {
	idx := -1
	for i, m := range months {
		if m == selected {
			idx = i
			break
		}
	}
	if idx == -1 {
		for _, m := range months {
			if m != selected {
				return m, true
			}
		}
		return "", false
	}
	if idx < len(months)-1 {
		return months[idx+1], true
	}
	if idx > 0 {
		return months[idx-1], true
	}
	return "", false
}

// DefaultMonth mirrors the dashboard's landing behavior: prefer the
// September reporting period when present, otherwise the newest month.
func DefaultMonth(months []string) string {
	for _, m := range months {
		if strings.Contains(m, "-09") {
			return m
		}
	}
	if len(months) > 0 {
		return months[0]
	}
	return ""
}
