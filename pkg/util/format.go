package util

import (
	"fmt"
	"strconv"
	"time"
)

// FormatMonth renders a YYYY-MM month key as "January 2024". Unparseable
// input is returned unchanged.
func FormatMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

// FormatMonthShort renders a YYYY-MM month key as "Jan", used for compact
// axis labels in the trend series.
func FormatMonthShort(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan")
}

// FormatNumber abbreviates large counts for display: 1.2M, 4.5K, 999.
func FormatNumber(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return strconv.Itoa(n)
	}
}
