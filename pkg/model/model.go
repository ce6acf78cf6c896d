package model

import "time"

// UpdateRecord is one row of the monthly UIDAI export: update counts for a
// (month, state, district) combination broken down by age band. Firestore
// field names mirror the source store schema, including the historical
// `age_18_greater` spelling.
type UpdateRecord struct {
	Month     string `json:"month" firestore:"month"`
	State     string `json:"state" firestore:"state"`
	District  string `json:"district" firestore:"district"`
	Age0to5   int    `json:"age_0_5" firestore:"age_0_5"`
	Age5to17  int    `json:"age_5_17" firestore:"age_5_17"`
	Age18Plus int    `json:"age_18_plus" firestore:"age_18_greater"`
}

// DistrictSummary is the per-district rollup for one month. Intensity is
// classified against all district totals of the month, not per state.
type DistrictSummary struct {
	District         string `json:"district"`
	State            string `json:"state"`
	TotalUpdates     int    `json:"totalUpdates"`
	Age0to5          int    `json:"age0_5"`
	Age5to17         int    `json:"age5_17"`
	Age18Plus        int    `json:"age18Plus"`
	DominantAgeGroup string `json:"dominantAgeGroup"`
	Intensity        string `json:"intensity"`
}

// StateSummary is the per-state rollup for one month. Districts keep source
// row order; the slice of summaries itself is sorted by total descending.
type StateSummary struct {
	State            string            `json:"state"`
	TotalUpdates     int               `json:"totalUpdates"`
	Age0to5          int               `json:"age0_5"`
	Age5to17         int               `json:"age5_17"`
	Age18Plus        int               `json:"age18Plus"`
	Districts        []DistrictSummary `json:"districts"`
	DominantAgeGroup string            `json:"dominantAgeGroup"`
	Intensity        string            `json:"intensity"`
}

// ImportRunStats stores counters for one import run. FieldsCoerced counts
// numeric fields that failed to parse and were defaulted to zero; ShortRows
// counts lines with fewer than six fields. Both surface data quality
// problems the lenient parser would otherwise hide.
type ImportRunStats struct {
	RowsParsed    int `json:"rowsParsed,omitempty" firestore:"rowsParsed,omitempty"`
	ShortRows     int `json:"shortRows,omitempty" firestore:"shortRows,omitempty"`
	FieldsCoerced int `json:"fieldsCoerced,omitempty" firestore:"fieldsCoerced,omitempty"`
	Inserted      int `json:"inserted,omitempty" firestore:"inserted,omitempty"`
}

// ImportRun tracks the lifecycle of a CSV import execution.
type ImportRun struct {
	RunID      string         `json:"runId,omitempty" firestore:"runId,omitempty"`
	Source     string         `json:"source,omitempty" firestore:"source,omitempty"` // file path, URL, or "api"
	Status     string         `json:"status,omitempty" firestore:"status,omitempty"`
	Stats      ImportRunStats `json:"stats,omitempty" firestore:"stats,omitempty"`
	StartedAt  time.Time      `json:"startedAt,omitempty" firestore:"startedAt,omitempty"`
	FinishedAt time.Time      `json:"finishedAt,omitempty" firestore:"finishedAt,omitempty"`
	Error      string         `json:"error,omitempty" firestore:"error,omitempty"`
}

// SystemStats is a singleton document that pre-aggregates store-wide
// dashboard metrics across all months.
type SystemStats struct {
	LastUpdated  time.Time      `json:"lastUpdated,omitempty" firestore:"lastUpdated,omitempty"`
	TotalRows    int            `json:"totalRows,omitempty" firestore:"totalRows,omitempty"`
	TotalUpdates int            `json:"totalUpdates,omitempty" firestore:"totalUpdates,omitempty"`
	MonthCount   int            `json:"monthCount,omitempty" firestore:"monthCount,omitempty"`
	LatestMonth  string         `json:"latestMonth,omitempty" firestore:"latestMonth,omitempty"`
	ByState      map[string]int `json:"byState,omitempty" firestore:"byState,omitempty"`
}

// SummaryStats are the headline cards for one selected month.
type SummaryStats struct {
	TotalUpdates      int `json:"totalUpdates"`
	TotalStates       int `json:"totalStates"`
	TotalDistricts    int `json:"totalDistricts"`
	HighActivityCount int `json:"highActivityCount"`
}

// AgeSlice is one wedge of the demographic breakdown.
type AgeSlice struct {
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Percent int    `json:"percent"`
}

// TrendPoint is one month of the nationwide trend series.
type TrendPoint struct {
	Month        string `json:"month"`
	Label        string `json:"label"`
	TotalUpdates int    `json:"totalUpdates"`
}

// HeadlineDelta is a month-over-month change for one headline metric.
// Display carries the signed one-decimal percentage, e.g. "+12.4%".
type HeadlineDelta struct {
	Metric        string  `json:"metric"`
	Current       int     `json:"current"`
	Previous      int     `json:"previous"`
	PercentChange float64 `json:"percentChange"`
	Display       string  `json:"display"`
}

// MonthComparison bundles the deltas against the previous reporting period.
type MonthComparison struct {
	PreviousMonth string          `json:"previousMonth"`
	Deltas        []HeadlineDelta `json:"deltas"`
}

// Dashboard is the full view model served to the dashboard UI for one month.
// Comparison is nil when only one month of data exists.
type Dashboard struct {
	Month        string            `json:"month"`
	MonthLabel   string            `json:"monthLabel"`
	Months       []string          `json:"months"`
	Summary      SummaryStats      `json:"summary"`
	States       []StateSummary    `json:"states"`
	TopDistricts []DistrictSummary `json:"topDistricts"`
	AgeMix       []AgeSlice        `json:"ageMix"`
	Trend        []TrendPoint      `json:"trend"`
	Comparison   *MonthComparison  `json:"comparison,omitempty"`
}
