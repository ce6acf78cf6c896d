package analytics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/pehchaan-index/pulse-api/pkg/model"
	"github.com/pehchaan-index/pulse-api/pkg/util"
)

// UpdateStore abstracts the row store so the pipeline can run against
// anything that yields records (Firestore in production, a slice-backed
// mock in tests). FetchAll may return a capped subset when the store holds
// more rows than the configured maximum; the aggregation functions treat
// the record set as possibly incomplete and never assume a total count.
type UpdateStore interface {
	FetchAll(ctx context.Context) ([]model.UpdateRecord, error)
	BatchUpsert(ctx context.Context, records []model.UpdateRecord) error
	Count(ctx context.Context) (int, error)
}

// RunStore persists import run lifecycle records.
type RunStore interface {
	CreateRun(ctx context.Context, run model.ImportRun) error
	UpdateRun(ctx context.Context, run model.ImportRun) error
}

// SnapshotStore persists the pre-aggregated system stats document.
type SnapshotStore interface {
	SaveSystemStats(ctx context.Context, stats model.SystemStats) error
}

// Service orchestrates the store and the aggregation pipeline.
type Service struct {
	updates   UpdateStore
	runs      RunStore
	snapshots SnapshotStore
	jobs      *JobRegistry
}

func NewService(updates UpdateStore, runs RunStore, snapshots SnapshotStore) *Service {
	return &Service{
		updates:   updates,
		runs:      runs,
		snapshots: snapshots,
		jobs:      NewJobRegistry(),
	}
}

// Months returns the catalog of reporting periods, newest first.
func (s *Service) Months(ctx context.Context) ([]string, error) {
	records, err := s.updates.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return UniqueMonths(records), nil
}

// States returns the aggregated state summaries for one month.
func (s *Service) States(ctx context.Context, month string) ([]model.StateSummary, error) {
	records, err := s.updates.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return AggregateByState(records, month), nil
}

// TopDistrictsFor returns the limit busiest districts of one month.
func (s *Service) TopDistrictsFor(ctx context.Context, month string, limit int) ([]model.DistrictSummary, error) {
	states, err := s.States(ctx, month)
	if err != nil {
		return nil, err
	}
	return TopDistricts(states, limit), nil
}

// Records returns raw rows, optionally filtered to one month.
func (s *Service) Records(ctx context.Context, month string) ([]model.UpdateRecord, error) {
	records, err := s.updates.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	if month == "" {
		return records, nil
	}
	filtered := make([]model.UpdateRecord, 0, len(records))
	for _, r := range records {
		if r.Month == month {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Dashboard assembles the full view model for one month. An empty month
// selects the default reporting period.
func (s *Service) Dashboard(ctx context.Context, month string) (model.Dashboard, error) {
	records, err := s.updates.FetchAll(ctx)
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("fetch records: %w", err)
	}
	months := UniqueMonths(records)
	if month == "" {
		month = DefaultMonth(months)
	}
	states := AggregateByState(records, month)

	summary := model.SummaryStats{TotalStates: len(states)}
	for _, st := range states {
		summary.TotalUpdates += st.TotalUpdates
		summary.TotalDistricts += len(st.Districts)
		for _, d := range st.Districts {
			if d.Intensity == IntensityHigh {
				summary.HighActivityCount++
			}
		}
	}

	dash := model.Dashboard{
		Month:        month,
		MonthLabel:   util.FormatMonth(month),
		Months:       months,
		Summary:      summary,
		States:       states,
		TopDistricts: TopDistricts(states, 12),
		AgeMix:       ageMix(states),
		Trend:        buildTrend(records, months),
	}

	if prev, ok := PreviousMonth(months, month); ok {
		cmp := CompareMonths(prev, MetricsFor(states), MetricsFor(AggregateByState(records, prev)))
		dash.Comparison = &cmp
	}
	return dash, nil
}

// ageMix builds the demographic breakdown with a zero-total guard.
func ageMix(states []model.StateSummary) []model.AgeSlice {
	var children, youth, adults int
	for _, s := range states {
		children += s.Age0to5
		youth += s.Age5to17
		adults += s.Age18Plus
	}
	total := children + youth + adults
	pct := func(v int) int {
		if total == 0 {
			return 0
		}
		return int(math.Round(float64(v) / float64(total) * 100))
	}
	return []model.AgeSlice{
		{Name: "Children (0-5)", Value: children, Percent: pct(children)},
		{Name: "Youth (5-17)", Value: youth, Percent: pct(youth)},
		{Name: "Adults (18+)", Value: adults, Percent: pct(adults)},
	}
}

// buildTrend totals the latest six reporting periods, oldest first.
func buildTrend(records []model.UpdateRecord, months []string) []model.TrendPoint {
	n := 6
	if len(months) < n {
		n = len(months)
	}
	points := make([]model.TrendPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		m := months[i]
		var total int
		for _, st := range AggregateByState(records, m) {
			total += st.TotalUpdates
		}
		points = append(points, model.TrendPoint{
			Month:        m,
			Label:        util.FormatMonthShort(m),
			TotalUpdates: total,
		})
	}
	return points
}

// RefreshSnapshot recomputes and persists the store-wide snapshot.
func (s *Service) RefreshSnapshot(ctx context.Context) (model.SystemStats, error) {
	records, err := s.updates.FetchAll(ctx)
	if err != nil {
		return model.SystemStats{}, fmt.Errorf("fetch records: %w", err)
	}
	stats := AggregateSystemStats(records)
	if err := s.snapshots.SaveSystemStats(ctx, stats); err != nil {
		return model.SystemStats{}, err
	}
	return stats, nil
}

// StartImport kicks off an asynchronous import run. Unless force is set, a
// populated store refuses re-import so the public endpoint cannot
// double-count a month. The run is cancelable by ID while it executes.
func (s *Service) StartImport(ctx context.Context, source, csvText string, force bool) (string, error) {
	if err := s.ensureEmpty(ctx, force); err != nil {
		return "", err
	}
	runID := generateRunID()
	startedAt := time.Now().UTC()
	if err := s.runs.CreateRun(ctx, model.ImportRun{
		RunID:     runID,
		Source:    source,
		Status:    "running",
		StartedAt: startedAt,
	}); err != nil {
		return "", err
	}

	jobCtx, cancel := context.WithCancel(context.Background())
	s.jobs.Register(runID, cancel)
	go func() {
		defer s.jobs.Unregister(runID)
		if _, err := s.runImport(jobCtx, runID, source, csvText, startedAt); err != nil {
			log.Printf("import run %s: %v", runID, err)
		}
	}()
	return runID, nil
}

// ImportSync runs the same pipeline synchronously; used by the import CLI.
func (s *Service) ImportSync(ctx context.Context, source, csvText string, force bool) (model.ImportRunStats, error) {
	if err := s.ensureEmpty(ctx, force); err != nil {
		return model.ImportRunStats{}, err
	}
	runID := generateRunID()
	startedAt := time.Now().UTC()
	if err := s.runs.CreateRun(ctx, model.ImportRun{
		RunID:     runID,
		Source:    source,
		Status:    "running",
		StartedAt: startedAt,
	}); err != nil {
		return model.ImportRunStats{}, err
	}
	return s.runImport(ctx, runID, source, csvText, startedAt)
}

// CancelImport stops a running import by run ID.
func (s *Service) CancelImport(runID string) bool {
	return s.jobs.Cancel(runID)
}

func (s *Service) ensureEmpty(ctx context.Context, force bool) error {
	if force {
		return nil
	}
	count, err := s.updates.Count(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("store already holds %d rows; re-run with force to overwrite", count)
	}
	return nil
}

func (s *Service) runImport(ctx context.Context, runID, source, csvText string, startedAt time.Time) (model.ImportRunStats, error) {
	records, parseStats := ParseCSV(csvText)
	stats := model.ImportRunStats{
		RowsParsed:    parseStats.RowsParsed,
		ShortRows:     parseStats.ShortRows,
		FieldsCoerced: parseStats.FieldsCoerced,
	}

	status := "success"
	var runErr error
	if err := s.updates.BatchUpsert(ctx, records); err != nil {
		status = "failed"
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		}
		runErr = fmt.Errorf("batch upsert: %w", err)
	} else {
		stats.Inserted = len(records)
		if _, err := s.RefreshSnapshot(ctx); err != nil {
			log.Printf("refresh snapshot after import %s: %v", runID, err)
		}
	}

	run := model.ImportRun{
		RunID:      runID,
		Source:     source,
		Status:     status,
		Stats:      stats,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := s.runs.UpdateRun(context.Background(), run); err != nil {
		log.Printf("finalize import run %s: %v", runID, err)
	}
	return stats, runErr
}

func generateRunID() string {
	return fmt.Sprintf("IMPORT_%d", time.Now().Unix())
}
