package analytics

import (
	"context"
	"strings"
	"testing"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

type mockUpdateStore struct {
	records []model.UpdateRecord
	saved   []model.UpdateRecord
}

func (m *mockUpdateStore) FetchAll(ctx context.Context) ([]model.UpdateRecord, error) {
	return m.records, nil
}

func (m *mockUpdateStore) BatchUpsert(ctx context.Context, records []model.UpdateRecord) error {
	m.saved = append(m.saved, records...)
	m.records = append(m.records, records...)
	return nil
}

func (m *mockUpdateStore) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

type mockRunStore struct {
	created []model.ImportRun
	updated []model.ImportRun
}

func (m *mockRunStore) CreateRun(ctx context.Context, run model.ImportRun) error {
	m.created = append(m.created, run)
	return nil
}

func (m *mockRunStore) UpdateRun(ctx context.Context, run model.ImportRun) error {
	m.updated = append(m.updated, run)
	return nil
}

type mockSnapshotStore struct {
	saved []model.SystemStats
}

func (m *mockSnapshotStore) SaveSystemStats(ctx context.Context, stats model.SystemStats) error {
	m.saved = append(m.saved, stats)
	return nil
}

func newTestService(records []model.UpdateRecord) (*Service, *mockUpdateStore, *mockRunStore, *mockSnapshotStore) {
	updates := &mockUpdateStore{records: records}
	runs := &mockRunStore{}
	snapshots := &mockSnapshotStore{}
	return NewService(updates, runs, snapshots), updates, runs, snapshots
}

func TestDashboardAssembly(t *testing.T) {
	svc, _, _, _ := newTestService([]model.UpdateRecord{
		rec("2024-02", "Bihar", "Patna", 10, 20, 30),
		rec("2024-02", "Kerala", "Kochi", 5, 5, 5),
		rec("2024-01", "Bihar", "Patna", 10, 10, 10),
	})

	dash, err := svc.Dashboard(context.Background(), "2024-02")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Month != "2024-02" || dash.MonthLabel != "February 2024" {
		t.Errorf("month = %q label = %q", dash.Month, dash.MonthLabel)
	}
	if dash.Summary.TotalUpdates != 75 || dash.Summary.TotalStates != 2 || dash.Summary.TotalDistricts != 2 {
		t.Errorf("summary = %+v", dash.Summary)
	}
	if len(dash.Months) != 2 || dash.Months[0] != "2024-02" {
		t.Errorf("months = %v", dash.Months)
	}
	if len(dash.Trend) != 2 || dash.Trend[0].Month != "2024-01" || dash.Trend[1].TotalUpdates != 75 {
		t.Errorf("trend = %+v", dash.Trend)
	}
	if dash.Comparison == nil {
		t.Fatal("comparison should be available with two months")
	}
	if dash.Comparison.PreviousMonth != "2024-01" {
		t.Errorf("previousMonth = %q", dash.Comparison.PreviousMonth)
	}
	// 75 vs 30 total updates.
	if dash.Comparison.Deltas[0].Display != "+150.0%" {
		t.Errorf("total delta = %+v", dash.Comparison.Deltas[0])
	}
	if len(dash.AgeMix) != 3 || dash.AgeMix[2].Value != 35 {
		t.Errorf("ageMix = %+v", dash.AgeMix)
	}
}

func TestDashboardSingleMonthNoComparison(t *testing.T) {
	svc, _, _, _ := newTestService([]model.UpdateRecord{
		rec("2024-01", "Bihar", "Patna", 1, 2, 3),
	})
	dash, err := svc.Dashboard(context.Background(), "2024-01")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Comparison != nil {
		t.Errorf("comparison must be unavailable with one month, got %+v", dash.Comparison)
	}
}

func TestDashboardDefaultMonth(t *testing.T) {
	svc, _, _, _ := newTestService([]model.UpdateRecord{
		rec("2024-10", "Bihar", "Patna", 1, 2, 3),
		rec("2024-09", "Bihar", "Patna", 4, 5, 6),
	})
	dash, err := svc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Month != "2024-09" {
		t.Errorf("default month = %q, want 2024-09", dash.Month)
	}
}

func TestImportSync(t *testing.T) {
	svc, updates, runs, snapshots := newTestService(nil)

	csv := "Month,State,District,Age_0_5,Age_5_17,Age_18_plus\n" +
		"2024-01,BIHAR,Patna,10,20,30\n" +
		"2024-01,bihar,Gaya,5,bad,5\n"

	stats, err := svc.ImportSync(context.Background(), "test.csv", csv, false)
	if err != nil {
		t.Fatalf("ImportSync: %v", err)
	}
	if stats.RowsParsed != 2 || stats.Inserted != 2 || stats.FieldsCoerced != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(updates.saved) != 2 || updates.saved[0].State != "Bihar" {
		t.Errorf("saved = %+v", updates.saved)
	}
	if len(runs.created) != 1 || len(runs.updated) != 1 {
		t.Fatalf("run lifecycle: created %d, updated %d", len(runs.created), len(runs.updated))
	}
	final := runs.updated[0]
	if final.Status != "success" || final.Stats.FieldsCoerced != 1 {
		t.Errorf("final run = %+v", final)
	}
	if len(snapshots.saved) != 1 || snapshots.saved[0].TotalRows != 2 {
		t.Errorf("snapshot = %+v", snapshots.saved)
	}
}

func TestImportRefusesPopulatedStore(t *testing.T) {
	svc, _, _, _ := newTestService([]model.UpdateRecord{
		rec("2024-01", "Bihar", "Patna", 1, 2, 3),
	})

	_, err := svc.ImportSync(context.Background(), "test.csv", "h\nrow", false)
	if err == nil || !strings.Contains(err.Error(), "already holds") {
		t.Fatalf("expected already-imported error, got %v", err)
	}

	if _, err := svc.ImportSync(context.Background(), "test.csv", "Month,State,District,A,B,C\n2024-02,Goa,North Goa,1,1,1", true); err != nil {
		t.Fatalf("forced import: %v", err)
	}
}
