package analytics

import (
	"testing"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

func TestTopDistrictsStableOnTies(t *testing.T) {
	states := []model.StateSummary{
		{State: "A", Districts: []model.DistrictSummary{
			{District: "First", TotalUpdates: 100},
			{District: "Second", TotalUpdates: 100},
		}},
		{State: "B", Districts: []model.DistrictSummary{
			{District: "Third", TotalUpdates: 50},
		}},
	}
	top := TopDistricts(states, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(top))
	}
	if top[0].District != "First" || top[1].District != "Second" {
		t.Errorf("tied districts must keep input order: %q, %q", top[0].District, top[1].District)
	}
}

func TestTopDistrictsFlattensAcrossStates(t *testing.T) {
	states := []model.StateSummary{
		{State: "A", Districts: []model.DistrictSummary{{District: "Small", TotalUpdates: 5}}},
		{State: "B", Districts: []model.DistrictSummary{{District: "Big", TotalUpdates: 500}}},
	}
	top := TopDistricts(states, 1)
	if len(top) != 1 || top[0].District != "Big" {
		t.Errorf("top = %+v, want Big", top)
	}
}

func TestTopDistrictsLimitClamping(t *testing.T) {
	states := []model.StateSummary{
		{State: "A", Districts: []model.DistrictSummary{{District: "Only", TotalUpdates: 1}}},
	}
	if got := TopDistricts(states, 10); len(got) != 1 {
		t.Errorf("limit beyond population: got %d", len(got))
	}
	if got := TopDistricts(states, -1); len(got) != 0 {
		t.Errorf("negative limit: got %d", len(got))
	}
	if got := TopDistricts(nil, 5); len(got) != 0 {
		t.Errorf("no states: got %d", len(got))
	}
}
