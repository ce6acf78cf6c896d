package analytics

import (
	"reflect"
	"testing"

	"github.com/pehchaan-index/pulse-api/pkg/model"
)

func rec(month, state, district string, a, b, c int) model.UpdateRecord {
	return model.UpdateRecord{Month: month, State: state, District: district, Age0to5: a, Age5to17: b, Age18Plus: c}
}

func TestAggregateByStateEndToEnd(t *testing.T) {
	csv := "Month,State,District,Age_0_5,Age_5_17,Age_18_plus\n" +
		"2024-01,Bihar,Patna,10,20,30\n" +
		"2024-01,BIHAR,Gaya,5,5,5"
	records, _ := ParseCSV(csv)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	states := AggregateByState(records, "2024-01")
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	s := states[0]
	if s.State != "Bihar" {
		t.Errorf("state = %q", s.State)
	}
	if s.TotalUpdates != 75 {
		t.Errorf("totalUpdates = %d, want 75", s.TotalUpdates)
	}
	if len(s.Districts) != 2 {
		t.Errorf("districts = %d, want 2", len(s.Districts))
	}
	if s.Districts[0].District != "Patna" || s.Districts[1].District != "Gaya" {
		t.Errorf("district order not source order: %+v", s.Districts)
	}
}

func TestAggregateSumInvariant(t *testing.T) {
	records := []model.UpdateRecord{
		rec("2024-02", "Bihar", "Patna", 10, 20, 30),
		rec("2024-02", "Bihar", "Gaya", 7, 3, 11),
		rec("2024-02", "Kerala", "Kochi", 1, 2, 3),
		rec("2024-01", "Kerala", "Kochi", 100, 100, 100), // other month, ignored
	}
	for _, s := range AggregateByState(records, "2024-02") {
		if s.Age0to5+s.Age5to17+s.Age18Plus != s.TotalUpdates {
			t.Errorf("state %s: age bands do not sum to total", s.State)
		}
		var dTotal, d0, d5, d18 int
		for _, d := range s.Districts {
			if d.Age0to5+d.Age5to17+d.Age18Plus != d.TotalUpdates {
				t.Errorf("district %s: age bands do not sum to total", d.District)
			}
			dTotal += d.TotalUpdates
			d0 += d.Age0to5
			d5 += d.Age5to17
			d18 += d.Age18Plus
		}
		if dTotal != s.TotalUpdates || d0 != s.Age0to5 || d5 != s.Age5to17 || d18 != s.Age18Plus {
			t.Errorf("state %s: district rollup mismatch", s.State)
		}
	}
}

func TestAggregateRepeatedRowsAccumulate(t *testing.T) {
	records := []model.UpdateRecord{
		rec("2024-01", "Bihar", "Patna", 1, 2, 3),
		rec("2024-01", "Bihar", "Patna", 4, 5, 6),
	}
	states := AggregateByState(records, "2024-01")
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	if states[0].TotalUpdates != 21 {
		t.Errorf("totalUpdates = %d, want 21", states[0].TotalUpdates)
	}
	if len(states[0].Districts) != 2 {
		t.Errorf("repeated rows should each append a district entry, got %d", len(states[0].Districts))
	}
}

func TestAggregateSortedDescendingStable(t *testing.T) {
	records := []model.UpdateRecord{
		rec("2024-01", "Goa", "North Goa", 10, 10, 10),
		rec("2024-01", "Kerala", "Kochi", 50, 25, 25),
		rec("2024-01", "Sikkim", "Gangtok", 10, 10, 10), // ties Goa
	}
	states := AggregateByState(records, "2024-01")
	if states[0].State != "Kerala" {
		t.Errorf("first state = %q, want Kerala", states[0].State)
	}
	if states[1].State != "Goa" || states[2].State != "Sikkim" {
		t.Errorf("tied states must keep encounter order: %q, %q", states[1].State, states[2].State)
	}
}

func TestAggregateEmptyMonth(t *testing.T) {
	records := []model.UpdateRecord{rec("2024-01", "Bihar", "Patna", 1, 2, 3)}
	if got := AggregateByState(records, "1999-01"); len(got) != 0 {
		t.Errorf("expected empty result, got %d states", len(got))
	}
}

func TestAggregateDeterministic(t *testing.T) {
	records := []model.UpdateRecord{
		rec("2024-01", "Bihar", "Patna", 10, 20, 30),
		rec("2024-01", "Kerala", "Kochi", 5, 5, 5),
		rec("2024-01", "Bihar", "Gaya", 1, 1, 1),
	}
	first := AggregateByState(records, "2024-01")
	second := AggregateByState(records, "2024-01")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\n%+v\n%+v", first, second)
	}
}

func TestDominantAgeGroupTieBreak(t *testing.T) {
	if got := dominantAgeGroup(10, 10, 10); got != AgeGroupAdult {
		t.Errorf("three-way tie = %q, want %q", got, AgeGroupAdult)
	}
	if got := dominantAgeGroup(10, 10, 5); got != AgeGroupYouth {
		t.Errorf("child/youth tie = %q, want %q", got, AgeGroupYouth)
	}
	if got := dominantAgeGroup(10, 5, 5); got != AgeGroupChild {
		t.Errorf("child max = %q, want %q", got, AgeGroupChild)
	}
}

func TestAggregateIntensityPopulations(t *testing.T) {
	// Two states, three districts. District intensity must be classified
	// against the flat population of all district totals, so the largest
	// district lands "high" even though its state holds the smallest one.
	records := []model.UpdateRecord{
		rec("2024-01", "Kerala", "Kochi", 0, 0, 100),
		rec("2024-01", "Kerala", "Idukki", 0, 0, 10),
		rec("2024-01", "Goa", "North Goa", 0, 0, 50),
	}
	states := AggregateByState(records, "2024-01")
	// State totals [50 110], n=2: p33=sorted[0]=50, p66=sorted[1]=110, so
	// both states stay at or below the p66 threshold.
	if states[0].State != "Kerala" || states[0].Intensity != IntensityMedium {
		t.Errorf("state intensity: %+v", states[0])
	}
	if states[1].State != "Goa" || states[1].Intensity != IntensityLow {
		t.Errorf("state intensity: %+v", states[1])
	}
	var byDistrict = map[string]string{}
	for _, s := range states {
		for _, d := range s.Districts {
			byDistrict[d.District] = d.Intensity
		}
	}
	// Sorted district totals [10 50 100]: p33=sorted[0]=10, p66=sorted[1]=50.
	want := map[string]string{"Idukki": IntensityLow, "North Goa": IntensityMedium, "Kochi": IntensityHigh}
	if !reflect.DeepEqual(byDistrict, want) {
		t.Errorf("district intensities = %v, want %v", byDistrict, want)
	}
}
