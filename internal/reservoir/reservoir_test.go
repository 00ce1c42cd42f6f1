package reservoir

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCitySnapshot_EmptyDataEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(CitySnapshot{Name: "izmir"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := string(data)
	if !strings.Contains(got, `"data":[]`) {
		t.Errorf("Marshal() = %s, want data to be []", got)
	}
	if strings.Contains(got, "error") {
		t.Errorf("Marshal() = %s, error key should be omitted", got)
	}
}

func TestAggregateSnapshot_JSONKeys(t *testing.T) {
	snap := &AggregateSnapshot{
		Date: time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
		Cities: []CitySnapshot{
			{Name: "ankara", Data: []Record{{Name: "Çamlıdere", Capacity: 1220000, FilledPercentage: 41.5}}},
		},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"date":"2026-10-14T09:30:00Z","cities":[{"name":"ankara","data":[{"name":"Çamlıdere","capacity":1220000,"filled_percentage":41.5}]}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestAggregateSnapshot_Helpers(t *testing.T) {
	snap := &AggregateSnapshot{
		Cities: []CitySnapshot{
			{Name: "ankara", Data: []Record{{Name: "A"}, {Name: "B"}}},
			{Name: "izmir", Error: "fetching page: timeout"},
			{Name: "trabzon", Data: []Record{{Name: "C"}}},
		},
	}

	if got := snap.RecordCount(); got != 3 {
		t.Errorf("RecordCount() = %d, want 3", got)
	}

	if c := snap.City("izmir"); c == nil || !c.Failed() {
		t.Errorf("City(izmir) = %+v, want failed snapshot", c)
	}

	if c := snap.City("istanbul"); c != nil {
		t.Errorf("City(istanbul) = %+v, want nil", c)
	}
}

func TestDefaultCities(t *testing.T) {
	cities := DefaultCities()

	wantNames := []string{"ankara", "istanbul", "izmir", "trabzon"}
	if len(cities) != len(wantNames) {
		t.Fatalf("DefaultCities() returned %d cities, want %d", len(cities), len(wantNames))
	}

	for i, c := range cities {
		if c.Name != wantNames[i] {
			t.Errorf("cities[%d].Name = %q, want %q", i, c.Name, wantNames[i])
		}
		if !strings.HasPrefix(c.URL, "https://www.turkiye.gov.tr/") {
			t.Errorf("cities[%d].URL = %q, want turkiye.gov.tr page", i, c.URL)
		}
	}

	// Mutating the returned slice must not leak into later calls
	cities[0].Name = "changed"
	if DefaultCities()[0].Name != "ankara" {
		t.Error("DefaultCities() shares its backing array between calls")
	}
}
