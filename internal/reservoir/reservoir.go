package reservoir

import (
	"encoding/json"
	"time"
)

// Record represents a single reservoir row
type Record struct {
	Name             string  `json:"name"`
	Capacity         int64   `json:"capacity"`          // Thousands separators already removed
	FilledPercentage float64 `json:"filled_percentage"` // Not range checked
}

// CitySnapshot holds the records scraped from one city's page
type CitySnapshot struct {
	Name  string   `json:"name"`
	Data  []Record `json:"data"`
	Error string   `json:"error,omitempty"` // Only set when a run keeps going past failures
}

// MarshalJSON encodes an empty record list as [] rather than null
func (c CitySnapshot) MarshalJSON() ([]byte, error) {
	type alias CitySnapshot
	if c.Data == nil {
		c.Data = []Record{}
	}
	return json.Marshal(alias(c))
}

// Failed reports whether the city was recorded with an error
func (c CitySnapshot) Failed() bool {
	return c.Error != ""
}

// AggregateSnapshot is a point-in-time capture of every scraped city
type AggregateSnapshot struct {
	Date   time.Time      `json:"date"`
	Cities []CitySnapshot `json:"cities"`
}

// RecordCount returns the total number of records across all cities
func (s *AggregateSnapshot) RecordCount() int {
	n := 0
	for _, c := range s.Cities {
		n += len(c.Data)
	}
	return n
}

// City returns the snapshot for the named city, or nil if it was not scraped
func (s *AggregateSnapshot) City(name string) *CitySnapshot {
	for i := range s.Cities {
		if s.Cities[i].Name == name {
			return &s.Cities[i]
		}
	}
	return nil
}
