// Package reservoir provides the value types produced by a dam occupancy scrape.
//
// A Record is one row of a utility's occupancy table, a CitySnapshot groups the records
// scraped from one city's page in table order, and an AggregateSnapshot pairs every city
// with the time the scrape finished. The package also carries the static list of city
// pages that a default run visits.
package reservoir
