// Package aggregator runs one sequential scrape over a list of city pages and collects the
// results into a dated reservoir.AggregateSnapshot.
//
// By default the first failing city aborts the run and no snapshot is returned. With
// KeepGoing a failing city is recorded with its error and an empty record list, the
// remaining cities are still scraped, and Run returns the snapshot together with a
// *PartialError naming the failed cities.
package aggregator

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/baraj-doluluk/internal/logger"
	"github.com/pfrederiksen/baraj-doluluk/internal/reservoir"
	"github.com/pfrederiksen/baraj-doluluk/internal/scraper"
)

// ProgressNotice is written once before the first city is fetched
const ProgressNotice = "Scraping data..."

// PageFetcher retrieves the raw page for a URL
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*scraper.Page, error)
}

// ParseFunc turns a fetched page into records
type ParseFunc func(*scraper.Page) ([]reservoir.Record, error)

// PartialError is returned alongside a snapshot when KeepGoing let some cities fail
type PartialError struct {
	Failed []string
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%d cities failed: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

// Aggregator scrapes cities one after another
type Aggregator struct {
	fetcher   PageFetcher
	parse     ParseFunc
	progress  io.Writer
	log       *logger.Logger
	metrics   *logger.Metrics
	now       func() time.Time
	keepGoing bool
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithProgress sets where the progress notice is written. Nil silences it.
func WithProgress(w io.Writer) Option {
	return func(a *Aggregator) {
		if w == nil {
			w = io.Discard
		}
		a.progress = w
	}
}

// WithLogger sets the logger used for per-city progress
func WithLogger(l *logger.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

// WithMetrics sets the tracker that receives fetch timings and city counters
func WithMetrics(m *logger.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// WithClock overrides the source of the snapshot date
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithParser replaces scraper.ParsePage
func WithParser(p ParseFunc) Option {
	return func(a *Aggregator) { a.parse = p }
}

// KeepGoing records failing cities instead of aborting the run
func KeepGoing(enabled bool) Option {
	return func(a *Aggregator) { a.keepGoing = enabled }
}

// New creates an Aggregator around a fetcher
func New(fetcher PageFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:  fetcher,
		parse:    scraper.ParsePage,
		progress: os.Stderr,
		log:      logger.Default(),
		metrics:  logger.DefaultMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run scrapes every city in order and returns the collected snapshot.
// The snapshot date is taken after the last city completes.
func (a *Aggregator) Run(ctx context.Context, cities []reservoir.City) (*reservoir.AggregateSnapshot, error) {
	fmt.Fprintln(a.progress, ProgressNotice)

	snapshots := make([]reservoir.CitySnapshot, 0, len(cities))
	var failed []string

	for _, city := range cities {
		records, err := a.scrapeCity(ctx, city)
		if err != nil {
			a.metrics.IncrCounter("cities.failed")
			if !a.keepGoing {
				return nil, fmt.Errorf("scraping %s: %w", city.Name, err)
			}
			a.log.Warn("city failed, continuing", logger.Fields{"city": city.Name, "error": err.Error()})
			failed = append(failed, city.Name)
			snapshots = append(snapshots, reservoir.CitySnapshot{
				Name:  city.Name,
				Data:  []reservoir.Record{},
				Error: err.Error(),
			})
			continue
		}

		a.metrics.IncrCounter("cities.scraped")
		snapshots = append(snapshots, reservoir.CitySnapshot{Name: city.Name, Data: records})
	}

	snap := &reservoir.AggregateSnapshot{
		Date:   a.now(),
		Cities: snapshots,
	}
	a.metrics.SetGauge("records.parsed", float64(snap.RecordCount()))
	a.log.Info("scrape complete", logger.Fields{
		"cities":  len(snapshots),
		"records": snap.RecordCount(),
		"failed":  len(failed),
	})

	if len(failed) > 0 {
		return snap, &PartialError{Failed: failed}
	}
	return snap, nil
}

func (a *Aggregator) scrapeCity(ctx context.Context, city reservoir.City) ([]reservoir.Record, error) {
	log := a.log.With(logger.Fields{"city": city.Name})
	log.Debug("fetching page", logger.Fields{"url": city.URL})

	start := time.Now()
	page, err := a.fetcher.Fetch(ctx, city.URL)
	a.metrics.Time("fetch.duration", start)
	if err != nil {
		log.Error("fetch failed", nil, err)
		return nil, err
	}
	log.Debug("fetched page", logger.Fields{"status": page.StatusCode, "bytes": len(page.Body)})

	records, err := a.parse(page)
	if err != nil {
		log.Error("parse failed", logger.Fields{"status": page.StatusCode}, err)
		return nil, err
	}
	log.Info("parsed table", logger.Fields{"records": len(records)})

	return records, nil
}
