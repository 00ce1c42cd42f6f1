package scraper

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/baraj-doluluk/internal/reservoir"
	"golang.org/x/net/html/charset"
)

const (
	// TotalRowLabel marks the summary row at the foot of every occupancy table
	TotalRowLabel = "TOPLAM"

	commentTail = "-->"
	minCells    = 3
)

// ParsePage decodes a fetched page to UTF-8 and parses its occupancy table.
// A body whose encoding is only guessed is read as UTF-8 when it is valid UTF-8.
func ParsePage(p *Page) ([]reservoir.Record, error) {
	enc, _, certain := charset.DetermineEncoding(p.Body, p.ContentType)
	if !certain && utf8.Valid(p.Body) {
		return ParseTable(bytes.NewReader(p.Body))
	}
	return ParseTable(enc.NewDecoder().Reader(bytes.NewReader(p.Body)))
}

// ParseTable extracts records from the first tbody of a UTF-8 HTML document
func ParseTable(r io.Reader) ([]reservoir.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Reason: "reading HTML", Err: err}
	}

	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, &ParseError{Reason: "no tbody element"}
	}

	records := make([]reservoir.Record, 0)
	var parseErr error

	tbody.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() > 0 && strings.TrimSpace(cells.Eq(0).Text()) == TotalRowLabel {
			return true
		}
		if cells.Length() < minCells {
			parseErr = &ParseError{
				Row:    i + 1,
				Reason: fmt.Sprintf("%d cells, want at least %d", cells.Length(), minCells),
			}
			return false
		}

		rec, err := parseRow(cells.Eq(0).Text(), cells.Eq(1).Text(), cells.Eq(2).Text())
		if err != nil {
			parseErr = &ParseError{Row: i + 1, Reason: "invalid cell", Err: err}
			return false
		}
		records = append(records, rec)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return records, nil
}

// parseRow converts the three leading cell texts of a data row
func parseRow(nameText, capacityText, percentText string) (reservoir.Record, error) {
	capacity, err := parseCapacity(capacityText)
	if err != nil {
		return reservoir.Record{}, err
	}

	pct, err := strconv.ParseFloat(strings.TrimSpace(percentText), 64)
	if err != nil {
		return reservoir.Record{}, fmt.Errorf("filled percentage %q: %w", percentText, err)
	}
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return reservoir.Record{}, fmt.Errorf("filled percentage %q: not a finite number", percentText)
	}

	return reservoir.Record{
		Name:             cleanName(nameText),
		Capacity:         capacity,
		FilledPercentage: pct,
	}, nil
}

// cleanName keeps the text before a stray comment terminator,
// e.g. "Ömerli --> eski" becomes "Ömerli". A leading terminator is dropped
// so "-->Ömerli" also becomes "Ömerli".
func cleanName(text string) string {
	name := strings.TrimSpace(text)
	before, after, found := strings.Cut(name, commentTail)
	if !found {
		return name
	}
	if before = strings.TrimSpace(before); before != "" {
		return before
	}
	return cleanName(after)
}

// parseCapacity reads a capacity written with "." thousands separators, e.g. "1.234.567"
func parseCapacity(text string) (int64, error) {
	digits := strings.TrimSpace(strings.ReplaceAll(text, ".", ""))
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("capacity %q: %w", text, err)
	}
	return n, nil
}
