package scraper

import "fmt"

// TransportError reports a failed HTTP exchange: DNS, connect, TLS, timeout or body read
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a page whose occupancy table could not be read.
// Row is 1-based within the table body, or 0 when the error is not tied to a row.
type ParseError struct {
	Row    int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "parsing table: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
