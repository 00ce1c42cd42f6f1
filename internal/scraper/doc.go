// Package scraper provides HTTP fetching and HTML table parsing for dam occupancy pages.
//
// The Fetcher issues a single GET per page with a browser-like header set and a User-Agent
// drawn from a small pool of desktop browser signatures. Certificate verification is disabled,
// nothing is retried and the status code is not inspected.
//
// ParsePage decodes the response charset and reads the first table body of the document.
// Each row yields a reservoir.Record of name, capacity and fill percentage; the summary row
// whose first cell reads TOPLAM is dropped. A missing table body or a malformed row is a
// ParseError.
package scraper
