package scraper

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	Timeout = 30 * time.Second

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptCharsetHeader  = "ISO-8859-1,utf-8;q=0.7,*;q=0.3"
	acceptEncodingHeader = "none"
	acceptLanguageHeader = "en-US,en;q=0.8"
	connectionHeader     = "keep-alive"
)

// Page is the raw result of fetching one URL
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher issues browser-like GET requests
type Fetcher struct {
	client    *http.Client
	userAgent func() string
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent replaces the random pool pick with a fixed User-Agent
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = func() string { return ua }
	}
}

// NewFetcher creates a Fetcher that skips certificate verification
func NewFetcher(opts ...FetcherOption) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // target portals are fetched unverified

	f := &Fetcher{
		client: &http.Client{
			Timeout:   Timeout,
			Transport: transport,
		},
		userAgent: randomUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a single GET and returns the body whatever the status code
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	if url == "" {
		return nil, &TransportError{URL: url, Err: errors.New("empty URL")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	setBrowserHeaders(req.Header, f.userAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}

	return &Page{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func setBrowserHeaders(h http.Header, userAgent string) {
	h.Set("User-Agent", userAgent)
	h.Set("Accept", acceptHeader)
	h.Set("Accept-Charset", acceptCharsetHeader)
	h.Set("Accept-Encoding", acceptEncodingHeader)
	h.Set("Accept-Language", acceptLanguageHeader)
	h.Set("Connection", connectionHeader)
}
