package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
	}{
		{
			name:       "successful fetch",
			body:       `<table><tbody><tr><td>A</td><td>1</td><td>1</td></tr></tbody></table>`,
			statusCode: http.StatusOK,
		},
		{
			name:       "error status is not inspected",
			body:       "<html><body>Bakım çalışması</body></html>",
			statusCode: http.StatusServiceUnavailable,
		},
		{
			name:       "empty body",
			body:       "",
			statusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			page, err := NewFetcher().Fetch(context.Background(), server.URL)
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}

			if string(page.Body) != tt.body {
				t.Errorf("Fetch() body = %q, want %q", page.Body, tt.body)
			}
			if page.StatusCode != tt.statusCode {
				t.Errorf("Fetch() status = %d, want %d", page.StatusCode, tt.statusCode)
			}
			if page.ContentType != "text/html; charset=utf-8" {
				t.Errorf("Fetch() content type = %q", page.ContentType)
			}
			if page.URL != server.URL {
				t.Errorf("Fetch() URL = %q, want %q", page.URL, server.URL)
			}
		})
	}
}

func TestFetch_BrowserHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	if _, err := NewFetcher().Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if r := got.Get("User-Agent"); !slices.Contains(UserAgents(), r) {
		t.Errorf("User-Agent = %q, not in pool", r)
	}

	want := map[string]string{
		"Accept":          acceptHeader,
		"Accept-Charset":  acceptCharsetHeader,
		"Accept-Encoding": acceptEncodingHeader,
		"Accept-Language": acceptLanguageHeader,
	}
	for header, value := range want {
		if got.Get(header) != value {
			t.Errorf("%s = %q, want %q", header, got.Get(header), value)
		}
	}
}

func TestFetch_FixedUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	f := NewFetcher(WithUserAgent("baraj-test/1.0"))
	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if got != "baraj-test/1.0" {
		t.Errorf("User-Agent = %q, want baraj-test/1.0", got)
	}
}

func TestFetch_SelfSignedTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secure"))
	}))
	defer server.Close()

	page, err := NewFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() over self-signed TLS error: %v", err)
	}
	if string(page.Body) != "secure" {
		t.Errorf("Fetch() body = %q, want secure", page.Body)
	}
}

func TestFetch_TransportErrors(t *testing.T) {
	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	tests := []struct {
		name    string
		fetcher *Fetcher
		url     string
	}{
		{name: "empty URL", fetcher: NewFetcher(), url: ""},
		{name: "malformed URL", fetcher: NewFetcher(), url: "http://[::1"},
		{name: "connection refused", fetcher: NewFetcher(), url: closedURL},
		{name: "timeout", fetcher: NewFetcher(WithTimeout(50 * time.Millisecond)), url: slow.URL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := tt.fetcher.Fetch(context.Background(), tt.url)
			if err == nil {
				t.Fatalf("Fetch() = %+v, want error", page)
			}

			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("Fetch() error = %T, want *TransportError", err)
			}
			if te.URL != tt.url {
				t.Errorf("TransportError.URL = %q, want %q", te.URL, tt.url)
			}
		})
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher().Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestNewFetcher(t *testing.T) {
	f := NewFetcher()

	if f.client == nil {
		t.Fatal("fetcher client is nil")
	}
	if f.client.Timeout != Timeout {
		t.Errorf("client timeout = %v, want %v", f.client.Timeout, Timeout)
	}

	transport, ok := f.client.Transport.(*http.Transport)
	if !ok || transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("fetcher transport should skip certificate verification")
	}
}

func TestRandomUserAgent(t *testing.T) {
	pool := UserAgents()
	for i := 0; i < 50; i++ {
		if ua := randomUserAgent(); !slices.Contains(pool, ua) {
			t.Fatalf("randomUserAgent() = %q, not in pool", ua)
		}
	}
}
