package fetch

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"releaseradar/core/errors"
	"releaseradar/core/interfaces"
	"releaseradar/pkg/config"
)

func testFetcher(timeoutSeconds int) *PageFetcher {
	return NewPageFetcher(config.FetchConfig{TimeoutSeconds: timeoutSeconds}, interfaces.NopLogger{})
}

func TestPageFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>listing</body></html>"))
	}))
	defer server.Close()

	fetcher := testFetcher(10)

	page, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(page, "listing") {
		t.Errorf("Fetch returned %q, want page body", page)
	}
}

func TestPageFetcher_Fetch_SendsBrowserUserAgent(t *testing.T) {
	var capturedUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	fetcher := testFetcher(10)

	if _, err := fetcher.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(capturedUserAgent, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser-style agent", capturedUserAgent)
	}
}

func TestPageFetcher_Fetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := testFetcher(10)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch should return error for 404")
	}
	if !errors.IsFetch(err) {
		t.Errorf("error = %v, want FetchError", err)
	}

	var fetchErr *errors.FetchError
	if !stderrors.As(err, &fetchErr) {
		t.Fatalf("error %v is not a *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fetchErr.StatusCode)
	}
}

func TestPageFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	fetcher := &PageFetcher{timeout: 50 * time.Millisecond, logger: interfaces.NopLogger{}}

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch should return error on timeout")
	}
	if !errors.IsFetch(err) {
		t.Errorf("error = %v, want FetchError", err)
	}
}

func TestPageFetcher_Fetch_UnreachableHost(t *testing.T) {
	fetcher := testFetcher(2)

	_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/nothing")
	if err == nil {
		t.Fatal("Fetch should return error for unreachable host")
	}
	if !errors.IsFetch(err) {
		t.Errorf("error = %v, want FetchError", err)
	}
}

func TestPageFetcher_Fetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := testFetcher(10)

	if _, err := fetcher.Fetch(ctx, server.URL); err == nil {
		t.Error("Fetch should fail with cancelled context")
	}
}
