package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smerle/marque/internal/domain"
)

func testFetcher() *Fetcher {
	return NewFetcher(Options{Timeout: 2 * time.Second, MaxRedirects: 5})
}

func TestFetchSuccess(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		fmt.Fprint(w, `<html><head><title>Example</title></head></html>`)
	}))
	defer ts.Close()

	meta, err := testFetcher().Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if meta.Title != "Example" {
		t.Errorf("Title = %q, want Example", meta.Title)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want browser UA", gotUA)
	}
}

func TestFetchNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := testFetcher().Fetch(context.Background(), ts.URL)
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want FetchError", err)
	}
}

func TestFetchRedirectLimit(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Redirect forever; the fetcher must give up after 5 hops.
		http.Redirect(w, r, ts.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer ts.Close()

	_, err := testFetcher().Fetch(context.Background(), ts.URL)
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want FetchError", err)
	}
}

func TestFetchFollowsBoundedRedirects(t *testing.T) {
	var ts *httptest.Server
	hops := 0
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hops < 3 {
			hops++
			http.Redirect(w, r, ts.URL, http.StatusFound)
			return
		}
		fmt.Fprint(w, `<html><head><title>Landed</title></head></html>`)
	}))
	defer ts.Close()

	meta, err := testFetcher().Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if meta.Title != "Landed" {
		t.Errorf("Title = %q, want Landed", meta.Title)
	}
}

func TestFetchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	f := NewFetcher(Options{Timeout: 50 * time.Millisecond, MaxRedirects: 5})
	_, err := f.Fetch(context.Background(), ts.URL)
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want FetchError", err)
	}
}

func TestFetchValidation(t *testing.T) {
	_, err := testFetcher().Fetch(context.Background(), "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Fetch(blank) error = %v, want ErrValidation", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	// Closed port.
	_, err := testFetcher().Fetch(context.Background(), "http://127.0.0.1:1")
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want FetchError", err)
	}
}
