package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smerle/marque/internal/domain"
	"github.com/smerle/marque/internal/utils"
)

// DefaultUserAgent mimics a desktop browser; many sites serve empty
// or stripped markup to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxBodyBytes caps how much of a page is read for extraction.
const maxBodyBytes = 2 << 20

// Fetcher retrieves pages for metadata extraction with a bounded
// timeout and redirect count.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher. The timeout covers the whole request
// including redirects; maxRedirects bounds the hop count.
func NewFetcher(opts Options) *Fetcher {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Fetcher{
		userAgent: ua,
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= opts.MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
				}
				return nil
			},
		},
	}
}

// Options configures a Fetcher.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
}

// Fetch retrieves the page at rawURL and extracts its preview
// metadata. Any transport error, timeout or non-2xx response yields a
// FetchError and extraction is not attempted; no partial result is
// returned.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrValidation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.FetchError{
			URL: rawURL,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return Extract(io.LimitReader(resp.Body, maxBodyBytes), rawURL), nil
}
