package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"tshwane_places/internal/adapters/observability"
)

const maxPageBytes = 2 << 20 // don't slurp arbitrarily large pages

// Fetcher performs polite HTML GETs. A shared limiter spaces requests out
// across all workers; small tourism sites should never see a burst from us.
// A failed fetch is final for the run: no retries, no backoff.
type Fetcher struct {
	hc *http.Client
	rl *rate.Limiter
}

// NewFetcher builds a fetcher with a per-call timeout and a minimum delay
// between consecutive requests. Zero values fall back to 15s / 1s.
func NewFetcher(timeout, delay time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if delay <= 0 {
		delay = time.Second
	}
	return &Fetcher{
		hc: &http.Client{Timeout: timeout},
		rl: rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (f *Fetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	if err := f.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "tshwane-places/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := f.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("web", 0)
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	observability.ObserveExternal("web", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
