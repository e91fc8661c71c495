// Package fetch provides the HTTP implementation of the loader's remote
// fetcher port. Permission gating happens in the loader before any call
// reaches this package.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fennec-run/fennec/internal/domain/modules"
)

// maxModuleSize bounds how much remote source a single fetch accepts.
const maxModuleSize = 10 * 1024 * 1024 // 10MB

// HTTPFetcher retrieves module source over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher with a tuned transport. Per-request
// deadlines come from the caller's context, not the client.
func NewHTTPFetcher() *HTTPFetcher {
	transport := &http.Transport{
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Fetch returns the source text at url. Non-2xx responses and oversized
// bodies are errors; the loader wraps whatever comes back.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &modules.NetworkError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &modules.NetworkError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &modules.NetworkError{
			URL: url,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxModuleSize+1))
	if err != nil {
		return "", &modules.NetworkError{URL: url, Err: err}
	}
	if len(body) > maxModuleSize {
		return "", &modules.NetworkError{
			URL: url,
			Err: fmt.Errorf("module exceeds %d byte limit", maxModuleSize),
		}
	}
	return string(body), nil
}
