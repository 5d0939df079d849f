package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"curator/internal/services"
)

const maxPayloadBytes = 16 << 20

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// HTTPFetcher downloads caption payloads over HTTP, waiting on the pacer
// before every request.
type HTTPFetcher struct {
	client *http.Client
	pacer  Waiter
}

// NewHTTPFetcher returns a fetcher. A nil client uses a 30 second timeout.
func NewHTTPFetcher(client *http.Client, pacer Waiter) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{client: client, pacer: pacer}
}

// Fetch returns the body of url as text. 429 responses carry ErrBlocked.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.pacer != nil {
		if err := f.pacer.Wait(ctx); err != nil {
			return "", err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "caption_fetch", "build request", "", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "caption_fetch", "get", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "caption_fetch", "read body", "", err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", services.Wrap(services.ErrBlocked, "caption_fetch", "get", "429 too many requests", nil)
	case resp.StatusCode >= 400:
		return "", services.Wrap(services.ErrExternalTool, "caption_fetch", "get", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}
	return string(body), nil
}
