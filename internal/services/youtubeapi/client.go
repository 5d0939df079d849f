// Package youtubeapi searches for candidate videos through the YouTube Data API v3.
package youtubeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"curator/internal/services"
	"curator/internal/transcript"
)

// Config holds YouTube Data API settings.
type Config struct {
	APIKey string
	// Language biases results toward a relevance language (ISO 639-1).
	Language string
	// Endpoint overrides the API base URL (tests).
	Endpoint string
}

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Client searches videos with an API key.
type Client struct {
	service  *youtube.Service
	language string
	pacer    Waiter
}

// NewClient creates a search client. A missing API key is a configuration error.
func NewClient(ctx context.Context, cfg Config, pacer Waiter) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "youtube_api", "new client", "youtube api key is required (set YOUTUBE_API_KEY)", nil)
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube_api", "new client", "failed to create YouTube service", err)
	}
	return &Client{service: service, language: strings.TrimSpace(cfg.Language), pacer: pacer}, nil
}

// Search returns up to limit videos for query in relevance order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]transcript.VideoRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "youtube_api", "search", "query is required", nil)
	}
	if limit <= 0 {
		limit = 1
	}
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx)
	if c.language != "" {
		call = call.RelevanceLanguage(c.language)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, classify(ctx, err)
	}

	refs := make([]transcript.VideoRef, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || !transcript.ValidVideoID(item.Id.VideoId) {
			continue
		}
		title := ""
		if item.Snippet != nil {
			title = item.Snippet.Title
		}
		refs = append(refs, transcript.NewVideoRef(item.Id.VideoId, title))
	}
	return refs, nil
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		detail := fmt.Sprintf("status %d", apiErr.Code)
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return services.Wrap(services.ErrBlocked, "youtube_api", "search", detail, err)
		case apiErr.Code == http.StatusForbidden && strings.Contains(strings.ToLower(apiErr.Message), "quota"):
			return services.Wrap(services.ErrBlocked, "youtube_api", "search", "daily quota exceeded", err)
		case apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return services.Wrap(services.ErrConfiguration, "youtube_api", "search", detail, err)
		}
		return services.Wrap(services.ErrExternalTool, "youtube_api", "search", detail, err)
	}
	return services.Wrap(services.ErrTransient, "youtube_api", "search", "", err)
}
