// Package gemini implements the judging and decomposition completer on top of
// the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"curator/internal/services"
)

// Config holds Gemini connection settings.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
}

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client sends prompts to a Gemini model.
type Client struct {
	cfg        Config
	models     generator
	pacer      Waiter
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithPacer makes every request wait on pacer first.
func WithPacer(pacer Waiter) Option {
	return func(c *Client) { c.pacer = pacer }
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// NewClient creates a Gemini client. A missing API key is a configuration error.
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "gemini api key is required (set GEMINI_API_KEY)", nil)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "gemini model is required", nil)
	}
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	sdk, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "failed to create Gemini client", err)
	}
	c.models = sdk.Models
	return c, nil
}

// Complete sends a system and user prompt and returns the model's text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return "", err
		}
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.cfg.Temperature)),
	}
	if c.cfg.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(c.cfg.MaxTokens)
	}
	if strings.TrimSpace(systemPrompt) != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	contents := []*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)}

	result, err := c.models.GenerateContent(ctx, c.cfg.Model, contents, genCfg)
	if err != nil {
		return "", classify(ctx, err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", services.Wrap(services.ErrExternalTool, "gemini", "generate", "empty response (content filtered or no candidates)", nil)
	}
	return text, nil
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		detail := fmt.Sprintf("status %d", apiErr.Code)
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return services.Wrap(services.ErrBlocked, "gemini", "generate", detail, err)
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return services.Wrap(services.ErrConfiguration, "gemini", "generate", detail, err)
		case apiErr.Code == http.StatusRequestTimeout || apiErr.Code == http.StatusGatewayTimeout:
			return services.Wrap(services.ErrTimeout, "gemini", "generate", detail, err)
		case apiErr.Code >= 500:
			return services.Wrap(services.ErrTransient, "gemini", "generate", detail, err)
		}
		return services.Wrap(services.ErrExternalTool, "gemini", "generate", detail, err)
	}
	return services.Wrap(services.ErrTransient, "gemini", "generate", "", err)
}
