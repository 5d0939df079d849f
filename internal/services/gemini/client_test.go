package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"

	"curator/internal/services"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	reply    string
	err      error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.reply, genai.RoleModel)}},
	}, nil
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Model: "gemini-2.5-flash"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCompleteSendsPromptsAndSettings(t *testing.T) {
	fake := &fakeModels{reply: ` {"genel_puan": 7} `}
	waits := 0
	client := &Client{
		cfg:    Config{Model: "gemini-2.5-flash", Temperature: 0.3, MaxTokens: 1500},
		models: fake,
		pacer:  waiterFunc(func(context.Context) error { waits++; return nil }),
	}

	text, err := client.Complete(context.Background(), "system rules", "transcript")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != `{"genel_puan": 7}` {
		t.Fatalf("unexpected text %q", text)
	}
	if fake.model != "gemini-2.5-flash" || waits != 1 {
		t.Fatalf("unexpected model %q or waits %d", fake.model, waits)
	}
	if fake.config.MaxOutputTokens != 1500 || fake.config.Temperature == nil || *fake.config.Temperature != float32(0.3) {
		t.Fatalf("unexpected generation config %+v", fake.config)
	}
	if fake.config.SystemInstruction == nil || fake.config.SystemInstruction.Parts[0].Text != "system rules" {
		t.Fatal("expected system instruction")
	}
	if fake.contents[0].Parts[0].Text != "transcript" {
		t.Fatal("expected user prompt as content")
	}
}

func TestCompleteEmptyResponse(t *testing.T) {
	client := &Client{cfg: Config{Model: "m"}, models: &fakeModels{reply: "  "}}
	if _, err := client.Complete(context.Background(), "", "x"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestCompleteClassifiesAPIErrors(t *testing.T) {
	cases := []struct {
		code   int
		marker error
	}{
		{http.StatusTooManyRequests, services.ErrBlocked},
		{http.StatusForbidden, services.ErrConfiguration},
		{http.StatusServiceUnavailable, services.ErrTransient},
		{http.StatusBadRequest, services.ErrExternalTool},
	}
	for _, tc := range cases {
		client := &Client{cfg: Config{Model: "m"}, models: &fakeModels{err: genai.APIError{Code: tc.code, Message: "boom"}}}
		_, err := client.Complete(context.Background(), "", "x")
		if !errors.Is(err, tc.marker) {
			t.Fatalf("code %d: expected %v, got %v", tc.code, tc.marker, err)
		}
	}
}

type waiterFunc func(context.Context) error

func (f waiterFunc) Wait(ctx context.Context) error { return f(ctx) }
