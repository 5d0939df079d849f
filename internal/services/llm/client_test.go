package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"curator/internal/services"
)

func writeCompletion(t *testing.T, w http.ResponseWriter, choice map[string]any) {
	t.Helper()
	payload := map[string]any{"choices": []any{choice}}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

type countingPacer struct{ calls int }

func (p *countingPacer) Wait(context.Context) error {
	p.calls++
	return nil
}

func TestClientCompleteSendsSamplingSettings(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeCompletion(t, w, map[string]any{"message": map[string]any{"content": "Sure: {\"genel_puan\": 7}"}})
	}))
	defer server.Close()

	pacer := &countingPacer{}
	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model", Temperature: 0.3, MaxTokens: 1500}, WithPacer(pacer))
	content, err := client.Complete(context.Background(), "system", "user prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "Sure: {\"genel_puan\": 7}" {
		t.Fatalf("unexpected content %q", content)
	}
	if got.Model != "demo-model" || got.Temperature != 0.3 || got.MaxTokens != 1500 {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.ResponseFormat != nil {
		t.Fatalf("free-form completion must not force JSON mode: %+v", got.ResponseFormat)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "user prompt" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if pacer.calls != 1 {
		t.Fatalf("expected pacer to be consulted once, got %d", pacer.calls)
	}
}

func TestClientCompleteRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	_, err := client.Complete(context.Background(), "system", "user")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestClientHealthCheckCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, map[string]any{"message": map[string]any{"content": "```json\n{\"ok\":true}\n```"}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientHealthCheckUnauthorizedIsConfigurationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL}, WithSleeper(func(time.Duration) {}))
	err := client.HealthCheck(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}

func TestClientToolCallsArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, map[string]any{
			"message": map[string]any{
				"content": "",
				"tool_calls": []any{
					map[string]any{"function": map[string]any{"arguments": `{"ok":true}`}},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	content, err := client.Complete(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestClientDeltaAndLegacyText(t *testing.T) {
	for name, choice := range map[string]map[string]any{
		"delta":  {"delta": map[string]any{"content": "from delta"}},
		"legacy": {"text": "from delta"},
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeCompletion(t, w, choice)
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "test", BaseURL: server.URL})
			content, err := client.Complete(context.Background(), "", "prompt")
			if err != nil {
				t.Fatalf("Complete returned error: %v", err)
			}
			if content != "from delta" {
				t.Fatalf("unexpected content %q", content)
			}
		})
	}
}

func TestClientEmptyContentHasSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, map[string]any{"finish_reason": "length", "message": map[string]any{"content": ""}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL}, WithRetryMaxAttempts(1))
	_, err := client.Complete(context.Background(), "", "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `finish_reason="length"`) || !strings.Contains(err.Error(), "response_snippet=") {
		t.Fatalf("expected diagnostic details, got %v", err)
	}
}

func TestClientRetriesOnHTTP429(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limited"})
			return
		}
		writeCompletion(t, w, map[string]any{"message": map[string]any{"content": "ok"}})
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"},
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
		WithRetryBackoff(0, 10*time.Second),
		WithRetryMaxAttempts(5),
	)
	content, err := client.Complete(context.Background(), "system", "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "ok" {
		t.Fatalf("unexpected content %q", content)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected single sleep of 1s, got %v", slept)
	}
}

func TestClientPersistent429IsBlocked(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL},
		WithSleeper(func(time.Duration) {}),
		WithRetryMaxAttempts(3),
	)
	_, err := client.Complete(context.Background(), "", "prompt")
	if !errors.Is(err, services.ErrBlocked) {
		t.Fatalf("expected blocked marker, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestClientRetriesOnEmptyContentThenSucceeds(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		content := ""
		if calls >= 3 {
			content = "third time"
		}
		writeCompletion(t, w, map[string]any{"finish_reason": "stop", "message": map[string]any{"content": content}})
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"},
		WithRetryBackoff(0, 0),
		WithSleeper(func(time.Duration) {}),
		WithRetryMaxAttempts(5),
	)
	content, err := client.Complete(context.Background(), "system", "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "third time" || calls != 3 {
		t.Fatalf("unexpected content %q after %d calls", content, calls)
	}
}

func TestBackoffDelayDoublesAndCaps(t *testing.T) {
	client := NewClient(Config{}, WithRetryBackoff(time.Second, 5*time.Second))
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second}
	for i, expected := range want {
		if got := client.backoffDelay(i + 1); got != expected {
			t.Fatalf("attempt %d: got %s want %s", i+1, got, expected)
		}
	}
}
