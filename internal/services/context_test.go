package services_test

import (
	"context"
	"testing"

	"curator/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-42")
	ctx = services.WithSubtopic(ctx, "Loops")
	ctx = services.WithVideoID(ctx, "dQw4w9WgXcQ")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-42" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if subtopic, ok := services.SubtopicFromContext(ctx); !ok || subtopic != "Loops" {
		t.Fatalf("unexpected subtopic: %v %v", subtopic, ok)
	}
	if vid, ok := services.VideoIDFromContext(ctx); !ok || vid != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id: %v %v", vid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSubtopic(ctx, "")
	ctx = services.WithRunID(ctx, "")
	if _, ok := services.SubtopicFromContext(ctx); ok {
		t.Fatal("expected no subtopic value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
}
