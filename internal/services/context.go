package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	subtopicKey contextKey = "subtopic"
	videoIDKey  contextKey = "video_id"
)

// WithRunID annotates context with the pipeline run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, runIDKey)
}

// WithSubtopic annotates context with the sub-topic being processed.
func WithSubtopic(ctx context.Context, subtopic string) context.Context {
	if subtopic == "" {
		return ctx
	}
	return context.WithValue(ctx, subtopicKey, subtopic)
}

// SubtopicFromContext returns the sub-topic if present.
func SubtopicFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, subtopicKey)
}

// WithVideoID annotates context with the candidate video identifier.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext returns the candidate video identifier if present.
func VideoIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, videoIDKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
