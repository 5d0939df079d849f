package pacing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"curator/internal/pacing"
)

func TestZeroIntervalDisablesPacing(t *testing.T) {
	p := pacing.New(0)
	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("disabled pacer waited %s", elapsed)
	}
	if p.Interval() != 0 {
		t.Fatalf("unexpected interval %s", p.Interval())
	}
}

func TestNilPacerNeverWaits(t *testing.T) {
	var p *pacing.Pacer
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
}

func TestPacerSpacesCalls(t *testing.T) {
	interval := 40 * time.Millisecond
	p := pacing.New(interval)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}
	// First call passes immediately; the next two each wait one interval.
	if elapsed := time.Since(start); elapsed < 2*interval-10*time.Millisecond {
		t.Fatalf("expected at least ~%s between calls, got %s", 2*interval, elapsed)
	}
}

func TestPacerHonoursCancellation(t *testing.T) {
	p := pacing.New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait returned error: %v", err)
	}
	cancel()
	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
}
