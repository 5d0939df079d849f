package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"curator/internal/services"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank status: %#v", results[2])
	}
}

func TestRequirementsWhisperXOptional(t *testing.T) {
	reqs := Requirements("", false)
	if reqs[0].Command != "yt-dlp" || reqs[0].Optional {
		t.Fatalf("yt-dlp must be required: %#v", reqs[0])
	}
	for _, req := range reqs[1:] {
		if !req.Optional {
			t.Fatalf("%s should be optional without whisperx", req.Name)
		}
	}
	for _, req := range Requirements("/opt/yt-dlp", true) {
		if req.Optional {
			t.Fatalf("%s should be required with whisperx", req.Name)
		}
	}
}

func TestMissing(t *testing.T) {
	statuses := []Status{
		{Name: "yt-dlp", Available: true},
		{Name: "uvx", Optional: true, Detail: "binary \"uvx\" not found"},
	}
	if err := Missing(statuses); err != nil {
		t.Fatalf("expected nil for optional gap, got %v", err)
	}
	statuses = append(statuses, Status{Name: "FFmpeg", Detail: "binary \"ffmpeg\" not found"})
	err := Missing(statuses)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
