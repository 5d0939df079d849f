package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TranscriptText returns a transcript body of at least n runes built from a
// repeating sentence.
func TranscriptText(n int) string {
	const sentence = "Python değişkenleri veri saklamak için kullanılır. "
	if n <= 0 {
		n = 1
	}
	repeats := n/len([]rune(sentence)) + 1
	return strings.Repeat(sentence, repeats)
}

// WriteTranscript writes a stored-transcript fixture named after the video URL
// key, the same layout the transcript store uses.
func WriteTranscript(t testing.TB, dir, videoKey, url, text string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	payload, err := json.MarshalIndent(map[string]string{
		"video_id":          videoKey,
		"url":               url,
		"detected_language": "tr",
		"text":              text,
	}, "", "  ")
	if err != nil {
		t.Fatalf("marshal transcript fixture: %v", err)
	}
	path := filepath.Join(dir, videoKey+"_transcript.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteLines writes one line per entry to path.
func WriteLines(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
