package curation

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"curator/internal/fileutil"
	"curator/internal/services"
	"curator/internal/transcript"
)

// BestVideoList is the append-only file of winning video URLs, one per line.
type BestVideoList struct {
	path string
}

// NewBestVideoList returns the list stored at path.
func NewBestVideoList(path string) *BestVideoList {
	return &BestVideoList{path: path}
}

// Path returns the list file location.
func (l *BestVideoList) Path() string {
	return l.path
}

// Reset truncates the list to empty.
func (l *BestVideoList) Reset() error {
	if err := os.WriteFile(l.path, nil, 0o644); err != nil {
		return fmt.Errorf("reset best video list: %w", err)
	}
	return nil
}

// Append adds one URL line.
func (l *BestVideoList) Append(url string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open best video list: %w", err)
	}
	if _, err := f.WriteString(strings.TrimSpace(url) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append best video list: %w", err)
	}
	return f.Close()
}

// Read returns the URLs in file order. A missing file reads as empty.
func (l *BestVideoList) Read() ([]string, error) {
	lines, err := readLines(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}

// CandidateLinks is the per-sub-topic candidate URL file, overwritten for
// each sub-topic search.
type CandidateLinks struct {
	path string
}

// NewCandidateLinks returns the link file stored at path.
func NewCandidateLinks(path string) *CandidateLinks {
	return &CandidateLinks{path: path}
}

// Write replaces the file with one canonical URL per line.
func (c *CandidateLinks) Write(refs []transcript.VideoRef) error {
	var b strings.Builder
	for _, ref := range refs {
		b.WriteString(ref.URL)
		b.WriteByte('\n')
	}
	if err := fileutil.WriteFileAtomic(c.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write candidate links: %w", err)
	}
	return nil
}

// Read parses the candidate URLs. Unparsable lines are dropped. A missing or
// empty file returns an error wrapping services.ErrNotFound.
func (c *CandidateLinks) Read() ([]transcript.VideoRef, error) {
	lines, err := readLines(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "candidate_links", "read", "link file missing", nil)
		}
		return nil, fmt.Errorf("read candidate links: %w", err)
	}
	refs := make([]transcript.VideoRef, 0, len(lines))
	for _, line := range lines {
		ref, err := transcript.ParseVideoRef(line)
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "candidate_links", "read", "link file has no video URLs", nil)
	}
	return refs, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
