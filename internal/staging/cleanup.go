package staging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"curator/internal/logging"
)

// DefaultMaxAge is how long a scratch entry may survive before CleanStale removes it.
const DefaultMaxAge = 24 * time.Hour

// CleanStaleResult contains the outcome of a stale scratch cleanup.
type CleanStaleResult struct {
	Removed []string
	Freed   int64
	Errors  []CleanupError
}

// CleanupError pairs a path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes entries of the scratch directory (temp audio files and
// yt-dlp caption directories) last modified before maxAge ago. Entries left
// behind by an interrupted run are the only ones expected to match.
func CleanStale(ctx context.Context, scratchDir string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	scratchDir = strings.TrimSpace(scratchDir)
	if scratchDir == "" {
		return result
	}
	entries, err := os.ReadDir(scratchDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: scratchDir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		path := filepath.Join(scratchDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		size := entrySize(path, info)
		if err := os.RemoveAll(path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			logging.WarnWithContext(ctx, logger, "failed to remove stale scratch entry", "scratch_cleanup_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check paths.temp_dir permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		result.Removed = append(result.Removed, path)
		result.Freed += size
		logger.InfoContext(ctx, "removed stale scratch entry",
			logging.String("path", path),
			logging.Duration("age", time.Since(info.ModTime())),
			logging.String(logging.FieldEventType, "scratch_cleanup"),
		)
	}
	return result
}

func entrySize(path string, info os.FileInfo) int64 {
	if !info.IsDir() {
		return info.Size()
	}
	var size int64
	_ = filepath.Walk(path, func(_ string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !fi.IsDir() {
			size += fi.Size()
		}
		return nil
	})
	return size
}
