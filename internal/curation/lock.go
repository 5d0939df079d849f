package curation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another run holds the artifact lock.
var ErrLocked = errors.New("another curator run is using the output directory")

// ArtifactLock is an exclusive inter-process lock around the run artifacts.
type ArtifactLock struct {
	path string
	lock *flock.Flock
}

// NewArtifactLock returns a lock backed by the file at path.
func NewArtifactLock(path string) *ArtifactLock {
	return &ArtifactLock{path: path, lock: flock.New(path)}
}

// Acquire takes the lock without waiting; contention returns ErrLocked.
func (l *ArtifactLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock file %s)", ErrLocked, l.path)
	}
	return nil
}

// Release drops the lock.
func (l *ArtifactLock) Release() error {
	return l.lock.Unlock()
}
