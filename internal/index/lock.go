package index

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// WorkspaceLock provides cross-process locking of a workspace data
// directory so two plaindex servers never index the same tree at once.
type WorkspaceLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewWorkspaceLock creates a lock for the given data directory. The lock
// file lives at <dir>/.lock and is created on first acquisition.
func NewWorkspaceLock(dir string) *WorkspaceLock {
	lockPath := filepath.Join(dir, ".lock")
	return &WorkspaceLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// TryLock attempts to acquire the lock without blocking. It returns false
// when another process holds the lock.
func (l *WorkspaceLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create data directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire workspace lock: %w", err)
	}
	if acquired {
		l.locked = true
	}
	return acquired, nil
}

// Unlock releases the lock. Safe to call on an unlocked WorkspaceLock.
func (l *WorkspaceLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release workspace lock: %w", err)
	}
	return nil
}

// Path returns the lock file location.
func (l *WorkspaceLock) Path() string {
	return l.path
}
