package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLock_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".plaindex")
	lock := NewWorkspaceLock(dir)

	acquired, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	defer func() { _ = lock.Unlock() }()

	_, err = os.Stat(lock.Path())
	assert.NoError(t, err)
}

func TestWorkspaceLock_UnlockIsIdempotent(t *testing.T) {
	lock := NewWorkspaceLock(t.TempDir())

	// Unlocking before locking is a no-op.
	require.NoError(t, lock.Unlock())

	acquired, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, lock.Unlock())
	require.NoError(t, lock.Unlock())
}

func TestWorkspaceLock_ReacquirableAfterUnlock(t *testing.T) {
	dir := t.TempDir()
	lock := NewWorkspaceLock(dir)

	acquired, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	require.NoError(t, lock.Unlock())

	again, err := lock.TryLock()
	require.NoError(t, err)
	assert.True(t, again)
	require.NoError(t, lock.Unlock())
}
