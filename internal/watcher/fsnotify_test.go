package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string) *FSWatcher {
	t.Helper()
	w := NewFSWatcher(Options{
		DebounceWindow: 50 * time.Millisecond,
		Extension:      ".plain",
		IgnoreMarker:   ".",
	})
	require.NoError(t, w.Start(context.Background(), []string{root}))
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitForEvent(t *testing.T, w *FSWatcher) FileEvent {
	t.Helper()
	select {
	case event := <-w.Events():
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for file event")
		return FileEvent{}
	}
}

func TestFSWatcher_DetectsDocumentCreation(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, "new.plain")
	require.NoError(t, os.WriteFile(path, []byte("a :widget:\n"), 0o644))

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)
	assert.Equal(t, OpCreate, event.Operation)
}

func TestFSWatcher_DetectsDocumentDeletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.plain")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))

	w := startWatcher(t, dir)

	require.NoError(t, os.Remove(path))

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)
	assert.Equal(t, OpDelete, event.Operation)
}

func TestFSWatcher_IgnoresForeignExtensions(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x\n"), 0o644))

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event for non-document: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFSWatcher_WatchesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	// A directory created after Start must be registered on the fly.
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "doc.plain")
	require.NoError(t, os.WriteFile(path, []byte("a :widget:\n"), 0o644))

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)
}

func TestFSWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
