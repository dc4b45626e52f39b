package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsTargetWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))

	w, err := New(50*time.Millisecond, target)
	require.NoError(t, err)
	w.Start()
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	select {
	case name := <-w.Changes:
		t.Fatalf("unexpected change for %s", name)
	case <-time.After(150 * time.Millisecond):
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte{byte('a' + i)}, 0o644))
	}

	select {
	case name := <-w.Changes:
		assert.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst was coalesced into one event.
	select {
	case name := <-w.Changes:
		t.Fatalf("burst not debounced, extra change for %s", name)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	target := filepath.Join(t.TempDir(), "f")
	w, err := New(time.Millisecond, target)
	require.NoError(t, err)
	w.Start()

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(time.Millisecond, filepath.Join(t.TempDir(), "nope", "f"))
	assert.Error(t, err)
}
