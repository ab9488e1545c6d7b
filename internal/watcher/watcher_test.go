package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim(t *testing.T) {
	w := &implWatcher{}
	assert.True(t, w.claim("a"))
	assert.False(t, w.claim("a"))
	w.release("a")
	assert.True(t, w.claim("a"))
}

func TestWatcherDispatchesAcceptedFiles(t *testing.T) {
	dir := t.TempDir()

	var (
		mu   sync.Mutex
		seen []string
	)
	handled := make(chan struct{}, 4)
	handler := func(_ context.Context, path string) error {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
		handled <- struct{}{}
		return nil
	}

	w, err := New(Options{
		Dir:    dir,
		Accept: func(p string) bool { return strings.HasSuffix(p, ".m4a") },
	}, handler, logger.Discard())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meeting.m4a"), []byte("x"), 0644))

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"meeting.m4a"}, seen)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(Options{Dir: filepath.Join(t.TempDir(), "missing")}, nil, logger.Discard())
	assert.Error(t, err)
}
