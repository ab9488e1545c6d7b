package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"golang.org/x/sync/semaphore"
)

// Options configures a Watcher.
type Options struct {
	Dir           string
	MaxConcurrent int
	// Accept selects files to handle; nil accepts everything.
	Accept Filter
	// SettleDelay is waited after a create event so the writer can finish.
	SettleDelay time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Accept == nil {
		opts.Accept = func(string) bool { return true }
	}

	return &implWatcher{
		opts:      opts,
		handler:   handler,
		logger:    log,
		watcher:   watcher,
		semaphore: semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}, nil
}
