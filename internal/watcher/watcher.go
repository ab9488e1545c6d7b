package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"golang.org/x/sync/semaphore"
)

type implWatcher struct {
	opts      Options
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore *semaphore.Weighted
	wg        sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.opts.Dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.opts.Accept(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}
			if !w.claim(event.Name) {
				continue
			}

			w.logger.Info(ctx, "New file detected: %s", event.Name)
			if err := w.dispatch(ctx, event.Name); err != nil {
				w.release(event.Name)
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch waits for a free slot and runs the handler in a goroutine.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	if w.opts.SettleDelay > 0 {
		select {
		case <-time.After(w.opts.SettleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := w.semaphore.Acquire(ctx, 1); err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.semaphore.Release(1)
		defer w.release(path)

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

// claim marks path as being handled; a second create event for the same
// path is ignored until the first handler returns.
func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight == nil {
		w.inFlight = make(map[string]bool)
	}
	if w.inFlight[path] {
		return false
	}
	w.inFlight[path] = true
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, path)
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
