// Package watcher feeds new files from the input folder to a handler with
// bounded concurrency.
package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	// Start blocks until ctx is done, then waits for running handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

// Filter reports whether a file should be handed to the EventHandler.
type Filter func(filePath string) bool
