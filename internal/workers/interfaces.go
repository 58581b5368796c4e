// Package workers runs the background loops of the daemon: the staging file
// watcher, the sync store change listener and the periodic drain.
// It defines the Worker interface and a Workers aggregate that runs every
// worker until the first one fails or the context is cancelled.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails; a nil error means a clean stop.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
