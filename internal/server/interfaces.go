package server

import "context"

// Server defines the lifecycle of the daemon.
//
// [RunServer] blocks until ctx is cancelled, a termination signal arrives or
// a component fails; it then shuts everything down. [Shutdown] stops the
// HTTP server early and frees its resources.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
