// Package server runs the favsync daemon: the HTTP API and the background
// workers, from startup to signal-driven graceful shutdown.
package server
