// Package http implements the daemon API of favsync.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging, request metrics and response compression are handled here
// before requests are delegated to the service layer. Pages can also be
// opened over a websocket whose lifetime bounds the page.
package http
