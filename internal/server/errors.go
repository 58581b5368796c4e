package server

import "errors"

var (
	// errNoServersAreCreated is returned when the daemon has no HTTP
	// address to listen on.
	errNoServersAreCreated = errors.New("no servers are created")
	errNoHTTPHandler       = errors.New("no http handler provided")
)
