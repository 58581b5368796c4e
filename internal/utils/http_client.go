package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Every request forwards the trace id found in its context as the
// X-Trace-ID header, so one CLI invocation can be followed in the daemon
// logs.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New()
	client.OnBeforeRequest(forwardTraceID)

	return &HTTPClient{Client: client}
}

func forwardTraceID(_ *resty.Client, req *resty.Request) error {
	if traceID, ok := GetTraceIDFromContext(req.Context()); ok && req.Header.Get(TraceIDHeader) == "" {
		req.SetHeader(TraceIDHeader, traceID)
	}
	return nil
}
