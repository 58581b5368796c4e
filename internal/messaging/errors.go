package messaging

import "errors"

var (
	// ErrUnreachableTarget is returned when a message is sent to a page
	// that is not open (any more).
	ErrUnreachableTarget = errors.New("target page is unreachable")

	// ErrDeliveryFailed wraps an endpoint failure while handling a message.
	ErrDeliveryFailed = errors.New("message delivery failed")

	// ErrInvalidPattern is returned for a URL pattern that cannot be compiled.
	ErrInvalidPattern = errors.New("invalid url pattern")

	// ErrInvalidPageURL is returned when registering a page whose URL has
	// no scheme or host.
	ErrInvalidPageURL = errors.New("invalid page url")
)
