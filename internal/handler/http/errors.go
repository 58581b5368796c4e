// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors detected by the handlers before the service layer is called.
var (
	// ErrInvalidJSON is returned when a request body is not the expected JSON.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrMissingPageURL is returned when the websocket page endpoint is
	// called without the `url` query parameter.
	ErrMissingPageURL = errors.New("missing `url` query parameter")
)
