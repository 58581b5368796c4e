// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages used across the
// favsync daemon handlers, the propagation services and the control CLI.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies, status messages or log entries. Keeping them in one place keeps
// the wording consistent between the daemon and the CLI.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for unexpected daemon failures.
	MsgInternalServerError = "internal server error"

	// MsgPageNotFound is returned for operations on a page that is not open.
	MsgPageNotFound = "page not found"

	// MsgQuotaExceeded is returned when a write would exceed the sync quota.
	MsgQuotaExceeded = "sync storage quota exceeded"

	// MsgStorageUnavailable is returned when a namespace cannot be read or
	// written.
	MsgStorageUnavailable = "storage is unavailable"
)

// Upload-on-demand status messages.
const (
	MsgUploadNotOnSite        = "favorites upload is only available on LGTMoon pages"
	MsgUploadPageUnreachable  = "could not reach the page"
	MsgUploadReadFailed       = "failed to read favorites from the page"
	MsgUploadSaveFailed       = "failed to save favorites to sync storage"
	MsgUploadSucceeded        = "favorites uploaded to sync storage"
	MsgMalformedMessagePrefix = "malformed message"
)

// getFavorites failure messages.
const (
	MsgNoFavoritesInPage    = "no favorites found in page storage"
	MsgParseFavoritesFailed = "failed to parse favorites"
)
