// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the favsync daemon API.
//
// [ServerAdapter] decouples the control CLI from the transport. The package
// ships an HTTP/REST implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for an
// unknown page, [ErrQuotaExceeded] for 507).
package adapter

import (
	"context"

	"github.com/MKhiriev/fav-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is the daemon API as seen by the control CLI.
type ServerAdapter interface {
	// View returns the synced favorites together with the storage usage.
	View(ctx context.Context) (models.FavoritesView, error)
	// Usage returns the sync storage usage only.
	Usage(ctx context.Context) (models.StorageUsage, error)

	// Pages lists the open pages.
	Pages(ctx context.Context) ([]models.PageInfo, error)
	// Open opens a page for rawURL and returns its descriptor.
	Open(ctx context.Context, rawURL string) (models.PageInfo, error)
	// Close closes the page with the given id.
	Close(ctx context.Context, id string) error
	// Focus makes the page with the given id the active one.
	Focus(ctx context.Context, id string) error

	// PageFavorites asks the page for its favorites.
	PageFavorites(ctx context.Context, id string) (models.Response, error)
	// Replace overwrites the favorites of the page as a user edit would.
	Replace(ctx context.Context, id string, favorites models.Favorites) (models.Favorites, error)
	// Star toggles one favorite on the page.
	Star(ctx context.Context, id string, req models.StarRequest) (models.StarResponse, error)

	// Upload runs upload-on-demand for the active page.
	Upload(ctx context.Context) (models.StatusMessage, error)
	// Version returns the build info of the daemon.
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
