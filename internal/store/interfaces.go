// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the storage platform favsync propagates between:
// the page namespace (one key space per page origin, SQLite), the
// account-synchronized namespace (PostgreSQL with a byte quota) and the
// device-local namespace (a JSON file).
//
// Every namespace delivers change notifications to subscribers. The page
// namespace additionally distinguishes observed writes (SetItem) from quiet
// writes (SetItemQuiet) so merges coming from the sync namespace are not
// forwarded back to it.
package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/fav-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ChangeListener receives change events of a namespace.
type ChangeListener func(ctx context.Context, event models.ChangeEvent)

// WriteObserver is called after an observed page write has been committed.
type WriteObserver func(ctx context.Context, origin, key, value string)

// Namespace is a key-value area of the storage platform whose values are
// JSON documents.
type Namespace interface {
	// Area names the namespace.
	Area() models.Area

	// Get returns the values stored under keys. Missing keys are absent
	// from the result; with no keys every stored value is returned.
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)

	// Set writes every item in one step. A nil value (or JSON null) is
	// stored as null. Subscribers are notified after the write.
	Set(ctx context.Context, items map[string]json.RawMessage) error

	// Subscribe registers listener for change events and returns a
	// function removing it.
	Subscribe(listener ChangeListener) (unsubscribe func())
}

// PageStorage is the page namespace: string values under string keys, scoped
// by page origin.
type PageStorage interface {
	// GetItem returns the value under key for origin and whether it exists.
	GetItem(ctx context.Context, origin, key string) (string, bool, error)

	// SetItem writes value and, once the write succeeded, calls every
	// registered observer. Observer failures never affect the write.
	SetItem(ctx context.Context, origin, key, value string) error

	// SetItemQuiet writes value without notifying observers.
	SetItemQuiet(ctx context.Context, origin, key, value string) error

	// OnWrite registers observer for SetItem writes of every origin and
	// returns a function removing it.
	OnWrite(observer WriteObserver) (unsubscribe func())
}

// ErrorClassificator decides whether a failed database operation may succeed
// if attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
