package models

import "time"

// Storage keys shared by all namespaces.
const (
	// KeyFavorites holds the favorites list in the page and sync namespaces.
	KeyFavorites = "favorites"

	// KeyPendingFavorites holds the staged copy of the last sync update that
	// has not been drained into a page yet.
	KeyPendingFavorites = "pendingFavorites"
	// KeyLastSyncTime is the time the pending copy was staged.
	KeyLastSyncTime = "lastSyncTime"

	// KeyLastSyncedFavorites holds the archived copy of the last drained update.
	KeyLastSyncedFavorites = "lastSyncedFavorites"
	// KeyLastSyncedTime is the time the archived copy was drained.
	KeyLastSyncedTime = "lastSyncedTime"
)

// Area identifies one of the storage namespaces of the host platform.
type Area string

const (
	// AreaPage is the page-scoped namespace (one per origin).
	AreaPage Area = "page"
	// AreaSync is the account-synchronized namespace.
	AreaSync Area = "sync"
	// AreaLocal is the device-local namespace used for staging.
	AreaLocal Area = "local"
)

// ChangeEvent is delivered to namespace subscribers after a write.
type ChangeEvent struct {
	// Area is the namespace that changed.
	Area Area `json:"area"`
	// Origin is set for page namespace changes only.
	Origin string `json:"origin,omitempty"`
	// ChangedKeys lists the keys written by the change.
	ChangedKeys []string `json:"changedKeys"`
	// External is set when the change was written by another process.
	External bool `json:"external,omitempty"`
}

// Has reports whether key is one of the changed keys.
func (e ChangeEvent) Has(key string) bool {
	for _, k := range e.ChangedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PendingTransfer is the staged copy of a sync update waiting for a page.
// A nil PendingFavorites means there is nothing to drain.
type PendingTransfer struct {
	PendingFavorites Favorites `json:"pendingFavorites"`
	LastSyncTime     time.Time `json:"lastSyncTime"`
}

// ArchivedTransfer is the copy recorded after a successful drain.
type ArchivedTransfer struct {
	LastSyncedFavorites Favorites `json:"lastSyncedFavorites"`
	LastSyncedTime      time.Time `json:"lastSyncedTime"`
}
