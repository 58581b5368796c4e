package models

// UsageLevel grades how close the sync store is to its capacity.
type UsageLevel string

const (
	UsageNormal   UsageLevel = "normal"
	UsageWarning  UsageLevel = "warning"
	UsageCritical UsageLevel = "critical"
)

// StorageUsage is the advisory capacity view of the sync store.
type StorageUsage struct {
	Current int        `json:"current"`
	Max     int        `json:"max"`
	Level   UsageLevel `json:"level"`
}

// FavoritesView is what the popup shows: the synced list and its usage.
type FavoritesView struct {
	Favorites Favorites    `json:"favorites"`
	Usage     StorageUsage `json:"usage"`
}

// StatusMessage is the human-readable outcome of an upload-on-demand.
type StatusMessage struct {
	Message string `json:"message"`
	IsError bool   `json:"isError"`
}
