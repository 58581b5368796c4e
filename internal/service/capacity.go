// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/json"
	"unicode/utf16"

	"github.com/MKhiriev/fav-sync/models"
)

const (
	// ItemOverheadBytes is added to the size of every favorite.
	ItemOverheadBytes = 8
	// ListOverheadBytes is reserved for the enclosing list.
	ListOverheadBytes = 50

	// WarningRatio and CriticalRatio grade usage against the maximum.
	WarningRatio  = 0.8
	CriticalRatio = 0.95
)

// DefaultSampleFavorite sizes items when the list is empty.
var DefaultSampleFavorite = models.Favorite{
	URL:         "https://image.lgtmoon.dev/123456",
	IsConverted: true,
}

// ItemSize estimates the bytes one favorite takes in the sync store: two
// bytes per character of its JSON form plus a fixed overhead.
func ItemSize(item models.Favorite) int {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return ItemOverheadBytes
	}
	encoded := bytes.TrimRight(buf.Bytes(), "\n")
	return len(utf16.Encode([]rune(string(encoded))))*2 + ItemOverheadBytes
}

// CalculateMaxItems estimates how many favorites shaped like sample fit in
// quotaBytes. A nil sample uses [DefaultSampleFavorite]. The estimate is
// advisory; the sync store enforces the quota on its own.
func CalculateMaxItems(quotaBytes int, sample *models.Favorite) int {
	item := DefaultSampleFavorite
	if sample != nil {
		item = *sample
	}
	available := quotaBytes - ListOverheadBytes
	if available <= 0 {
		return 0
	}
	return available / ItemSize(item)
}

// Usage grades the list against the capacity estimated from its first item.
func Usage(favorites models.Favorites, quotaBytes int) models.StorageUsage {
	var sample *models.Favorite
	if len(favorites) > 0 {
		sample = &favorites[0]
	}

	usage := models.StorageUsage{
		Current: len(favorites),
		Max:     CalculateMaxItems(quotaBytes, sample),
		Level:   models.UsageNormal,
	}
	if usage.Max <= 0 {
		usage.Level = models.UsageCritical
		return usage
	}

	ratio := float64(usage.Current) / float64(usage.Max)
	switch {
	case ratio >= CriticalRatio:
		usage.Level = models.UsageCritical
	case ratio >= WarningRatio:
		usage.Level = models.UsageWarning
	}
	return usage
}
