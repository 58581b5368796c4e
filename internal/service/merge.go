// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/fav-sync/models"

// MergeFavorites appends to local every incoming favorite whose url is not
// present yet and reports whether anything was appended.
//
// Local entries keep their order and their fields; new entries are appended
// in incoming order and repeated urls inside incoming are taken once. The
// result never aliases local.
func MergeFavorites(local, incoming models.Favorites) (models.Favorites, bool) {
	merged := make(models.Favorites, len(local), len(local)+len(incoming))
	copy(merged, local)

	seen := local.URLs()
	hasNew := false
	for _, item := range incoming {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		merged = append(merged, item)
		hasNew = true
	}

	return merged, hasNew
}
