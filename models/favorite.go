// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Favorite is a single saved item. URL is the natural key of a favorite;
// IsConverted is owned by the page and is passed through unchanged.
type Favorite struct {
	URL         string `json:"url" validate:"required"`
	IsConverted bool   `json:"isConverted"`
}

// Favorites is an ordered favorites list. Insertion order is display order and
// no two entries share the same URL at rest.
type Favorites []Favorite

// URLs returns the set of URLs present in the list.
func (f Favorites) URLs() map[string]struct{} {
	seen := make(map[string]struct{}, len(f))
	for _, item := range f {
		seen[item.URL] = struct{}{}
	}
	return seen
}

// Contains reports whether an entry with url is present.
func (f Favorites) Contains(url string) bool {
	for _, item := range f {
		if item.URL == url {
			return true
		}
	}
	return false
}
