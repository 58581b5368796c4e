// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Action is the discriminant of a page message.
type Action string

const (
	// ActionGetFavorites asks a page for its current favorites list.
	ActionGetFavorites Action = "getFavorites"
	// ActionSyncFromStorage delivers a sync update to a page for merging.
	ActionSyncFromStorage Action = "syncFromStorage"
	// ActionMalformed marks a message that failed boundary validation.
	ActionMalformed Action = "malformed"
)

// Message is a tagged union of everything that can be sent to a page.
// Exactly one payload matches Action; a message that cannot be decoded is
// represented with ActionMalformed and Reason set.
type Message struct {
	Action    Action
	Favorites Favorites
	Reason    string
}

// GetFavoritesMessage builds a getFavorites request.
func GetFavoritesMessage() Message {
	return Message{Action: ActionGetFavorites}
}

// SyncFromStorageMessage builds a syncFromStorage request carrying favorites.
func SyncFromStorageMessage(favorites Favorites) Message {
	return Message{Action: ActionSyncFromStorage, Favorites: favorites}
}

// MalformedMessage builds the variant used for undecodable input.
func MalformedMessage(reason string) Message {
	return Message{Action: ActionMalformed, Reason: reason}
}

type wireMessage struct {
	Action    Action          `json:"action"`
	Favorites json.RawMessage `json:"favorites,omitempty"`
}

// MarshalJSON encodes the message in the {action, favorites} wire shape.
func (m Message) MarshalJSON() ([]byte, error) {
	w := wireMessage{Action: m.Action}
	if m.Action == ActionSyncFromStorage {
		raw, err := json.Marshal(m.Favorites)
		if err != nil {
			return nil, err
		}
		w.Favorites = raw
	}
	return json.Marshal(w)
}

// DecodeMessage parses a raw wire message. It never fails: input that is not a
// known action with a well-formed payload becomes a MalformedMessage.
func DecodeMessage(raw []byte) Message {
	var w wireMessage
	if err := json.Unmarshal(raw, &w); err != nil {
		return MalformedMessage(fmt.Sprintf("invalid message: %v", err))
	}

	switch w.Action {
	case ActionGetFavorites:
		return GetFavoritesMessage()
	case ActionSyncFromStorage:
		var favorites Favorites
		if len(w.Favorites) == 0 || string(w.Favorites) == "null" {
			return MalformedMessage("syncFromStorage without favorites")
		}
		if err := json.Unmarshal(w.Favorites, &favorites); err != nil {
			return MalformedMessage(fmt.Sprintf("invalid favorites payload: %v", err))
		}
		return SyncFromStorageMessage(favorites)
	default:
		return MalformedMessage(fmt.Sprintf("unknown action %q", w.Action))
	}
}

// Response is the answer of a page to a message.
type Response struct {
	Success   bool      `json:"success"`
	Favorites Favorites `json:"favorites"`
	Error     string    `json:"error,omitempty"`
}
