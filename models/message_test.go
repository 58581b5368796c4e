package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantAction Action
		wantItems  Favorites
	}{
		{
			name:       "get favorites",
			raw:        `{"action":"getFavorites"}`,
			wantAction: ActionGetFavorites,
		},
		{
			name:       "sync from storage",
			raw:        `{"action":"syncFromStorage","favorites":[{"url":"a","isConverted":true}]}`,
			wantAction: ActionSyncFromStorage,
			wantItems:  Favorites{{URL: "a", IsConverted: true}},
		},
		{
			name:       "sync from storage with empty list",
			raw:        `{"action":"syncFromStorage","favorites":[]}`,
			wantAction: ActionSyncFromStorage,
			wantItems:  Favorites{},
		},
		{
			name:       "sync from storage without favorites",
			raw:        `{"action":"syncFromStorage"}`,
			wantAction: ActionMalformed,
		},
		{
			name:       "sync from storage with null favorites",
			raw:        `{"action":"syncFromStorage","favorites":null}`,
			wantAction: ActionMalformed,
		},
		{
			name:       "favorites is not a list",
			raw:        `{"action":"syncFromStorage","favorites":{"url":"a"}}`,
			wantAction: ActionMalformed,
		},
		{
			name:       "unknown action",
			raw:        `{"action":"deleteEverything"}`,
			wantAction: ActionMalformed,
		},
		{
			name:       "not json",
			raw:        `favorites`,
			wantAction: ActionMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := DecodeMessage([]byte(tt.raw))
			assert.Equal(t, tt.wantAction, msg.Action)
			if tt.wantAction == ActionMalformed {
				assert.NotEmpty(t, msg.Reason)
				return
			}
			assert.Equal(t, tt.wantItems, msg.Favorites)
		})
	}
}

func TestMessage_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(SyncFromStorageMessage(Favorites{{URL: "a"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"syncFromStorage","favorites":[{"url":"a","isConverted":false}]}`, string(raw))

	raw, err = json.Marshal(GetFavoritesMessage())
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"getFavorites"}`, string(raw))
}

func TestChangeEvent_Has(t *testing.T) {
	e := ChangeEvent{Area: AreaSync, ChangedKeys: []string{KeyFavorites}}
	assert.True(t, e.Has(KeyFavorites))
	assert.False(t, e.Has(KeyPendingFavorites))
}

func TestFavorites_URLs(t *testing.T) {
	f := Favorites{{URL: "a"}, {URL: "b"}}
	urls := f.URLs()
	assert.Len(t, urls, 2)
	assert.True(t, f.Contains("b"))
	assert.False(t, f.Contains("c"))
}
