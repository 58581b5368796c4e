package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/internal/validators"
	"github.com/MKhiriev/fav-sync/models"
)

const (
	testOrigin = "https://lgtmoon.dev"
	testQuota  = 102400
)

func testCodec() *Codec {
	return NewCodec(validators.NewValidator())
}

func favs(urls ...string) models.Favorites {
	out := models.Favorites{}
	for _, u := range urls {
		out = append(out, models.Favorite{URL: u})
	}
	return out
}

func encode(t *testing.T, f models.Favorites) string {
	t.Helper()
	raw, err := testCodec().Encode(f)
	require.NoError(t, err)
	return string(raw)
}

type testEnv struct {
	pages    *store.MemoryPageStorage
	sync     *store.MemoryNamespace
	local    *store.LocalNamespace
	hub      *messaging.Hub
	services *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	local, err := store.NewLocalNamespace(":memory:", logger.Nop())
	require.NoError(t, err)

	env := &testEnv{
		pages: store.NewMemoryPageStorage(),
		sync:  store.NewMemoryNamespace(models.AreaSync, testQuota),
		local: local,
		hub:   messaging.NewHub(logger.Nop()),
	}

	cfg := config.StructuredConfig{
		App: config.App{
			Version:          "test",
			Domains:          config.DefaultDomains,
			UploadHostFilter: config.DefaultUploadHostFilter,
		},
		Storage: config.Storage{Sync: config.SyncStorage{QuotaBytes: testQuota}},
	}
	storages := &store.Storages{Page: env.pages, Sync: env.sync, Local: env.local}

	env.services, err = NewServices(storages, env.hub, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(env.services.Detach)
	return env
}

func (e *testEnv) pageFavorites(t *testing.T, origin string) models.Favorites {
	t.Helper()
	value, ok, err := e.pages.GetItem(context.Background(), origin, models.KeyFavorites)
	require.NoError(t, err)
	require.True(t, ok, "page %s has no favorites", origin)
	f, err := testCodec().DecodeString(context.Background(), value)
	require.NoError(t, err)
	return f
}

func namespaceFavorites(t *testing.T, ns store.Namespace, key string) (models.Favorites, bool) {
	t.Helper()
	values, err := ns.Get(context.Background(), key)
	require.NoError(t, err)
	raw, ok := values[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	var f models.Favorites
	require.NoError(t, json.Unmarshal(raw, &f))
	return f, true
}
