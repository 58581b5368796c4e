package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

type bootstrapFixture struct {
	pages   *store.MemoryPageStorage
	sync    *store.MemoryNamespace
	staging *store.MemoryNamespace
	b       *Bootstrap
}

func newBootstrapFixture(t *testing.T) *bootstrapFixture {
	t.Helper()
	f := &bootstrapFixture{
		pages:   store.NewMemoryPageStorage(),
		sync:    store.NewMemoryNamespace(models.AreaSync, testQuota),
		staging: store.NewMemoryNamespace(models.AreaLocal, 0),
	}
	codec := testCodec()
	f.b = NewBootstrap(
		NewReconciler(f.pages, codec, logger.Nop()),
		NewChangeInterceptor(f.sync, codec, logger.Nop()),
		f.staging, codec, logger.Nop(),
	)
	f.b.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return f
}

func (f *bootstrapFixture) stage(t *testing.T, raw string) {
	t.Helper()
	require.NoError(t, f.staging.Set(context.Background(), map[string]json.RawMessage{
		models.KeyPendingFavorites: json.RawMessage(raw),
		models.KeyLastSyncTime:     json.RawMessage(`"2026-03-01T00:00:00.000Z"`),
	}))
}

func TestBootstrap_Drain_Archives(t *testing.T) {
	ctx := context.Background()
	f := newBootstrapFixture(t)
	require.NoError(t, f.pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a"))))
	f.stage(t, encode(t, favs("a", "b")))

	outcome, merge, err := f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainArchived, outcome)
	assert.Equal(t, favs("a", "b"), merge.Favorites)

	_, pending := namespaceFavorites(t, f.staging, models.KeyPendingFavorites)
	assert.False(t, pending, "pending slot is cleared")

	archived, ok := namespaceFavorites(t, f.staging, models.KeyLastSyncedFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("a", "b"), archived)

	values, err := f.staging.Get(ctx, models.KeyLastSyncedTime)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-02T08:00:00.000Z"`, string(values[models.KeyLastSyncedTime]))
}

func TestBootstrap_Drain_NothingNewKeepsPending(t *testing.T) {
	ctx := context.Background()
	f := newBootstrapFixture(t)
	require.NoError(t, f.pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a", "b"))))
	f.stage(t, encode(t, favs("b")))

	outcome, _, err := f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainNoNew, outcome)

	pending, ok := namespaceFavorites(t, f.staging, models.KeyPendingFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("b"), pending)
	_, archived := namespaceFavorites(t, f.staging, models.KeyLastSyncedFavorites)
	assert.False(t, archived)
}

func TestBootstrap_Drain_EmptyAndMalformed(t *testing.T) {
	ctx := context.Background()

	f := newBootstrapFixture(t)
	outcome, _, err := f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainEmpty, outcome)

	f.stage(t, `null`)
	outcome, _, err = f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainEmpty, outcome)

	f.stage(t, `{"favorites":[]}`)
	outcome, _, err = f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainMalformed, outcome)

	_, ok, err := f.pages.GetItem(ctx, testOrigin, models.KeyFavorites)
	require.NoError(t, err)
	assert.False(t, ok, "malformed payload must not touch the page store")
}

func TestBootstrap_Drain_SecondDrainSeesArchivedState(t *testing.T) {
	ctx := context.Background()
	f := newBootstrapFixture(t)
	f.stage(t, encode(t, favs("x")))

	outcome, _, err := f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainArchived, outcome)

	outcome, _, err = f.b.Drain(ctx, testOrigin)
	require.NoError(t, err)
	assert.Equal(t, DrainEmpty, outcome)
}

func TestBootstrap_Run_PushesThenDrains(t *testing.T) {
	ctx := context.Background()
	f := newBootstrapFixture(t)
	require.NoError(t, f.pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a"))))
	f.stage(t, encode(t, favs("a", "b")))

	result, err := f.b.Run(ctx, testOrigin)
	require.NoError(t, err)
	assert.True(t, result.Pushed)
	assert.Equal(t, DrainArchived, result.Drain)

	// the push carries the page list as it was before the drain
	synced, ok := namespaceFavorites(t, f.sync, models.KeyFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("a"), synced)
}

func TestBootstrap_Run_NothingToPush(t *testing.T) {
	ctx := context.Background()
	f := newBootstrapFixture(t)

	result, err := f.b.Run(ctx, testOrigin)
	require.NoError(t, err)
	assert.False(t, result.Pushed)
	assert.Equal(t, DrainEmpty, result.Drain)

	require.NoError(t, f.pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, `not json`))
	result, err = f.b.Run(ctx, testOrigin)
	require.NoError(t, err)
	assert.False(t, result.Pushed)

	_, ok := namespaceFavorites(t, f.sync, models.KeyFavorites)
	assert.False(t, ok)
}
