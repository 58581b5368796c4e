package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fav-sync/internal/app"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

func newTestAgent(t *testing.T) (*PageAgent, *store.MemoryPageStorage, *store.MemoryNamespace) {
	t.Helper()
	pages := store.NewMemoryPageStorage()
	syncNS := store.NewMemoryNamespace(models.AreaSync, testQuota)
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)
	codec := testCodec()

	reconciler := NewReconciler(pages, codec, logger.Nop())
	interceptor := NewChangeInterceptor(syncNS, codec, logger.Nop())
	t.Cleanup(interceptor.Attach(pages))
	bootstrap := NewBootstrap(reconciler, interceptor, staging, codec, logger.Nop())

	return NewPageAgent(testOrigin, pages, reconciler, bootstrap, codec, logger.Nop()), pages, syncNS
}

func TestPageAgent_Deliver_GetFavorites(t *testing.T) {
	ctx := context.Background()
	agent, pages, _ := newTestAgent(t)

	resp, err := agent.Deliver(ctx, models.GetFavoritesMessage())
	require.NoError(t, err)
	assert.Equal(t, models.Response{Success: false, Error: app.MsgNoFavoritesInPage}, resp)

	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, `[oops`))
	resp, err = agent.Deliver(ctx, models.GetFavoritesMessage())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, app.MsgParseFavoritesFailed)

	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a"))))
	resp, err = agent.Deliver(ctx, models.GetFavoritesMessage())
	require.NoError(t, err)
	assert.Equal(t, models.Response{Success: true, Favorites: favs("a")}, resp)
}

func TestPageAgent_Deliver_SyncFromStorage(t *testing.T) {
	ctx := context.Background()
	agent, pages, syncNS := newTestAgent(t)
	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a"))))

	var watched []models.Favorites
	unsubscribe := agent.Watch(func(f models.Favorites) { watched = append(watched, f) })
	defer unsubscribe()

	resp, err := agent.Deliver(ctx, models.SyncFromStorageMessage(favs("a", "b")))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, favs("a", "b"), resp.Favorites)
	assert.Equal(t, []models.Favorites{favs("a", "b")}, watched)

	// merged lists are never forwarded back
	_, ok := namespaceFavorites(t, syncNS, models.KeyFavorites)
	assert.False(t, ok)

	// nothing new: no notification
	_, err = agent.Deliver(ctx, models.SyncFromStorageMessage(favs("b")))
	require.NoError(t, err)
	assert.Len(t, watched, 1)
}

func TestPageAgent_Deliver_Malformed(t *testing.T) {
	agent, _, _ := newTestAgent(t)

	resp, err := agent.Deliver(context.Background(), models.MalformedMessage("unknown action \"x\""))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, app.MsgMalformedMessagePrefix+": unknown action \"x\"", resp.Error)
}

func TestPageAgent_ToggleStar(t *testing.T) {
	ctx := context.Background()
	agent, _, syncNS := newTestAgent(t)

	resp, err := agent.ToggleStar(ctx, models.StarRequest{URL: "a", IsConverted: true})
	require.NoError(t, err)
	assert.True(t, resp.Starred)
	assert.Equal(t, models.Favorites{{URL: "a", IsConverted: true}}, resp.Favorites)

	resp, err = agent.ToggleStar(ctx, models.StarRequest{URL: "b"})
	require.NoError(t, err)
	assert.True(t, resp.Starred)

	resp, err = agent.ToggleStar(ctx, models.StarRequest{URL: "a"})
	require.NoError(t, err)
	assert.False(t, resp.Starred)
	assert.Equal(t, favs("b"), resp.Favorites)

	// every toggle is a user write and reaches the sync store
	synced, ok := namespaceFavorites(t, syncNS, models.KeyFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("b"), synced)

	resp, err = agent.ToggleStar(ctx, models.StarRequest{URL: "b"})
	require.NoError(t, err)
	assert.Equal(t, models.Favorites{}, resp.Favorites)
}

func TestPageAgent_Replace(t *testing.T) {
	ctx := context.Background()
	agent, _, syncNS := newTestAgent(t)

	got, err := agent.Replace(ctx, favs("x", "y"))
	require.NoError(t, err)
	assert.Equal(t, favs("x", "y"), got)

	synced, ok := namespaceFavorites(t, syncNS, models.KeyFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("x", "y"), synced)
}

func TestPageAgent_Load_RunsOnce(t *testing.T) {
	ctx := context.Background()
	agent, pages, syncNS := newTestAgent(t)
	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a"))))

	pushes := 0
	syncNS.Subscribe(func(context.Context, models.ChangeEvent) { pushes++ })

	first, err := agent.Load(ctx)
	require.NoError(t, err)
	assert.True(t, first.Pushed)

	second, err := agent.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, pushes)
}
