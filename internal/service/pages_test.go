package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/models"
)

func TestPageService_OpenListClose(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.services.PageService

	var changes [][]models.PageInfo
	unsubscribe := svc.OnPagesChange(func(pages []models.PageInfo) { changes = append(changes, pages) })
	defer unsubscribe()

	info, err := svc.Open(ctx, "https://lgtmoon.dev/favorites")
	require.NoError(t, err)
	assert.Equal(t, testOrigin, info.Origin)
	assert.NotEmpty(t, info.ID)

	pages := svc.List(ctx)
	require.Len(t, pages, 1)
	assert.Equal(t, info.ID, pages[0].ID)

	require.NoError(t, svc.Close(ctx, info.ID))
	assert.Empty(t, svc.List(ctx))
	assert.Len(t, changes, 2)

	assert.ErrorIs(t, svc.Close(ctx, info.ID), ErrPageNotFound)
}

func TestPageService_Open_InvalidURL(t *testing.T) {
	env := newTestEnv(t)
	for _, raw := range []string{"", "lgtmoon.dev", "://x", "/relative"} {
		_, err := env.services.PageService.Open(context.Background(), raw)
		assert.ErrorIs(t, err, messaging.ErrInvalidPageURL, raw)
	}
}

func TestPageService_UnknownPage(t *testing.T) {
	ctx := context.Background()
	svc := newTestEnv(t).services.PageService

	assert.ErrorIs(t, svc.Focus(ctx, "nope"), ErrPageNotFound)

	_, err := svc.Favorites(ctx, "nope")
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.Replace(ctx, "nope", favs("a"))
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.ToggleStar(ctx, "nope", models.StarRequest{URL: "a"})
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.Watch("nope", func(models.Favorites) {})
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPageService_FavoritesAndStar(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.services.PageService

	info, err := svc.Open(ctx, "https://lgtmoon.dev/")
	require.NoError(t, err)

	resp, err := svc.Favorites(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, resp.Success)

	var watched models.Favorites
	unsubscribe, err := svc.Watch(info.ID, func(f models.Favorites) { watched = f })
	require.NoError(t, err)
	defer unsubscribe()

	star, err := svc.ToggleStar(ctx, info.ID, models.StarRequest{URL: "https://image.lgtmoon.dev/1"})
	require.NoError(t, err)
	assert.True(t, star.Starred)
	assert.Equal(t, star.Favorites, watched)

	resp, err = svc.Favorites(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, favs("https://image.lgtmoon.dev/1"), resp.Favorites)
}

func TestPageService_DrainAll_OncePerOrigin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.services.PageService.(*pageService)

	_, err := svc.Open(ctx, "https://lgtmoon.dev/a")
	require.NoError(t, err)
	_, err = svc.Open(ctx, "https://lgtmoon.dev/b")
	require.NoError(t, err)

	// stage directly, as if the change arrived while the pages were unreachable
	require.NoError(t, env.local.Set(ctx, map[string]json.RawMessage{
		models.KeyPendingFavorites: json.RawMessage(encode(t, favs("x"))),
	}))

	assert.Equal(t, 1, svc.DrainAll(ctx))
	assert.Equal(t, favs("x"), env.pageFavorites(t, testOrigin))
	assert.Equal(t, 0, svc.DrainAll(ctx))
}
