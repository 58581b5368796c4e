package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/mock"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

func TestReconciler_Apply_NewEntries(t *testing.T) {
	ctx := context.Background()
	pages := store.NewMemoryPageStorage()
	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, encode(t, favs("a"))))

	forwarded := 0
	pages.OnWrite(func(context.Context, string, string, string) { forwarded++ })

	r := NewReconciler(pages, testCodec(), logger.Nop())
	result, err := r.Apply(ctx, testOrigin, favs("a", "b"))
	require.NoError(t, err)

	assert.True(t, result.HasNew)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, favs("a", "b"), result.Favorites)

	local, ok, err := r.Local(ctx, testOrigin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, favs("a", "b"), local)
	assert.Zero(t, forwarded, "merged lists must not be observed")
}

func TestReconciler_Apply_NothingNewWritesNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pages := mock.NewMockPageStorage(ctrl)
	pages.EXPECT().GetItem(gomock.Any(), testOrigin, models.KeyFavorites).Return(encode(t, favs("a")), true, nil)
	// no SetItemQuiet expected

	result, err := NewReconciler(pages, testCodec(), logger.Nop()).Apply(ctx, testOrigin, favs("a"))
	require.NoError(t, err)
	assert.False(t, result.HasNew)
	assert.Equal(t, favs("a"), result.Favorites)
}

func TestReconciler_Apply_MalformedLocalTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	pages := store.NewMemoryPageStorage()
	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, `"garbage"`))

	r := NewReconciler(pages, testCodec(), logger.Nop())
	result, err := r.Apply(ctx, testOrigin, favs("x"))
	require.NoError(t, err)
	assert.True(t, result.HasNew)
	assert.Equal(t, favs("x"), result.Favorites)
}

func TestReconciler_Apply_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")

	t.Run("read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pages := mock.NewMockPageStorage(ctrl)
		pages.EXPECT().GetItem(gomock.Any(), testOrigin, models.KeyFavorites).Return("", false, boom)

		_, err := NewReconciler(pages, testCodec(), logger.Nop()).Apply(ctx, testOrigin, favs("a"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pages := mock.NewMockPageStorage(ctrl)
		pages.EXPECT().GetItem(gomock.Any(), testOrigin, models.KeyFavorites).Return("", false, nil)
		pages.EXPECT().SetItemQuiet(gomock.Any(), testOrigin, models.KeyFavorites, gomock.Any()).Return(boom)

		_, err := NewReconciler(pages, testCodec(), logger.Nop()).Apply(ctx, testOrigin, favs("a"))
		assert.ErrorIs(t, err, boom)
	})
}

func TestReconciler_ApplyRaw_MalformedIsNoOp(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pages := mock.NewMockPageStorage(ctrl)
	// the page store is never touched

	r := NewReconciler(pages, testCodec(), logger.Nop())
	for _, raw := range []string{`{"url":"a"}`, `null`, `"[]"`, `[1,2]`} {
		_, err := r.ApplyRaw(ctx, testOrigin, []byte(raw))
		assert.ErrorIs(t, err, ErrDecode, raw)
	}
}

func TestReconciler_Local(t *testing.T) {
	ctx := context.Background()
	pages := store.NewMemoryPageStorage()
	r := NewReconciler(pages, testCodec(), logger.Nop())

	_, ok, err := r.Local(ctx, testOrigin)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, pages.SetItemQuiet(ctx, testOrigin, models.KeyFavorites, `[{"url":`))
	_, ok, err = r.Local(ctx, testOrigin)
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrDecode)
}
