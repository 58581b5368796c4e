package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/internal/mock"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

var testDomains = []string{"https://lgtmoon.dev/*", "https://*.lgtmoon.dev/*"}

func newTestDispatcher(messenger PageMessenger, staging store.Namespace) *Dispatcher {
	d := NewDispatcher(messenger, staging, testCodec(), testDomains, logger.Nop())
	d.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 0, 123000000, time.FixedZone("MSK", 3*3600))
	}
	return d
}

func TestDispatcher_Dispatch_SendsOncePerPage(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)

	apex := models.PageInfo{ID: "p1", URL: "https://lgtmoon.dev/"}
	sub := models.PageInfo{ID: "p2", URL: "https://www.lgtmoon.dev/"}
	msg := models.SyncFromStorageMessage(favs("a"))

	// the apex page matches both patterns but gets a single message
	messenger.EXPECT().Query(gomock.Any(), testDomains[0]).Return([]models.PageInfo{apex}, nil)
	messenger.EXPECT().Query(gomock.Any(), testDomains[1]).Return([]models.PageInfo{apex, sub}, nil)
	messenger.EXPECT().Send(gomock.Any(), "p1", msg).Return(models.Response{Success: true}, nil).Times(1)
	messenger.EXPECT().Send(gomock.Any(), "p2", msg).Return(models.Response{Success: true}, nil).Times(1)

	result, err := newTestDispatcher(messenger, staging).Dispatch(ctx, favs("a"))
	require.NoError(t, err)
	assert.Equal(t, DispatchResult{Delivered: 2}, result)
}

func TestDispatcher_Dispatch_UnreachablePagesAreSkipped(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)

	messenger.EXPECT().Query(gomock.Any(), testDomains[0]).Return([]models.PageInfo{{ID: "gone"}, {ID: "broken"}, {ID: "ok"}}, nil)
	messenger.EXPECT().Query(gomock.Any(), testDomains[1]).Return(nil, errors.New("query failed"))
	messenger.EXPECT().Send(gomock.Any(), "gone", gomock.Any()).Return(models.Response{}, messaging.ErrUnreachableTarget)
	messenger.EXPECT().Send(gomock.Any(), "broken", gomock.Any()).Return(models.Response{}, messaging.ErrDeliveryFailed)
	messenger.EXPECT().Send(gomock.Any(), "ok", gomock.Any()).Return(models.Response{Success: true}, nil)

	result, err := newTestDispatcher(messenger, staging).Dispatch(ctx, favs("a"))
	require.NoError(t, err)
	assert.Equal(t, DispatchResult{Delivered: 1, Failed: 2}, result)

	staged, ok := namespaceFavorites(t, staging, models.KeyPendingFavorites)
	require.True(t, ok, "staging happens whatever the delivery outcome")
	assert.Equal(t, favs("a"), staged)
}

func TestDispatcher_Dispatch_StagesWithTimestamp(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	messenger.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil).Times(len(testDomains))
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)

	_, err := newTestDispatcher(messenger, staging).Dispatch(ctx, favs("a", "b"))
	require.NoError(t, err)

	values, err := staging.Get(ctx, models.KeyLastSyncTime)
	require.NoError(t, err)
	var stamp string
	require.NoError(t, json.Unmarshal(values[models.KeyLastSyncTime], &stamp))
	assert.Equal(t, "2026-03-01T09:30:00.123Z", stamp)
}

func TestDispatcher_Dispatch_ReplacesUndrainedPending(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	messenger.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)

	d := newTestDispatcher(messenger, staging)
	_, err := d.Dispatch(ctx, favs("a", "b"))
	require.NoError(t, err)
	// b was removed upstream and must not survive in the staged copy
	_, err = d.Dispatch(ctx, favs("c", "a"))
	require.NoError(t, err)

	staged, ok := namespaceFavorites(t, staging, models.KeyPendingFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("c", "a"), staged)
}

func TestDispatcher_Dispatch_WaitsForRunningDrain(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	messenger.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)

	b := &Bootstrap{}
	d := newTestDispatcher(messenger, staging)
	d.shareStagingLock(b)

	b.mu.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = d.Dispatch(ctx, favs("a"))
	}()

	select {
	case <-done:
		b.mu.Unlock()
		t.Fatal("favorites were staged while a drain held the staging store")
	case <-time.After(50 * time.Millisecond):
	}
	_, ok := namespaceFavorites(t, staging, models.KeyPendingFavorites)
	assert.False(t, ok)

	b.mu.Unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch did not finish after the drain released the staging store")
	}
	staged, ok := namespaceFavorites(t, staging, models.KeyPendingFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("a"), staged)
}

func TestDispatcher_Dispatch_ReplacesClearedPending(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	messenger.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)
	require.NoError(t, staging.Set(ctx, map[string]json.RawMessage{models.KeyPendingFavorites: nil}))

	_, err := newTestDispatcher(messenger, staging).Dispatch(ctx, favs("z"))
	require.NoError(t, err)

	staged, ok := namespaceFavorites(t, staging, models.KeyPendingFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("z"), staged)
}

func TestDispatcher_Dispatch_StagingFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	messenger.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	staging := mock.NewMockNamespace(ctrl)
	staging.EXPECT().Set(gomock.Any(), gomock.Any()).Return(store.ErrStore)

	_, err := newTestDispatcher(messenger, staging).Dispatch(ctx, favs("a"))
	assert.ErrorIs(t, err, store.ErrStore)
}

func TestDispatcher_Attach(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	messenger := mock.NewMockPageMessenger(ctrl)
	syncNS := store.NewMemoryNamespace(models.AreaSync, testQuota)
	staging := store.NewMemoryNamespace(models.AreaLocal, 0)

	messenger.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil).Times(len(testDomains))

	detach := newTestDispatcher(messenger, staging).Attach(syncNS)
	defer detach()

	// other keys and malformed favorites are not dispatched
	require.NoError(t, syncNS.Set(ctx, map[string]json.RawMessage{"settings": json.RawMessage(`{}`)}))
	require.NoError(t, syncNS.Set(ctx, map[string]json.RawMessage{models.KeyFavorites: json.RawMessage(`{"a":1}`)}))

	require.NoError(t, syncNS.Set(ctx, map[string]json.RawMessage{models.KeyFavorites: json.RawMessage(encode(t, favs("a")))}))

	staged, ok := namespaceFavorites(t, staging, models.KeyPendingFavorites)
	require.True(t, ok)
	assert.Equal(t, favs("a"), staged)
}
