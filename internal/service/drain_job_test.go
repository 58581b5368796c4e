// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/mock"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// spyDrainer counts DrainAll calls.
type spyDrainer struct {
	calls  atomic.Int64
	merged int
}

func (s *spyDrainer) DrainAll(context.Context) int {
	s.calls.Add(1)
	return s.merged
}

func TestDrainJob_Start_CallsDrainAll(t *testing.T) {
	spy := &spyDrainer{merged: 1}
	job := NewDrainJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	assert.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	job.Stop()
}

func TestDrainJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyDrainer{}
	job := NewDrainJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no drains after Stop")
}

func TestDrainJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewDrainJob(&spyDrainer{}, 10*time.Millisecond, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestDrainJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewDrainJob(&spyDrainer{}, 10*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}

func TestDrainJob_Restart_KeepsDraining(t *testing.T) {
	spy := &spyDrainer{}
	job := NewDrainJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	assert.Eventually(t, func() bool { return spy.calls.Load() > 0 }, time.Second, 5*time.Millisecond)
	before := spy.calls.Load()

	job.Start(context.Background())
	assert.Eventually(t, func() bool { return spy.calls.Load() > before }, time.Second, 5*time.Millisecond)
	job.Stop()
}

func TestDrainJob_Run_DisabledReturnsAtOnce(t *testing.T) {
	spy := &spyDrainer{}
	job := NewDrainJob(spy, 0, logger.Nop())

	done := make(chan error, 1)
	go func() { done <- job.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run with zero interval must return")
	}
	assert.Zero(t, spy.calls.Load())
}

func TestDrainJob_Run_StopsOnContextCancel(t *testing.T) {
	spy := &spyDrainer{}
	job := NewDrainJob(spy, 5*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- job.Run(ctx) }()

	assert.Eventually(t, func() bool { return spy.calls.Load() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run hung after context cancel")
	}
}

func TestDrainJob_Attach_DrainsExternalStaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	staging := mock.NewMockNamespace(ctrl)

	var listener store.ChangeListener
	staging.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(l store.ChangeListener) func() {
		listener = l
		return func() {}
	})

	spy := &spyDrainer{}
	job := NewDrainJob(spy, 0, logger.Nop())
	detach := job.Attach(staging)
	defer detach()
	require.NotNil(t, listener)

	ctx := context.Background()
	listener(ctx, models.ChangeEvent{Area: models.AreaLocal, ChangedKeys: []string{models.KeyPendingFavorites}})
	listener(ctx, models.ChangeEvent{Area: models.AreaLocal, ChangedKeys: []string{models.KeyLastSyncedTime}, External: true})
	assert.Zero(t, spy.calls.Load(), "own writes and other keys are not drained")

	listener(ctx, models.ChangeEvent{Area: models.AreaLocal, ChangedKeys: []string{models.KeyPendingFavorites}, External: true})
	assert.Equal(t, int64(1), spy.calls.Load())
}
