// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// isoTimeLayout is the millisecond UTC form staging timestamps are stored in.
const isoTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DispatchResult summarizes one fan-out.
type DispatchResult struct {
	// Delivered counts pages that accepted the message.
	Delivered int
	// Failed counts pages that were gone or failed to handle it.
	Failed int
}

// Dispatcher fans sync store changes out to every open page of the
// supported domains and stages them for pages opened later.
type Dispatcher struct {
	messenger PageMessenger
	staging   store.Namespace
	codec     *Codec
	domains   []string
	now       func() time.Time
	logger    *logger.Logger

	// stagingMu is held around every staging write; it is shared with the
	// drain so a stage never lands between a drain's read and its archive
	stagingMu *sync.Mutex
}

func NewDispatcher(messenger PageMessenger, staging store.Namespace, codec *Codec, domains []string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		staging:   staging,
		codec:     codec,
		domains:   domains,
		now:       time.Now,
		logger:    log,
		stagingMu: &sync.Mutex{},
	}
}

// shareStagingLock makes the dispatcher stage under the lock the drain of b
// holds.
func (d *Dispatcher) shareStagingLock(b *Bootstrap) {
	d.stagingMu = &b.mu
}

// Attach subscribes to changes of the sync favorites key.
func (d *Dispatcher) Attach(sync store.Namespace) (detach func()) {
	return sync.Subscribe(func(ctx context.Context, event models.ChangeEvent) {
		if !event.Has(models.KeyFavorites) {
			return
		}
		ctx = context.WithoutCancel(ctx)

		values, err := sync.Get(ctx, models.KeyFavorites)
		if err != nil {
			d.logger.Err(err).Str("func", "Dispatcher.Attach").Msg("failed to read sync favorites")
			return
		}
		raw, ok := values[models.KeyFavorites]
		if !ok {
			return
		}
		favorites, err := d.codec.Decode(ctx, raw)
		if err != nil {
			d.logger.Err(err).Str("func", "Dispatcher.Attach").Msg("sync favorites are malformed, not dispatching")
			return
		}

		d.logger.Info().Str("func", "Dispatcher.Attach").
			Int("count", len(favorites)).
			Msg("sync favorites updated")
		_, _ = d.Dispatch(ctx, favorites)
	})
}

// Dispatch sends favorites to every open page matching one of the domain
// patterns, then stages them. Staging happens even when every page received
// the message since pages do not acknowledge merging it.
func (d *Dispatcher) Dispatch(ctx context.Context, favorites models.Favorites) (DispatchResult, error) {
	var result DispatchResult
	msg := models.SyncFromStorageMessage(favorites)
	sent := make(map[string]struct{})

	for _, pattern := range d.domains {
		pages, err := d.messenger.Query(ctx, pattern)
		if err != nil {
			d.logger.Err(err).Str("func", "Dispatcher.Dispatch").Str("pattern", pattern).Msg("failed to query pages")
			continue
		}

		for _, page := range pages {
			if _, dup := sent[page.ID]; dup {
				continue
			}
			sent[page.ID] = struct{}{}

			if _, err = d.messenger.Send(ctx, page.ID, msg); err != nil {
				result.Failed++
				if errors.Is(err, messaging.ErrUnreachableTarget) {
					fanOutDeliveries.WithLabelValues("unreachable").Inc()
					d.logger.Debug().Str("func", "Dispatcher.Dispatch").Str("page_id", page.ID).Msg("page is gone, skipping")
					continue
				}
				fanOutDeliveries.WithLabelValues("error").Inc()
				d.logger.Warn().Err(err).Str("func", "Dispatcher.Dispatch").Str("page_id", page.ID).Msg("page failed to handle sync update")
				continue
			}
			fanOutDeliveries.WithLabelValues("ok").Inc()
			result.Delivered++
		}
	}

	if err := d.stage(ctx, favorites); err != nil {
		return result, err
	}
	return result, nil
}

// stage replaces the pending slot of the staging store with favorites.
func (d *Dispatcher) stage(ctx context.Context, favorites models.Favorites) error {
	d.stagingMu.Lock()
	defer d.stagingMu.Unlock()

	rawPending, err := d.codec.Encode(favorites)
	if err != nil {
		return err
	}
	rawTime, err := json.Marshal(d.now().UTC().Format(isoTimeLayout))
	if err != nil {
		return err
	}

	if err = d.staging.Set(ctx, map[string]json.RawMessage{
		models.KeyPendingFavorites: rawPending,
		models.KeyLastSyncTime:     rawTime,
	}); err != nil {
		d.logger.Err(err).Str("func", "Dispatcher.stage").Msg("failed to stage favorites")
		return err
	}

	d.logger.Debug().Str("func", "Dispatcher.stage").Int("count", len(favorites)).Msg("favorites staged")
	return nil
}
