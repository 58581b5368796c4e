package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// DrainOutcome tells what a drain did with the staged payload.
type DrainOutcome string

const (
	// DrainEmpty means nothing was staged.
	DrainEmpty DrainOutcome = "empty"
	// DrainMalformed means the staged payload was not a favorites list.
	DrainMalformed DrainOutcome = "malformed"
	// DrainNoNew means the payload brought nothing new and was left staged.
	DrainNoNew DrainOutcome = "no_new"
	// DrainArchived means new entries were merged and the payload archived.
	DrainArchived DrainOutcome = "archived"
)

// BootstrapResult is the outcome of one page load pipeline.
type BootstrapResult struct {
	// Pushed reports whether the page list was forwarded to the sync store.
	Pushed bool
	// Drain is the outcome of the staging drain.
	Drain DrainOutcome
	// Merge is the merge performed by the drain, if any.
	Merge MergeResult
}

// Bootstrap runs the page load pipeline: push the page list outward, drain
// the staging store, merge the staged payload and clear or keep it.
type Bootstrap struct {
	reconciler  *Reconciler
	interceptor *ChangeInterceptor
	staging     store.Namespace
	codec       *Codec
	now         func() time.Time
	logger      *logger.Logger

	// guards the staging store: drains are serialized with each other and
	// with the dispatcher staging a new list
	mu sync.Mutex
}

func NewBootstrap(reconciler *Reconciler, interceptor *ChangeInterceptor, staging store.Namespace, codec *Codec, log *logger.Logger) *Bootstrap {
	return &Bootstrap{
		reconciler:  reconciler,
		interceptor: interceptor,
		staging:     staging,
		codec:       codec,
		now:         time.Now,
		logger:      log,
	}
}

// Run executes the pipeline for a page of origin. Every stage contains its
// own failures; a failed push does not stop the drain.
func (b *Bootstrap) Run(ctx context.Context, origin string) (BootstrapResult, error) {
	result := BootstrapResult{Pushed: b.push(ctx, origin)}

	drain, merge, err := b.Drain(ctx, origin)
	result.Drain = drain
	result.Merge = merge
	return result, err
}

func (b *Bootstrap) push(ctx context.Context, origin string) bool {
	local, ok, err := b.reconciler.Local(ctx, origin)
	if err != nil {
		b.logger.Warn().Err(err).
			Str("func", "Bootstrap.push").
			Str("origin", origin).
			Msg("cannot push page favorites")
		return false
	}
	if !ok {
		b.logger.Debug().Str("func", "Bootstrap.push").Str("origin", origin).Msg("no favorites found in page storage")
		return false
	}
	return b.interceptor.Forward(ctx, origin, local) == nil
}

// Drain merges the staged payload into the page store of origin. The
// payload is cleared and archived only when the merge added entries;
// otherwise it stays staged and a later drain may retry.
func (b *Bootstrap) Drain(ctx context.Context, origin string) (DrainOutcome, MergeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := b.logger.WithStr("origin", origin)

	values, err := b.staging.Get(ctx, models.KeyPendingFavorites)
	if err != nil {
		log.Err(err).Str("func", "Bootstrap.Drain").Msg("failed to read staged favorites")
		return "", MergeResult{}, err
	}
	raw, ok := values[models.KeyPendingFavorites]
	if !ok || string(raw) == "null" {
		drainTotal.WithLabelValues(string(DrainEmpty)).Inc()
		return DrainEmpty, MergeResult{}, nil
	}

	merge, err := b.reconciler.ApplyRaw(ctx, origin, raw)
	switch {
	case errors.Is(err, ErrDecode):
		drainTotal.WithLabelValues(string(DrainMalformed)).Inc()
		return DrainMalformed, MergeResult{}, nil
	case err != nil:
		return "", MergeResult{}, err
	case !merge.HasNew:
		drainTotal.WithLabelValues(string(DrainNoNew)).Inc()
		return DrainNoNew, merge, nil
	}

	syncedAt, err := json.Marshal(b.now().UTC().Format(isoTimeLayout))
	if err != nil {
		return "", merge, err
	}
	if err = b.staging.Set(ctx, map[string]json.RawMessage{
		models.KeyPendingFavorites:    nil,
		models.KeyLastSyncedFavorites: raw,
		models.KeyLastSyncedTime:      syncedAt,
	}); err != nil {
		log.Err(err).Str("func", "Bootstrap.Drain").Msg("failed to archive staged favorites")
		return "", merge, err
	}

	drainTotal.WithLabelValues(string(DrainArchived)).Inc()
	log.Info().Str("func", "Bootstrap.Drain").Int("added", merge.Added).Msg("staged favorites drained")
	return DrainArchived, merge, nil
}
