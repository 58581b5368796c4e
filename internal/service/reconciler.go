package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// MergeResult is the outcome of merging an incoming list into a page store.
type MergeResult struct {
	// Favorites is the page list after the merge.
	Favorites models.Favorites
	// HasNew reports whether the merge appended entries and wrote them.
	HasNew bool
	// Added is the number of appended entries.
	Added int
}

// Reconciler merges incoming lists into page stores. Merged lists are written
// through the quiet path so they are not forwarded back to the sync store.
type Reconciler struct {
	pages  store.PageStorage
	codec  *Codec
	logger *logger.Logger
}

func NewReconciler(pages store.PageStorage, codec *Codec, log *logger.Logger) *Reconciler {
	return &Reconciler{pages: pages, codec: codec, logger: log}
}

// Local returns the favorites held by the page store of origin and whether
// the key exists. A stored value that does not decode is reported with
// [ErrDecode].
func (r *Reconciler) Local(ctx context.Context, origin string) (models.Favorites, bool, error) {
	value, ok, err := r.pages.GetItem(ctx, origin, models.KeyFavorites)
	if err != nil || !ok {
		return nil, ok, err
	}
	favorites, err := r.codec.DecodeString(ctx, value)
	if err != nil {
		return nil, true, err
	}
	return favorites, true, nil
}

// Apply merges incoming into the page store of origin. Nothing is written
// when incoming brings no new url.
func (r *Reconciler) Apply(ctx context.Context, origin string, incoming models.Favorites) (MergeResult, error) {
	log := r.logger.WithStr("origin", origin)

	local, _, err := r.Local(ctx, origin)
	switch {
	case errors.Is(err, ErrDecode):
		log.Warn().Err(err).Str("func", "Reconciler.Apply").Msg("page favorites are malformed, treating them as empty")
		local = nil
	case err != nil:
		mergeTotal.WithLabelValues("store_error").Inc()
		log.Err(err).Str("func", "Reconciler.Apply").Msg("failed to read page favorites")
		return MergeResult{}, err
	}

	merged, hasNew := MergeFavorites(local, incoming)
	if !hasNew {
		mergeTotal.WithLabelValues("no_new").Inc()
		log.Debug().Str("func", "Reconciler.Apply").Msg("no new favorites")
		return MergeResult{Favorites: merged}, nil
	}

	raw, err := r.codec.Encode(merged)
	if err != nil {
		return MergeResult{}, err
	}
	if err = r.pages.SetItemQuiet(ctx, origin, models.KeyFavorites, string(raw)); err != nil {
		mergeTotal.WithLabelValues("store_error").Inc()
		log.Err(err).Str("func", "Reconciler.Apply").Msg("failed to write merged favorites")
		return MergeResult{}, err
	}

	added := len(merged) - len(local)
	mergeTotal.WithLabelValues("merged").Inc()
	mergeAddedItems.Observe(float64(added))
	log.Info().Str("func", "Reconciler.Apply").
		Int("added", added).
		Int("count", len(merged)).
		Msg("merged favorites into page storage")

	return MergeResult{Favorites: merged, HasNew: true, Added: added}, nil
}

// ApplyRaw decodes raw and merges it. A malformed payload is a logged no-op
// reported with [ErrDecode].
func (r *Reconciler) ApplyRaw(ctx context.Context, origin string, raw []byte) (MergeResult, error) {
	incoming, err := r.codec.Decode(ctx, raw)
	if err != nil {
		mergeTotal.WithLabelValues("malformed").Inc()
		r.logger.Err(err).
			Str("func", "Reconciler.ApplyRaw").
			Str("origin", origin).
			Msg("rejected incoming favorites")
		return MergeResult{}, err
	}
	return r.Apply(ctx, origin, incoming)
}
