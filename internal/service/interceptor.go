package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// ChangeInterceptor forwards every observed write of the page favorites key
// to the sync store. It is attached once per page storage so every logical
// write is forwarded exactly once, whatever number of pages is open.
type ChangeInterceptor struct {
	sync   store.Namespace
	codec  *Codec
	logger *logger.Logger
}

func NewChangeInterceptor(sync store.Namespace, codec *Codec, log *logger.Logger) *ChangeInterceptor {
	return &ChangeInterceptor{sync: sync, codec: codec, logger: log}
}

// Attach starts observing pages and returns a function that stops it.
func (i *ChangeInterceptor) Attach(pages store.PageStorage) (detach func()) {
	return pages.OnWrite(i.onWrite)
}

// onWrite runs after the page write has been stored; nothing it does can
// fail that write.
func (i *ChangeInterceptor) onWrite(ctx context.Context, origin, key, value string) {
	if key != models.KeyFavorites {
		return
	}
	ctx = context.WithoutCancel(ctx)

	favorites, err := i.codec.DecodeString(ctx, value)
	if err != nil {
		forwardTotal.WithLabelValues("decode_error").Inc()
		i.logger.Warn().Err(err).
			Str("func", "ChangeInterceptor.onWrite").
			Str("origin", origin).
			Msg("page favorites are malformed, not forwarding")
		return
	}

	_ = i.Forward(ctx, origin, favorites)
}

// Forward writes favorites, as held by the page store of origin, to the sync
// store. Failures are logged and returned; they are never retried.
func (i *ChangeInterceptor) Forward(ctx context.Context, origin string, favorites models.Favorites) error {
	raw, err := i.codec.Encode(favorites)
	if err != nil {
		forwardTotal.WithLabelValues("error").Inc()
		return err
	}

	if err = i.sync.Set(ctx, map[string]json.RawMessage{models.KeyFavorites: raw}); err != nil {
		forwardTotal.WithLabelValues("error").Inc()
		i.logger.Err(err).
			Str("func", "ChangeInterceptor.Forward").
			Str("origin", origin).
			Int("count", len(favorites)).
			Msg("failed to sync favorites to storage")
		return err
	}

	forwardTotal.WithLabelValues("ok").Inc()
	i.logger.Debug().
		Str("func", "ChangeInterceptor.Forward").
		Str("origin", origin).
		Int("count", len(favorites)).
		Msg("favorites synced to storage")
	return nil
}
