package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

type viewService struct {
	sync       store.Namespace
	codec      *Codec
	quotaBytes int
	logger     *logger.Logger
}

func NewViewService(sync store.Namespace, codec *Codec, quotaBytes int, log *logger.Logger) ViewService {
	return &viewService{sync: sync, codec: codec, quotaBytes: quotaBytes, logger: log}
}

// View returns the synced favorites and their usage. Missing or malformed
// sync favorites are shown as an empty list.
func (s *viewService) View(ctx context.Context) (models.FavoritesView, error) {
	favorites, err := s.favorites(ctx)
	if err != nil {
		return models.FavoritesView{}, err
	}
	return models.FavoritesView{
		Favorites: favorites,
		Usage:     Usage(favorites, s.quotaBytes),
	}, nil
}

func (s *viewService) Usage(ctx context.Context) (models.StorageUsage, error) {
	favorites, err := s.favorites(ctx)
	if err != nil {
		return models.StorageUsage{}, err
	}
	return Usage(favorites, s.quotaBytes), nil
}

func (s *viewService) favorites(ctx context.Context) (models.Favorites, error) {
	values, err := s.sync.Get(ctx, models.KeyFavorites)
	if err != nil {
		s.logger.Err(err).Str("func", "viewService.favorites").Msg("failed to read sync favorites")
		return nil, err
	}

	raw, ok := values[models.KeyFavorites]
	if !ok {
		return models.Favorites{}, nil
	}
	favorites, err := s.codec.Decode(ctx, raw)
	if errors.Is(err, ErrDecode) {
		s.logger.Warn().Err(err).Str("func", "viewService.favorites").Msg("sync favorites are malformed")
		return models.Favorites{}, nil
	}
	return favorites, err
}
