package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/MKhiriev/fav-sync/internal/app"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

type uploadService struct {
	messenger  PageMessenger
	sync       store.Namespace
	codec      *Codec
	hostFilter string
	logger     *logger.Logger
}

func NewUploadService(messenger PageMessenger, sync store.Namespace, codec *Codec, hostFilter string, log *logger.Logger) UploadService {
	return &uploadService{
		messenger:  messenger,
		sync:       sync,
		codec:      codec,
		hostFilter: hostFilter,
		logger:     log,
	}
}

// Upload asks the active page for its favorites and writes them to the sync
// store. Every failure is translated into an error status message.
func (s *uploadService) Upload(ctx context.Context) models.StatusMessage {
	log := s.logger.GetChildLogger()

	page, ok := s.messenger.Active()
	if !ok {
		uploadTotal.WithLabelValues("unreachable").Inc()
		return failure(app.MsgUploadPageUnreachable)
	}
	if !strings.Contains(page.URL, s.hostFilter) {
		uploadTotal.WithLabelValues("not_on_site").Inc()
		return failure(app.MsgUploadNotOnSite)
	}

	resp, err := s.messenger.Send(ctx, page.ID, models.GetFavoritesMessage())
	if err != nil {
		uploadTotal.WithLabelValues("unreachable").Inc()
		log.Err(err).Str("func", "uploadService.Upload").Str("page_id", page.ID).Msg("error sending message to page")
		return failure(app.MsgUploadPageUnreachable)
	}
	if !resp.Success {
		uploadTotal.WithLabelValues("read_failed").Inc()
		log.Warn().Str("func", "uploadService.Upload").Str("error", resp.Error).Msg("failed to get favorites")
		return failure(app.MsgUploadReadFailed)
	}

	raw, err := s.codec.Encode(resp.Favorites)
	if err == nil {
		err = s.sync.Set(ctx, map[string]json.RawMessage{models.KeyFavorites: raw})
	}
	if err != nil {
		uploadTotal.WithLabelValues("save_failed").Inc()
		log.Err(err).Str("func", "uploadService.Upload").Msg("failed to save favorites to sync storage")
		if errors.Is(err, store.ErrQuotaExceeded) {
			return failure(app.MsgUploadSaveFailed + ": " + app.MsgQuotaExceeded)
		}
		return failure(app.MsgUploadSaveFailed)
	}

	uploadTotal.WithLabelValues("ok").Inc()
	log.Info().Str("func", "uploadService.Upload").Int("count", len(resp.Favorites)).Msg("uploaded favorites to sync storage")
	return models.StatusMessage{Message: app.MsgUploadSucceeded}
}

func failure(message string) models.StatusMessage {
	return models.StatusMessage{Message: message, IsError: true}
}
