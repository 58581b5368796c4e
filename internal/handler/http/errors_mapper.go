package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/fav-sync/internal/app"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/internal/service"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/internal/utils"
	"github.com/MKhiriev/fav-sync/internal/validators"
	"github.com/MKhiriev/fav-sync/models"
)

// errorStatusMap is ordered: the quota error wraps ErrStore and must be
// matched first.
var errorStatusMap = []struct {
	target error
	status int
}{
	{store.ErrQuotaExceeded, http.StatusInsufficientStorage},

	{service.ErrPageNotFound, http.StatusNotFound},
	{messaging.ErrUnreachableTarget, http.StatusNotFound},
	{messaging.ErrDeliveryFailed, http.StatusBadGateway},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrMissingPageURL, http.StatusBadRequest},
	{messaging.ErrInvalidPageURL, http.StatusBadRequest},
	{validators.ErrInvalidPageURL, http.StatusBadRequest},
	{validators.ErrInvalidFavorite, http.StatusBadRequest},
	{service.ErrDecode, http.StatusBadRequest},
	{store.ErrInvalidValue, http.StatusBadRequest},

	{store.ErrStore, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromStatus hides internal details for server-side failures.
func messageFromStatus(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return app.MsgInvalidDataProvided + ": " + err.Error()
	case http.StatusNotFound:
		return app.MsgPageNotFound
	case http.StatusInsufficientStorage:
		return app.MsgQuotaExceeded
	case http.StatusServiceUnavailable:
		return app.MsgStorageUnavailable
	case http.StatusBadGateway:
		return err.Error()
	default:
		return app.MsgInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: messageFromStatus(status, err)}, status)
}
