package http

import (
	"net/http"

	"github.com/MKhiriev/fav-sync/internal/utils"
)

// getFavorites answers the popup view: the synced list and its usage.
func (h *Handler) getFavorites(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.ViewService.View(r.Context())
	if err != nil {
		writeError(w, r, "Handler.getFavorites", err)
		return
	}
	_, _ = utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) getUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.services.ViewService.Usage(r.Context())
	if err != nil {
		writeError(w, r, "Handler.getUsage", err)
		return
	}
	_, _ = utils.WriteJSON(w, usage, http.StatusOK)
}

// upload runs upload-on-demand. Failures are part of the status message, so
// the call itself always succeeds.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	status := h.services.UploadService.Upload(r.Context())
	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}
