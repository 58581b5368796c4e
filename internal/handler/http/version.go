package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/fav-sync/internal/utils"
)

// getServerVersion answers with the plain version string, or with the full
// build info when the caller accepts JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		_, _ = utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
		return
	}

	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(serverVersion))
}
