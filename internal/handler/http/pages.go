package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/fav-sync/internal/utils"
	"github.com/MKhiriev/fav-sync/models"
)

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.services.PageService.List(r.Context()), http.StatusOK)
}

func (h *Handler) openPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.OpenPageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, "Handler.openPage", err)
		return
	}
	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "Handler.openPage", err)
		return
	}

	info, err := h.services.PageService.Open(ctx, req.URL)
	if err != nil {
		writeError(w, r, "Handler.openPage", err)
		return
	}
	_, _ = utils.WriteJSON(w, info, http.StatusCreated)
}

func (h *Handler) closePage(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PageService.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "Handler.closePage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) focusPage(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PageService.Focus(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "Handler.focusPage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getPageFavorites relays getFavorites to the page. A page answering with a
// failure is still a successful call; the failure is in the body.
func (h *Handler) getPageFavorites(w http.ResponseWriter, r *http.Request) {
	resp, err := h.services.PageService.Favorites(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "Handler.getPageFavorites", err)
		return
	}
	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) replacePageFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var favorites models.Favorites
	if err := decodeBody(r, &favorites); err != nil {
		writeError(w, r, "Handler.replacePageFavorites", err)
		return
	}
	if favorites == nil {
		writeError(w, r, "Handler.replacePageFavorites", fmt.Errorf("%w: favorites must be a list", ErrInvalidJSON))
		return
	}
	if err := h.validator.Validate(ctx, favorites); err != nil {
		writeError(w, r, "Handler.replacePageFavorites", err)
		return
	}

	stored, err := h.services.PageService.Replace(ctx, chi.URLParam(r, "id"), favorites)
	if err != nil {
		writeError(w, r, "Handler.replacePageFavorites", err)
		return
	}
	_, _ = utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) starPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.StarRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, "Handler.starPage", err)
		return
	}
	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "Handler.starPage", err)
		return
	}

	resp, err := h.services.PageService.ToggleStar(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, "Handler.starPage", err)
		return
	}
	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
