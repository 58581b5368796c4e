package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/utils"
	"github.com/MKhiriev/fav-sync/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) View(ctx context.Context) (models.FavoritesView, error) {
	var view models.FavoritesView
	resp, err := h.request(ctx).SetResult(&view).Get("/api/favorites")
	if err != nil {
		return models.FavoritesView{}, fmt.Errorf("view request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FavoritesView{}, err
	}
	return view, nil
}

func (h *httpServerAdapter) Usage(ctx context.Context) (models.StorageUsage, error) {
	var usage models.StorageUsage
	resp, err := h.request(ctx).SetResult(&usage).Get("/api/usage")
	if err != nil {
		return models.StorageUsage{}, fmt.Errorf("usage request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StorageUsage{}, err
	}
	return usage, nil
}

func (h *httpServerAdapter) Pages(ctx context.Context) ([]models.PageInfo, error) {
	var pages []models.PageInfo
	resp, err := h.request(ctx).SetResult(&pages).Get("/api/pages")
	if err != nil {
		return nil, fmt.Errorf("list pages request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return pages, nil
}

func (h *httpServerAdapter) Open(ctx context.Context, rawURL string) (models.PageInfo, error) {
	var info models.PageInfo
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.OpenPageRequest{URL: rawURL}).
		SetResult(&info).
		Post("/api/pages")
	if err != nil {
		return models.PageInfo{}, fmt.Errorf("open page request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PageInfo{}, err
	}

	h.logger.Debug().Str("func", "httpServerAdapter.Open").Str("page_id", info.ID).Msg("page opened")
	return info, nil
}

func (h *httpServerAdapter) Close(ctx context.Context, id string) error {
	resp, err := h.request(ctx).
		SetPathParam("id", id).
		Delete("/api/pages/{id}")
	if err != nil {
		return fmt.Errorf("close page request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Focus(ctx context.Context, id string) error {
	resp, err := h.request(ctx).
		SetPathParam("id", id).
		Post("/api/pages/{id}/focus")
	if err != nil {
		return fmt.Errorf("focus page request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) PageFavorites(ctx context.Context, id string) (models.Response, error) {
	var out models.Response
	resp, err := h.request(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Get("/api/pages/{id}/favorites")
	if err != nil {
		return models.Response{}, fmt.Errorf("page favorites request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Response{}, err
	}
	return out, nil
}

func (h *httpServerAdapter) Replace(ctx context.Context, id string, favorites models.Favorites) (models.Favorites, error) {
	if favorites == nil {
		favorites = models.Favorites{}
	}

	var stored models.Favorites
	resp, err := h.request(ctx).
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(favorites).
		SetResult(&stored).
		Put("/api/pages/{id}/favorites")
	if err != nil {
		return nil, fmt.Errorf("replace favorites request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return stored, nil
}

func (h *httpServerAdapter) Star(ctx context.Context, id string, req models.StarRequest) (models.StarResponse, error) {
	var out models.StarResponse
	resp, err := h.request(ctx).
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/pages/{id}/star")
	if err != nil {
		return models.StarResponse{}, fmt.Errorf("star request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StarResponse{}, err
	}
	return out, nil
}

// Upload returns the status message of the daemon. A failed upload is not an
// error here: it is reported through StatusMessage.IsError.
func (h *httpServerAdapter) Upload(ctx context.Context) (models.StatusMessage, error) {
	var status models.StatusMessage
	resp, err := h.request(ctx).SetResult(&status).Post("/api/upload")
	if err != nil {
		return models.StatusMessage{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusMessage{}, err
	}
	return status, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo
	resp, err := h.request(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}
	return info, nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}
