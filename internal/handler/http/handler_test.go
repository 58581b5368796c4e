package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fav-sync/internal/app"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/mock"
	"github.com/MKhiriev/fav-sync/internal/service"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/internal/utils"
	"github.com/MKhiriev/fav-sync/models"
)

type testMocks struct {
	pages   *mock.MockPageService
	view    *mock.MockViewService
	upload  *mock.MockUploadService
	appInfo *mock.MockAppInfoService
}

func newTestRouter(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &testMocks{
		pages:   mock.NewMockPageService(ctrl),
		view:    mock.NewMockViewService(ctrl),
		upload:  mock.NewMockUploadService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	h := NewHandler(&service.Services{
		PageService:    m.pages,
		ViewService:    m.view,
		UploadService:  m.upload,
		AppInfoService: m.appInfo,
	}, logger.Nop())
	return h.Init(), m
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.NotNil(t, h.validator)
}

func TestGetServerVersion(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v2.0.0-beta+build.42")

	rec := serve(router, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v2.0.0-beta+build.42", rec.Body.String())
}

func TestGetServerVersion_JSON(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.AppBuildInfo{Version: "1.2.0", Date: "2026-03-01", Commit: "abc123"})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.2.0","date":"2026-03-01","commit":"abc123"}`, rec.Body.String())
}

func TestGetFavorites(t *testing.T) {
	router, m := newTestRouter(t)
	view := models.FavoritesView{
		Favorites: models.Favorites{{URL: "a"}},
		Usage:     models.StorageUsage{Current: 1, Max: 787, Level: models.UsageNormal},
	}
	m.view.EXPECT().View(gomock.Any()).Return(view, nil)

	rec := serve(router, http.MethodGet, "/api/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorites":[{"url":"a","isConverted":false}],"usage":{"current":1,"max":787,"level":"normal"}}`, rec.Body.String())
}

func TestGetFavorites_StoreUnavailable(t *testing.T) {
	router, m := newTestRouter(t)
	m.view.EXPECT().View(gomock.Any()).Return(models.FavoritesView{}, store.ErrStore)

	rec := serve(router, http.MethodGet, "/api/favorites", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, app.MsgStorageUnavailable, decodeError(t, rec))
}

func TestGetUsage(t *testing.T) {
	router, m := newTestRouter(t)
	m.view.EXPECT().Usage(gomock.Any()).Return(models.StorageUsage{Current: 700, Max: 787, Level: models.UsageWarning}, nil)

	rec := serve(router, http.MethodGet, "/api/usage", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"current":700,"max":787,"level":"warning"}`, rec.Body.String())
}

func TestUpload(t *testing.T) {
	router, m := newTestRouter(t)
	m.upload.EXPECT().Upload(gomock.Any()).Return(models.StatusMessage{Message: app.MsgUploadNotOnSite, IsError: true})

	rec := serve(router, http.MethodPost, "/api/upload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"`+app.MsgUploadNotOnSite+`","isError":true}`, rec.Body.String())
}

func TestPages(t *testing.T) {
	page := models.PageInfo{ID: "p1", URL: "https://lgtmoon.dev/", Origin: "https://lgtmoon.dev"}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(m *testMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/pages",
			setup: func(m *testMocks) {
				m.pages.EXPECT().List(gomock.Any()).Return([]models.PageInfo{page})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "open",
			method: http.MethodPost,
			path:   "/api/pages",
			body:   `{"url":"https://lgtmoon.dev/"}`,
			setup: func(m *testMocks) {
				m.pages.EXPECT().Open(gomock.Any(), "https://lgtmoon.dev/").Return(page, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "open with broken body",
			method:     http.MethodPost,
			path:       "/api/pages",
			body:       `{"url":`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "open without url",
			method:     http.MethodPost,
			path:       "/api/pages",
			body:       `{}`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "close",
			method: http.MethodDelete,
			path:   "/api/pages/p1",
			setup: func(m *testMocks) {
				m.pages.EXPECT().Close(gomock.Any(), "p1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "close unknown page",
			method: http.MethodDelete,
			path:   "/api/pages/nope",
			setup: func(m *testMocks) {
				m.pages.EXPECT().Close(gomock.Any(), "nope").Return(service.ErrPageNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"` + app.MsgPageNotFound + `"}`,
		},
		{
			name:   "focus",
			method: http.MethodPost,
			path:   "/api/pages/p1/focus",
			setup: func(m *testMocks) {
				m.pages.EXPECT().Focus(gomock.Any(), "p1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "page favorites",
			method: http.MethodGet,
			path:   "/api/pages/p1/favorites",
			setup: func(m *testMocks) {
				m.pages.EXPECT().Favorites(gomock.Any(), "p1").
					Return(models.Response{Success: false, Error: app.MsgNoFavoritesInPage}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":false,"favorites":null,"error":"` + app.MsgNoFavoritesInPage + `"}`,
		},
		{
			name:   "replace favorites",
			method: http.MethodPut,
			path:   "/api/pages/p1/favorites",
			body:   `[{"url":"a"}]`,
			setup: func(m *testMocks) {
				m.pages.EXPECT().Replace(gomock.Any(), "p1", models.Favorites{{URL: "a"}}).Return(models.Favorites{{URL: "a"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"url":"a","isConverted":false}]`,
		},
		{
			name:       "replace with null",
			method:     http.MethodPut,
			path:       "/api/pages/p1/favorites",
			body:       `null`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "replace with item without url",
			method:     http.MethodPut,
			path:       "/api/pages/p1/favorites",
			body:       `[{"isConverted":true}]`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "replace hits the quota",
			method: http.MethodPut,
			path:   "/api/pages/p1/favorites",
			body:   `[{"url":"a"}]`,
			setup: func(m *testMocks) {
				m.pages.EXPECT().Replace(gomock.Any(), "p1", gomock.Any()).Return(nil, store.ErrQuotaExceeded)
			},
			wantStatus: http.StatusInsufficientStorage,
			wantBody:   `{"error":"` + app.MsgQuotaExceeded + `"}`,
		},
		{
			name:   "star",
			method: http.MethodPost,
			path:   "/api/pages/p1/star",
			body:   `{"url":"a","isConverted":true}`,
			setup: func(m *testMocks) {
				m.pages.EXPECT().ToggleStar(gomock.Any(), "p1", models.StarRequest{URL: "a", IsConverted: true}).
					Return(models.StarResponse{Starred: true, Favorites: models.Favorites{{URL: "a", IsConverted: true}}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"starred":true,"favorites":[{"url":"a","isConverted":true}]}`,
		},
		{
			name:       "star without url",
			method:     http.MethodPost,
			path:       "/api/pages/p1/star",
			body:       `{"isConverted":true}`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			tt.setup(m)

			rec := serve(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, http.MethodDelete, "/api/favorites", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
	assert.Contains(t, decodeError(t, rec), "DELETE")
}

func TestTraceID(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1").Times(2)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(utils.TraceIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get(utils.TraceIDHeader))

	rec = serve(router, http.MethodGet, "/api/version", "")
	assert.NotEmpty(t, rec.Header().Get(utils.TraceIDHeader))
}

func TestGZip(t *testing.T) {
	router, m := newTestRouter(t)
	m.pages.EXPECT().Open(gomock.Any(), "https://lgtmoon.dev/").Return(models.PageInfo{ID: "p1"}, nil)

	var body bytes.Buffer
	zw := gzip.NewWriter(&body)
	_, err := zw.Write([]byte(`{"url":"https://lgtmoon.dev/"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/pages", &body)
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)

	var info models.PageInfo
	require.NoError(t, json.Unmarshal(plain, &info))
	assert.Equal(t, "p1", info.ID)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: store.ErrQuotaExceeded, want: http.StatusInsufficientStorage},
		{err: fmt.Errorf("%w: %w", store.ErrStore, store.ErrQuotaExceeded), want: http.StatusInsufficientStorage},
		{err: store.ErrStore, want: http.StatusServiceUnavailable},
		{err: service.ErrPageNotFound, want: http.StatusNotFound},
		{err: service.ErrDecode, want: http.StatusBadRequest},
		{err: ErrInvalidJSON, want: http.StatusBadRequest},
		{err: context.Canceled, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
