package service

import (
	"context"

	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// PageMessenger is the messaging platform as seen by the propagation layer.
type PageMessenger interface {
	// Query returns the open pages whose URL matches pattern.
	Query(ctx context.Context, pattern string) ([]models.PageInfo, error)
	// Send delivers msg to one page and returns its answer.
	Send(ctx context.Context, id string, msg models.Message) (models.Response, error)
	// Active returns the most recently opened or focused page.
	Active() (models.PageInfo, bool)
}

// PageRegistry tracks page lifetimes on top of [PageMessenger].
type PageRegistry interface {
	PageMessenger
	Register(rawURL string, endpoint messaging.Endpoint) (models.PageInfo, error)
	Unregister(id string) bool
	Focus(id string) error
	Pages() []models.PageInfo
	OnChange(fn func([]models.PageInfo)) (unsubscribe func())
}

// PageService manages the lifetime of open pages and the user actions
// performed on them.
type PageService interface {
	Open(ctx context.Context, rawURL string) (models.PageInfo, error)
	Close(ctx context.Context, id string) error
	List(ctx context.Context) []models.PageInfo
	Focus(ctx context.Context, id string) error
	Favorites(ctx context.Context, id string) (models.Response, error)
	// Deliver sends msg to the page and returns its answer.
	Deliver(ctx context.Context, id string, msg models.Message) (models.Response, error)
	Replace(ctx context.Context, id string, favorites models.Favorites) (models.Favorites, error)
	ToggleStar(ctx context.Context, id string, req models.StarRequest) (models.StarResponse, error)
	Watch(id string, fn func(models.Favorites)) (unsubscribe func(), err error)
	OnPagesChange(fn func([]models.PageInfo)) (unsubscribe func())
}

// ViewService builds what the popup shows.
type ViewService interface {
	View(ctx context.Context) (models.FavoritesView, error)
	Usage(ctx context.Context) (models.StorageUsage, error)
}

// UploadService copies the favorites of the active page to the sync store
// on demand.
type UploadService interface {
	Upload(ctx context.Context) models.StatusMessage
}

// AppInfoService reports what build of the daemon is running.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
