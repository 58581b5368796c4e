package service

import (
	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/internal/validators"
)

// Services wires the propagation layer over the storage platform and the
// page registry.
type Services struct {
	PageService    PageService
	ViewService    ViewService
	UploadService  UploadService
	AppInfoService AppInfoService

	Interceptor *ChangeInterceptor
	Dispatcher  *Dispatcher
	Bootstrap   *Bootstrap
	DrainJob    *DrainJob

	detach []func()
}

// NewServices builds every service and attaches each store observer exactly
// once.
func NewServices(storages *store.Storages, registry PageRegistry, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, log)
	if err != nil {
		return nil, err
	}

	codec := NewCodec(validators.NewValidator())
	interceptor := NewChangeInterceptor(storages.Sync, codec, log)
	reconciler := NewReconciler(storages.Page, codec, log)
	dispatcher := NewDispatcher(registry, storages.Local, codec, cfg.App.Domains, log)
	bootstrap := NewBootstrap(reconciler, interceptor, storages.Local, codec, log)
	dispatcher.shareStagingLock(bootstrap)
	pages := newPageService(registry, storages.Page, reconciler, bootstrap, codec, log)

	s := &Services{
		PageService:    pages,
		ViewService:    NewViewService(storages.Sync, codec, cfg.Storage.Sync.QuotaBytes, log),
		UploadService:  NewUploadService(registry, storages.Sync, codec, cfg.App.UploadHostFilter, log),
		AppInfoService: appInfo,
		Interceptor:    interceptor,
		Dispatcher:     dispatcher,
		Bootstrap:      bootstrap,
		DrainJob:       NewDrainJob(pages, cfg.Workers.DrainInterval, log),
	}
	s.detach = append(s.detach,
		interceptor.Attach(storages.Page),
		dispatcher.Attach(storages.Sync),
		s.DrainJob.Attach(storages.Local),
	)
	return s, nil
}

// Detach stops observing the stores.
func (s *Services) Detach() {
	for _, fn := range s.detach {
		fn()
	}
	s.detach = nil
}
