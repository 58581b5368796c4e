package service

import (
	"context"

	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/models"
)

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports the daemon build. A version is required; the
// build date and commit default to "N/A".
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info: models.AppBuildInfo{
			Version: cfg.Version,
			Date:    orNotAvailable(cfg.BuildDate),
			Commit:  orNotAvailable(cfg.BuildCommit),
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.info
}

func orNotAvailable(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
