package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/models"
)

const (
	// SyncDSNMemory selects the in-process sync namespace.
	SyncDSNMemory = "memory"
	// PageDSNMemory keeps page storage in process memory without SQLite.
	PageDSNMemory = "memory"
)

// Storages groups the three namespaces of the storage platform together with
// the background loops that feed them external changes.
type Storages struct {
	// Page is the page namespace, one key space per origin.
	Page PageStorage

	// Sync is the account-synchronized namespace.
	Sync Namespace

	// Local is the device-local namespace holding the staging keys.
	Local *LocalNamespace

	// SyncListener delivers sync changes made by other devices. It is nil
	// for the in-process sync namespace.
	SyncListener *SyncListener

	closers []func() error
}

// NewStorages opens every namespace described by cfg.
func NewStorages(ctx context.Context, cfg config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	log.Info().Str("func", "store.NewStorages").Msg("creating new storages...")
	s := &Storages{}

	if strings.EqualFold(cfg.Storage.Page.DSN, PageDSNMemory) {
		s.Page = NewMemoryPageStorage()
	} else {
		pageDB, err := NewConnectSQLite(ctx, cfg.Storage.Page, log)
		if err != nil {
			return nil, fmt.Errorf("page storage connection error: %w", err)
		}
		s.closers = append(s.closers, pageDB.Close)
		s.Page = NewPageStorage(pageDB, log)
	}

	if strings.EqualFold(cfg.Storage.Sync.DSN, SyncDSNMemory) {
		log.Warn().Str("func", "store.NewStorages").Msg("sync storage is in-process, changes stay on this device")
		s.Sync = NewMemoryNamespace(models.AreaSync, cfg.Storage.Sync.QuotaBytes)
	} else {
		syncDB, err := NewConnectPostgres(ctx, cfg.Storage.Sync, log)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("sync storage connection error: %w", err)
		}
		s.closers = append(s.closers, syncDB.Close)

		syncNamespace := NewSyncNamespace(syncDB, cfg.App.AccountID, cfg.Storage.Sync.QuotaBytes, log)
		s.Sync = syncNamespace
		s.SyncListener = NewSyncListener(cfg.Storage.Sync.DSN, cfg.Workers.ListenReconnect, syncNamespace, log)
	}

	local, err := NewLocalNamespace(cfg.Storage.Staging.Path, log)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("staging storage error: %w", err)
	}
	s.Local = local

	return s, nil
}

// Close releases every database connection.
func (s *Storages) Close() error {
	var errs []error
	for _, closer := range s.closers {
		errs = append(errs, closer())
	}
	s.closers = nil
	return errors.Join(errs...)
}
