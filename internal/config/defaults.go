package config

import "time"

// Default values applied to fields left unset by every source.
const (
	DefaultAccountID        = "default"
	DefaultUploadHostFilter = "lgtmoon."
	DefaultQuotaBytes       = 102400
	DefaultPageDSN          = "favsync-pages.db"
	DefaultSyncDSN          = "memory"
	DefaultStagingPath      = "favsync-staging.json"
	DefaultHTTPAddress      = "localhost:8085"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultAdapterAddress   = "http://localhost:8085"
	DefaultAdapterTimeout   = 15 * time.Second
	DefaultListenReconnect  = 5 * time.Second
	DefaultVersion          = "dev"
)

// DefaultDomains are the deployments of the favorites site.
var DefaultDomains = []string{
	"https://lgtmoon.dev/*",
	"https://*.lgtmoon.dev/*",
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AccountID:        DefaultAccountID,
			Domains:          append([]string(nil), DefaultDomains...),
			UploadHostFilter: DefaultUploadHostFilter,
			LogLevel:         "info",
			Version:          DefaultVersion,
		},
		Storage: Storage{
			Page:    PageStorage{DSN: DefaultPageDSN},
			Sync:    SyncStorage{DSN: DefaultSyncDSN, QuotaBytes: DefaultQuotaBytes},
			Staging: StagingStorage{Path: DefaultStagingPath},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultAdapterTimeout,
		},
		Workers: Workers{
			ListenReconnect: DefaultListenReconnect,
		},
	}
}
