// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for favsync. It
// is populated by merging a config file, environment variables and
// command-line flags, then filled with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds propagation settings: the account, the supported domains
	// and the upload-on-demand host filter.
	App App `envPrefix:"APP_"`

	// Storage holds the three namespaces of the storage platform.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the daemon HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings the CLI uses to reach the daemon.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level settings of the propagation layer.
type App struct {
	// AccountID scopes the sync namespace. Every device signed in with the
	// same account shares one favorites list.
	// Env: APP_ACCOUNT_ID
	AccountID string `env:"ACCOUNT_ID"`

	// Domains are the URL glob patterns of the supported deployments
	// (e.g. "https://lgtmoon.dev/*"). Sync updates fan out to every open
	// page matching one of them.
	// Env: APP_DOMAINS (comma separated)
	Domains []string `env:"DOMAINS" envSeparator:","`

	// UploadHostFilter must be contained in the active page URL for an
	// upload-on-demand to be accepted.
	// Env: APP_UPLOAD_HOST_FILTER
	UploadHostFilter string `env:"UPLOAD_HOST_FILTER"`

	// LogLevel is the minimal zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// BuildDate and BuildCommit are stamped by the linker.
	BuildDate   string
	BuildCommit string
}

// Storage groups the namespaces of the storage platform.
type Storage struct {
	// Page is the page-scoped namespace, one key space per origin.
	Page PageStorage `envPrefix:"PAGE_"`

	// Sync is the account-synchronized namespace.
	Sync SyncStorage `envPrefix:"SYNC_"`

	// Staging is the device-local namespace.
	Staging StagingStorage `envPrefix:"STAGING_"`
}

// PageStorage holds the SQLite settings of the page namespace.
type PageStorage struct {
	// DSN is the SQLite database file.
	// Env: STORAGE_PAGE_DSN
	DSN string `env:"DSN"`
}

// SyncStorage holds the settings of the account-synchronized namespace.
type SyncStorage struct {
	// DSN is the PostgreSQL connection string, or "memory" for a
	// single-device in-process store.
	// Env: STORAGE_SYNC_DSN
	DSN string `env:"DSN"`

	// QuotaBytes is the total byte capacity of one account's namespace.
	// Env: STORAGE_SYNC_QUOTA_BYTES
	QuotaBytes int `env:"QUOTA_BYTES"`
}

// StagingStorage holds the settings of the device-local namespace.
type StagingStorage struct {
	// Path is the JSON file backing the namespace, or ":memory:".
	// Env: STORAGE_STAGING_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings of the daemon.
type Server struct {
	// HTTPAddress is the TCP address the daemon listens on ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings the CLI uses to reach the daemon.
type Adapter struct {
	// HTTPAddress is the daemon base URL or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LogFile is where the CLI writes its logs.
	// Env: ADAPTER_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Workers holds background worker settings.
type Workers struct {
	// DrainInterval re-runs the staging drain for every open page on a
	// ticker. Zero disables the job.
	// Env: WORKERS_DRAIN_INTERVAL
	DrainInterval time.Duration `env:"DRAIN_INTERVAL"`

	// ListenReconnect is the pause before the sync change listener
	// reconnects after losing its connection.
	// Env: WORKERS_LISTEN_RECONNECT
	ListenReconnect time.Duration `env:"LISTEN_RECONNECT"`
}

// GetStructuredConfig loads, merges, and validates the daemon configuration.
// Sources in increasing priority: config file, environment, command-line
// flags; unset fields are then filled with defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		withDefaults().
		build()
}
