package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseFile_JSON(t *testing.T) {
	p := writeConfigFile(t, "favsync.json", `{
		"app": {"account_id": "acc", "domains": ["https://lgtmoon.dev/*"]},
		"storage": {
			"page": {"dsn": "pages.db"},
			"sync": {"dsn": "postgres://localhost/fav", "quota_bytes": 1024},
			"staging": {"path": "staging.json"}
		},
		"server": {"http_address": "localhost:8085", "request_timeout": "20s"},
		"workers": {"drain_interval": 60000000000}
	}`)

	cfg, err := parseFile(p)

	require.NoError(t, err)
	assert.Equal(t, "acc", cfg.App.AccountID)
	assert.Equal(t, []string{"https://lgtmoon.dev/*"}, cfg.App.Domains)
	assert.Equal(t, "pages.db", cfg.Storage.Page.DSN)
	assert.Equal(t, "postgres://localhost/fav", cfg.Storage.Sync.DSN)
	assert.Equal(t, 1024, cfg.Storage.Sync.QuotaBytes)
	assert.Equal(t, "staging.json", cfg.Storage.Staging.Path)
	assert.Equal(t, "localhost:8085", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.DrainInterval)
}

func TestParseFile_YAML(t *testing.T) {
	p := writeConfigFile(t, "favsync.yaml", `
app:
  account_id: acc
  upload_host_filter: lgtmoon.
storage:
  sync:
    quota_bytes: 4096
adapter:
  http_address: http://localhost:8085
  request_timeout: 3s
workers:
  listen_reconnect: 1s
`)

	cfg, err := parseFile(p)

	require.NoError(t, err)
	assert.Equal(t, "acc", cfg.App.AccountID)
	assert.Equal(t, "lgtmoon.", cfg.App.UploadHostFilter)
	assert.Equal(t, 4096, cfg.Storage.Sync.QuotaBytes)
	assert.Equal(t, "http://localhost:8085", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Second, cfg.Workers.ListenReconnect)
}

func TestParseFile_Errors(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = parseFile(writeConfigFile(t, "bad.json", `{"server": {"request_timeout": "soon"}}`))
	require.Error(t, err)

	_, err = parseFile(writeConfigFile(t, "bad.yml", "app: [unclosed"))
	require.Error(t, err)
}
