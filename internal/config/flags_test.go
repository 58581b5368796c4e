package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{name: "localhost", input: "localhost:8085", expected: NetAddress{Host: "localhost", Port: 8085}},
		{name: "ip", input: "127.0.0.1:80", expected: NetAddress{Host: "127.0.0.1", Port: 80}},
		{name: "all interfaces", input: ":8085", expected: NetAddress{Port: 8085}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "bad port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port too big", input: "localhost:70000", expectError: true},
		{name: "bad host", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "localhost:9000",
		"-request-timeout", "10s",
		"-account", "acc",
		"-domains", "https://lgtmoon.dev/*, https://beta.lgtmoon.dev/*",
		"-upload-filter", "lgtmoon.",
		"-page-dsn", "pages.db",
		"-sync-dsn", "memory",
		"-quota", "4096",
		"-staging", "staging.json",
		"-drain-interval", "1m",
		"-log-level", "debug",
		"-config", "favsync.yaml",
	})

	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "acc", cfg.App.AccountID)
	assert.Equal(t, []string{"https://lgtmoon.dev/*", "https://beta.lgtmoon.dev/*"}, cfg.App.Domains)
	assert.Equal(t, "lgtmoon.", cfg.App.UploadHostFilter)
	assert.Equal(t, "pages.db", cfg.Storage.Page.DSN)
	assert.Equal(t, "memory", cfg.Storage.Sync.DSN)
	assert.Equal(t, 4096, cfg.Storage.Sync.QuotaBytes)
	assert.Equal(t, "staging.json", cfg.Storage.Staging.Path)
	assert.Equal(t, time.Minute, cfg.Workers.DrainInterval)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "favsync.yaml", cfg.FilePath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := ParseFlags(nil)

	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := ParseFlags([]string{"-a", "nowhere"})
	require.Error(t, err)

	_, err = ParseFlags([]string{"-unknown"})
	require.Error(t, err)
}
