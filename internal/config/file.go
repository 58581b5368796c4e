package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. The same tags serve the
// JSON and YAML decoders.
type fileConfig struct {
	App struct {
		AccountID        string   `json:"account_id" yaml:"account_id"`
		Domains          []string `json:"domains" yaml:"domains"`
		UploadHostFilter string   `json:"upload_host_filter" yaml:"upload_host_filter"`
		LogLevel         string   `json:"log_level" yaml:"log_level"`
		Version          string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Storage struct {
		Page struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"page" yaml:"page"`
		Sync struct {
			DSN        string `json:"dsn" yaml:"dsn"`
			QuotaBytes int    `json:"quota_bytes" yaml:"quota_bytes"`
		} `json:"sync" yaml:"sync"`
		Staging struct {
			Path string `json:"path" yaml:"path"`
		} `json:"staging" yaml:"staging"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		LogFile        string   `json:"log_file" yaml:"log_file"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		DrainInterval   Duration `json:"drain_interval" yaml:"drain_interval"`
		ListenReconnect Duration `json:"listen_reconnect" yaml:"listen_reconnect"`
	} `json:"workers" yaml:"workers"`
}

// parseFile decodes the config file at path. Files ending in .yaml or .yml
// are read as YAML, anything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		App: App{
			AccountID:        fc.App.AccountID,
			Domains:          fc.App.Domains,
			UploadHostFilter: fc.App.UploadHostFilter,
			LogLevel:         fc.App.LogLevel,
			Version:          fc.App.Version,
		},
		Storage: Storage{
			Page:    PageStorage{DSN: fc.Storage.Page.DSN},
			Sync:    SyncStorage{DSN: fc.Storage.Sync.DSN, QuotaBytes: fc.Storage.Sync.QuotaBytes},
			Staging: StagingStorage{Path: fc.Storage.Staging.Path},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			LogFile:        fc.Adapter.LogFile,
		},
		Workers: Workers{
			DrainInterval:   time.Duration(fc.Workers.DrainInterval),
			ListenReconnect: time.Duration(fc.Workers.ListenReconnect),
		},
	}, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" as well as from plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case int:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
