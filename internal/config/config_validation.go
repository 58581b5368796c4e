// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// minQuotaBytes leaves room for at least the list overhead of the capacity
// estimator.
const minQuotaBytes = 64

// validate checks that the merged daemon configuration can be started with.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.App.AccountID) == "" {
		return fmt.Errorf("%w: empty account id", ErrInvalidAppConfigs)
	}
	if len(cfg.App.Domains) == 0 {
		return fmt.Errorf("%w: no domains configured", ErrInvalidAppConfigs)
	}

	if cfg.Storage.Page.DSN == "" {
		return fmt.Errorf("%w: empty page storage dsn", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Sync.DSN == "" {
		return fmt.Errorf("%w: empty sync storage dsn", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Sync.QuotaBytes < minQuotaBytes {
		return fmt.Errorf("%w: sync quota must be at least %d bytes", ErrInvalidStorageConfigs, minQuotaBytes)
	}
	if cfg.Storage.Staging.Path == "" {
		return fmt.Errorf("%w: empty staging path", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}

	if cfg.Workers.DrainInterval < 0 || cfg.Workers.ListenReconnect < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
