// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/models"
)

// SyncChannel is the PostgreSQL notification channel every write of the sync
// namespace is announced on.
const SyncChannel = "favsync_sync_items"

// syncNotification is the payload sent with pg_notify.
type syncNotification struct {
	Source    string   `json:"source"`
	AccountID string   `json:"accountId"`
	Keys      []string `json:"keys"`
}

// SyncNamespace is the account-synchronized namespace stored in PostgreSQL.
// All devices of one account share the rows of its account id; the sum of
// key and value byte lengths is bounded by the quota.
type SyncNamespace struct {
	db         *DB
	builder    sq.StatementBuilderType
	accountID  string
	quotaBytes int
	instanceID string
	subs       *subscribers[ChangeListener]
	logger     *logger.Logger
}

func NewSyncNamespace(db *DB, accountID string, quotaBytes int, log *logger.Logger) *SyncNamespace {
	return &SyncNamespace{
		db:         db,
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		accountID:  accountID,
		quotaBytes: quotaBytes,
		instanceID: uuid.NewString(),
		subs:       newSubscribers[ChangeListener](),
		logger:     log,
	}
}

func (s *SyncNamespace) Area() models.Area {
	return models.AreaSync
}

func (s *SyncNamespace) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	log := logger.FromContext(ctx)

	filter := sq.Eq{"account_id": s.accountID}
	if len(keys) > 0 {
		filter["key"] = keys
	}

	query, args, err := s.builder.
		Select("key", "value").
		From("sync_items").
		Where(filter).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "SyncNamespace.Get").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrStore, ErrBuildingSQLQuery)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "SyncNamespace.Get").
			Bool("retryable", s.db.retryable(err)).
			Msg("error reading sync items")
		return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			log.Err(err).Str("func", "SyncNamespace.Get").Msg("error scanning sync item")
			return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrScanningRow, err)
		}
		result[key] = json.RawMessage(value)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}

	return result, nil
}

// Set upserts items in one transaction. The account is locked for the
// duration of the transaction so the quota check and the write see the same
// usage.
func (s *SyncNamespace) Set(ctx context.Context, items map[string]json.RawMessage) error {
	log := logger.FromContext(ctx)

	normalized, err := normalizeItems(items)
	if err != nil {
		return err
	}
	if len(normalized) == 0 {
		return nil
	}
	keys := sortedKeys(normalized)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "SyncNamespace.Set").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", s.accountID); err != nil {
		log.Err(err).Str("func", "SyncNamespace.Set").Msg("error locking account")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	usageQuery, usageArgs, err := s.builder.
		Select("key", "octet_length(key) + octet_length(value)").
		From("sync_items").
		Where(sq.Eq{"account_id": s.accountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, ErrBuildingSQLQuery)
	}

	rows, err := tx.QueryContext(ctx, usageQuery, usageArgs...)
	if err != nil {
		log.Err(err).Str("func", "SyncNamespace.Set").Msg("error reading usage")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}
	sizes := make(map[string]int)
	for rows.Next() {
		var (
			key  string
			size int
		)
		if err = rows.Scan(&key, &size); err != nil {
			rows.Close()
			return fmt.Errorf("%w: %w: %w", ErrStore, ErrScanningRow, err)
		}
		sizes[key] = size
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}

	for key, value := range normalized {
		sizes[key] = len(key) + len(value)
	}
	used := 0
	for _, size := range sizes {
		used += size
	}
	if s.quotaBytes > 0 && used > s.quotaBytes {
		log.Warn().Str("func", "SyncNamespace.Set").
			Int("used", used).
			Int("quota", s.quotaBytes).
			Msg("write rejected by quota")
		return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, s.quotaBytes)
	}

	upsert := s.builder.
		Insert("sync_items").
		Columns("account_id", "key", "value")
	for _, key := range keys {
		upsert = upsert.Values(s.accountID, key, string(normalized[key]))
	}
	upsertQuery, upsertArgs, err := upsert.
		Suffix("ON CONFLICT (account_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, ErrBuildingSQLQuery)
	}
	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).Str("func", "SyncNamespace.Set").
			Bool("retryable", s.db.retryable(err)).
			Msg("error writing sync items")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	payload, err := json.Marshal(syncNotification{Source: s.instanceID, AccountID: s.accountID, Keys: keys})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	if _, err = tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", SyncChannel, string(payload)); err != nil {
		log.Err(err).Str("func", "SyncNamespace.Set").Msg("error notifying sync change")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "SyncNamespace.Set").Msg("error committing transaction")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrCommitingTransaction, err)
	}

	publish(ctx, s.subs, models.ChangeEvent{Area: models.AreaSync, ChangedKeys: keys})
	return nil
}

func (s *SyncNamespace) Subscribe(listener ChangeListener) func() {
	return s.subs.add(listener)
}

// handleNotification publishes a change announced by another device. Changes
// written by this instance were already published by Set.
func (s *SyncNamespace) handleNotification(ctx context.Context, payload string) {
	var n syncNotification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		s.logger.Warn().Err(err).Str("func", "SyncNamespace.handleNotification").Msg("malformed sync notification")
		return
	}
	if n.AccountID != s.accountID || n.Source == s.instanceID {
		return
	}
	publish(ctx, s.subs, models.ChangeEvent{Area: models.AreaSync, ChangedKeys: n.Keys})
}
