package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/fav-sync/internal/logger"
)

type pageStorage struct {
	db        *DB
	builder   sq.StatementBuilderType
	observers *subscribers[WriteObserver]
	logger    *logger.Logger
}

// NewPageStorage returns the SQLite-backed page namespace.
func NewPageStorage(db *DB, log *logger.Logger) PageStorage {
	return &pageStorage{
		db:        db,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Question),
		observers: newSubscribers[WriteObserver](),
		logger:    log,
	}
}

func (p *pageStorage) GetItem(ctx context.Context, origin, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.builder.
		Select("value").
		From("page_items").
		Where(sq.Eq{"origin": origin, "key": key}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "pageStorage.GetItem").Msg("error building query")
		return "", false, fmt.Errorf("%w: %w", ErrStore, ErrBuildingSQLQuery)
	}

	var value string
	err = p.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "pageStorage.GetItem").
			Str("origin", origin).
			Str("key", key).
			Msg("error reading page item")
		return "", false, fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (p *pageStorage) SetItem(ctx context.Context, origin, key, value string) error {
	if err := p.SetItemQuiet(ctx, origin, key, value); err != nil {
		return err
	}

	for _, observer := range p.observers.snapshot() {
		p.notify(ctx, observer, origin, key, value)
	}
	return nil
}

func (p *pageStorage) SetItemQuiet(ctx context.Context, origin, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := p.builder.
		Insert("page_items").
		Columns("origin", "key", "value").
		Values(origin, key, value).
		Suffix("ON CONFLICT (origin, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "pageStorage.SetItemQuiet").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrStore, ErrBuildingSQLQuery)
	}

	if _, err = p.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "pageStorage.SetItemQuiet").
			Str("origin", origin).
			Str("key", key).
			Msg("error writing page item")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	return nil
}

func (p *pageStorage) OnWrite(observer WriteObserver) func() {
	return p.observers.add(observer)
}

func (p *pageStorage) notify(ctx context.Context, observer WriteObserver, origin, key, value string) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error().
				Str("func", "pageStorage.notify").
				Interface("panic", r).
				Msg("page write observer panicked")
		}
	}()
	observer(ctx, origin, key, value)
}
