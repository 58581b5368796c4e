package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MKhiriev/fav-sync/internal/logger"
)

// SyncListener keeps a dedicated connection LISTENing on [SyncChannel] and
// hands every notification to the sync namespace, so writes made by other
// devices of the account reach local subscribers.
type SyncListener struct {
	dsn       string
	reconnect time.Duration
	namespace *SyncNamespace
	logger    *logger.Logger
}

func NewSyncListener(dsn string, reconnect time.Duration, namespace *SyncNamespace, log *logger.Logger) *SyncListener {
	return &SyncListener{
		dsn:       dsn,
		reconnect: reconnect,
		namespace: namespace,
		logger:    log,
	}
}

// Run listens until ctx is cancelled, reconnecting after every lost
// connection.
func (l *SyncListener) Run(ctx context.Context) error {
	l.logger.Info().Str("func", "SyncListener.Run").Msg("sync listener started")
	defer l.logger.Info().Str("func", "SyncListener.Run").Msg("sync listener stopped")

	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.logger.Err(err).Str("func", "SyncListener.Run").
			Dur("reconnect", l.reconnect).
			Msg("sync listener lost connection")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.reconnect):
		}
	}
}

func (l *SyncListener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.WithoutCancel(ctx))

	if _, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{SyncChannel}.Sanitize()); err != nil {
		return err
	}

	listenCtx := l.logger.WithContext(ctx)
	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		l.namespace.handleNotification(listenCtx, notification.Payload)
	}
}
