package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// StagingDrainer drains the staging store into every open page.
type StagingDrainer interface {
	DrainAll(ctx context.Context) int
}

// DrainJob retries the staging drain on a ticker, so a payload staged while
// pages were open but failed to merge reaches them without a reload.
type DrainJob struct {
	drainer  StagingDrainer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDrainJob creates a job that calls drainer.DrainAll every interval. The
// job is idle until Start or Run is called.
func NewDrainJob(drainer StagingDrainer, interval time.Duration, log *logger.Logger) *DrainJob {
	return &DrainJob{drainer: drainer, interval: interval, logger: log}
}

// Run starts the job and blocks until ctx is cancelled. A zero interval
// disables the job and Run returns at once.
func (j *DrainJob) Run(ctx context.Context) error {
	if j.interval <= 0 {
		j.logger.Debug().Str("func", "DrainJob.Run").Msg("periodic drain disabled")
		return nil
	}
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
	return nil
}

// Start stops any previously running job, then launches a goroutine that
// drains every interval until ctx is cancelled or Stop is called.
func (j *DrainJob) Start(ctx context.Context) {
	if j.interval <= 0 {
		return
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if merged := j.drainer.DrainAll(jobCtx); merged > 0 {
					j.logger.Info().Str("func", "DrainJob.Start").Int("pages", merged).Msg("periodic drain merged staged favorites")
				}
			}
		}
	}()
}

// Stop cancels the goroutine and blocks until it has exited. Safe to call
// when the job is not running.
func (j *DrainJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Attach drains into the open pages as soon as another process stages
// favorites in staging. Writes made by this process are drained by page
// loads and the ticker.
func (j *DrainJob) Attach(staging store.Namespace) (detach func()) {
	return staging.Subscribe(func(ctx context.Context, event models.ChangeEvent) {
		if !event.External || !event.Has(models.KeyPendingFavorites) {
			return
		}
		merged := j.drainer.DrainAll(context.WithoutCancel(ctx))
		j.logger.Info().Str("func", "DrainJob.Attach").Int("pages", merged).Msg("drained favorites staged by another process")
	})
}
