package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/fav-sync/internal/logger"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers groups workers. Nil workers are skipped so optional loops can be
// passed as they are.
func NewWorkers(log *logger.Logger, workers ...Worker) *Workers {
	w := &Workers{logger: log}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// returned. The first failure cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gCtx)
		})
	}

	err := g.Wait()
	if err != nil && w.logger != nil {
		w.logger.Err(err).Str("func", "Workers.Run").Msg("background worker failed")
	}
	return err
}

// Len returns the number of grouped workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
