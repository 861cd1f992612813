package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the session cleanup worker and, for throttle backends
// that keep records in process memory, the sweep worker.
func NewWorkers(sessions store.SessionRepository, loginThrottle throttle.LoginThrottle, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	ws.workers = append(ws.workers, NewSessionCleanupWorker(sessions, cfg.SessionCleanupInterval, logger))

	if sweeper, ok := loginThrottle.(throttle.Sweeper); ok {
		ws.workers = append(ws.workers, NewThrottleSweepWorker(sweeper, cfg.ThrottleSweepInterval, logger))
	}

	return ws
}

// Run starts every worker and blocks until all of them return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
