package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
)

// periodicWorker runs task every interval. A non-positive interval
// disables it. Task errors are logged and the next tick proceeds.
type periodicWorker struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context, now time.Time) error
	now      func() time.Time
	logger   *logger.Logger
}

func (p *periodicWorker) Run(ctx context.Context) {
	log := p.logger.With().Str("worker", p.name).Logger()

	if p.interval <= 0 {
		log.Info().Msg("worker disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", p.interval).Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped")
			return
		case <-ticker.C:
			if err := p.task(ctx, p.now()); err != nil {
				log.Err(err).Msg("worker task failed")
			}
		}
	}
}

// NewSessionCleanupWorker deletes expired session rows. Expired sessions are
// already rejected on read, so this only keeps the table small.
func NewSessionCleanupWorker(sessions store.SessionRepository, interval time.Duration, logger *logger.Logger) Worker {
	return &periodicWorker{
		name:     "session_cleanup",
		interval: interval,
		now:      time.Now,
		logger:   logger,
		task: func(ctx context.Context, now time.Time) error {
			deleted, err := sessions.DeleteExpiredSessions(ctx, now)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Debug().Int64("deleted", deleted).Msg("expired sessions removed")
			}
			return nil
		},
	}
}

// NewThrottleSweepWorker evicts throttle records whose window has passed.
func NewThrottleSweepWorker(sweeper throttle.Sweeper, interval time.Duration, logger *logger.Logger) Worker {
	return &periodicWorker{
		name:     "throttle_sweep",
		interval: interval,
		now:      time.Now,
		logger:   logger,
		task: func(_ context.Context, now time.Time) error {
			if evicted := sweeper.Sweep(now); evicted > 0 {
				logger.Debug().Int("evicted", evicted).Msg("stale throttle records evicted")
			}
			return nil
		},
	}
}
