package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsTimeline/internal/ports"
)

// Scheduler wires the cron driver with the cache purge job.
type Scheduler struct {
	driver ports.Scheduler
	cache  ports.FetchCache
	logger *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring cache maintenance.
func NewScheduler(driver ports.Scheduler, cache ports.FetchCache, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, cache: cache, logger: logger}
}

// Start registers the purge job with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.cache == nil {
		return nil
	}

	job := func(trigger time.Time) {
		removed, err := s.cache.Purge(ctx, trigger)
		if err != nil {
			s.logger.Warn("cache purge failed", "error", err)
			return
		}
		s.logger.Debug("cache purged", "removed", removed)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
