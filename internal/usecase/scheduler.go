package usecase

import (
	"context"
	"time"

	"KenyaNews/internal/ports"
)

// Scheduler wires the cron driver with the batch use case.
type Scheduler struct {
	driver  ports.Scheduler
	batch   *Batch
	sources []string
}

// NewScheduler returns a helper to start/stop recurring batches.
func NewScheduler(driver ports.Scheduler, batch *Batch, sources []string) *Scheduler {
	return &Scheduler{driver: driver, batch: batch, sources: sources}
}

// Start registers the batch with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.batch == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.batch.logger.Info("scheduled batch triggered", "at", trigger)
		_ = s.batch.Run(ctx, s.sources)
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
