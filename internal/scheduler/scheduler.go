// Package scheduler runs recurring ingestion passes.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"ouinon/internal/ingest"
)

// Runner executes one ingestion pass.
type Runner interface {
	Run(ctx context.Context) (ingest.Stats, error)
}

// Scheduler executes a pass immediately and then once per interval.
type Scheduler struct {
	runner   Runner
	log      *slog.Logger
	interval time.Duration
}

// New creates a Scheduler.
func New(runner Runner, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{runner: runner, interval: interval, log: log}
}

// Run starts the loop, blocking until ctx is cancelled. A failed pass is
// logged and the next tick tries again.
func (s *Scheduler) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		s.log.Error("ingest pass", "error", err)
	}
}
