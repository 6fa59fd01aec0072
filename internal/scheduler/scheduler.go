package scheduler

import (
	"context"
	"log/slog"
	"time"

	"wpsync/internal/domain"
)

// Syncer runs one batch sync.
type Syncer interface {
	Run(ctx context.Context, opts domain.RunOptions) (*domain.RunReport, error)
}

// Scheduler triggers an incremental sync on a fixed interval. The first run
// fires immediately so a restarted daemon catches up without waiting a full
// tick.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	report, err := s.syncer.Run(syncCtx, domain.RunOptions{})
	if err != nil {
		s.logger.Error("scheduled sync failed", "error", err)
		return
	}
	if report.Failed() {
		s.logger.Warn("scheduled sync finished with failures")
	}
}
