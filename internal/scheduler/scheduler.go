package scheduler

import (
	"context"
	"log/slog"
	"time"

	"storycast/internal/domain"
)

// Runner processes one batch of pending work.
type Runner interface {
	RunPending(ctx context.Context) (*domain.RunStats, error)
}

type Scheduler struct {
	runner   Runner
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// NewScheduler runs runner every interval, bounding each pass by timeout.
func NewScheduler(runner Runner, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start runs a pass immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "timeout", s.timeout)

	s.runPass(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runPass(ctx)
		}
	}
}

func (s *Scheduler) runPass(ctx context.Context) {
	passCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats, err := s.runner.RunPending(passCtx)
	if err != nil {
		s.logger.Error("scheduler pass failed", "error", err)
		return
	}
	if stats.Claimed > 0 {
		s.logger.Debug("scheduler pass done", "claimed", stats.Claimed, "failed", stats.Failed)
	}
}
