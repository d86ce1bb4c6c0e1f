package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner drives the polling engine on a fixed tick. The engine itself never
// self-schedules; this is the one place cadence lives.
type Runner struct {
	interval time.Duration
	run      func(ctx context.Context) error
	logger   *zap.Logger
}

// NewRunner builds a ticker-driven runner around the given pass function.
func NewRunner(interval time.Duration, run func(ctx context.Context) error, logger *zap.Logger) *Runner {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Runner{
		interval: interval,
		run:      run,
		logger:   logger,
	}
}

// Start blocks until ctx is cancelled, invoking the pass on every tick. A
// failed pass is logged and the next tick runs as usual.
func (r *Runner) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("scheduler started", zap.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := r.run(ctx); err != nil {
				r.logger.Error("scheduled pass failed", zap.Error(err))
			}
		}
	}
}
