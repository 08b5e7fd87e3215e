package service

import (
	"context"
	"log/slog"
	"time"

	"docvault/internal/config"
	"docvault/internal/domain/services"
)

// Sweeper drives the two periodic background tasks: the re-lock sweep
// and the purge sweep. Both loops are independent, idempotent, and safe
// to run concurrently with request handlers; they stop when the context
// is cancelled.
type Sweeper struct {
	locks     services.LockService
	lifecycle services.LifecycleService
	logger    *slog.Logger

	relockInterval time.Duration
	purgeInterval  time.Duration
	retention      time.Duration
}

// NewSweeper creates a sweeper with the configured intervals
func NewSweeper(locks services.LockService, lifecycle services.LifecycleService, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		locks:          locks,
		lifecycle:      lifecycle,
		logger:         logger,
		relockInterval: config.RelockInterval,
		purgeInterval:  config.PurgeInterval,
		retention:      config.TrashRetention,
	}
}

// Start launches both sweep loops
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx, "relock", s.relockInterval, func(ctx context.Context) error {
		_, err := s.locks.RelockExpired(ctx)
		return err
	})
	go s.run(ctx, "purge", s.purgeInterval, func(ctx context.Context) error {
		_, err := s.lifecycle.Purge(ctx, time.Now().Add(-s.retention))
		return err
	})
}

func (s *Sweeper) run(ctx context.Context, name string, interval time.Duration, sweep func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("sweep started", "sweep", name, "interval", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweep stopped", "sweep", name)
			return
		case <-ticker.C:
			if err := sweep(ctx); err != nil {
				s.logger.Error("sweep failed", "sweep", name, "error", err)
			}
		}
	}
}
