package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yaricp/simple-short-links/internal/repo"
)

// Sweeper periodically deletes links whose expiry has passed. It runs for
// the lifetime of the process; a failed sweep is logged and retried on the
// next tick.
type Sweeper struct {
	links    *repo.LinkRepo
	interval time.Duration
	logger   *slog.Logger

	// mu keeps sweeps mutually exclusive should one ever outlast the
	// interval.
	mu sync.Mutex
}

func NewSweeper(links *repo.LinkRepo, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{links: links, interval: interval, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("expiry sweeper starting", "interval", s.interval)
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopping")
			return
		}
	}
}

// Sweep removes all currently-expired links in one statement. Idempotent: a
// second call with no intervening inserts deletes nothing.
func (s *Sweeper) Sweep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.links.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("sweep failed", "error", err)
		return
	}
	if count > 0 {
		s.logger.Info("removed expired links", "count", count)
	}
}
